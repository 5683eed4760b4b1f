package gamify

import (
	"context"
	"errors"
	"time"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// achievementCondition is the decoded form of the catalog's condition JSON,
// e.g. {"kind": "count", "target": "job_applications", "value": 10}.
type achievementCondition struct {
	Kind   string `mapstructure:"kind"`
	Target string `mapstructure:"target"`
	Value  int64  `mapstructure:"value"`
}

// AchievementEngine completes counter-threshold achievements exactly once.
type AchievementEngine struct {
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	counterRepo         repository.UserCounterRepository
	badgeRepo           repository.BadgeRepository
	badges              *BadgeEngine
	ledger              *Ledger
}

func NewAchievementEngine(
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	counterRepo repository.UserCounterRepository,
	badgeRepo repository.BadgeRepository,
	badges *BadgeEngine,
	ledger *Ledger,
) *AchievementEngine {
	return &AchievementEngine{
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
		counterRepo:         counterRepo,
		badgeRepo:           badgeRepo,
		badges:              badges,
		ledger:              ledger,
	}
}

// Check completes every achievement of the action's type whose counter
// threshold exactly equals the user's current counter value. The equality
// match makes an achievement fire on the crossing action only, never
// retroactively. Completed achievements are returned together with any
// linked badges granted along the way.
func (e *AchievementEngine) Check(
	ctx context.Context, userID, actionType string,
) ([]entity.Achievement, []entity.Badge, error) {
	catalog, err := e.achievementRepo.GetList(ctx)
	if err != nil {
		return nil, nil, err
	}

	var completed []entity.Achievement
	var linkedBadges []entity.Badge
	for _, achievement := range catalog {
		if achievement.Type != actionType {
			continue
		}

		var cond achievementCondition
		if err := mapstructure.Decode(map[string]any(achievement.Condition), &cond); err != nil {
			xcontext.Logger(ctx).Warnf(
				"Invalid condition of achievement %s: %v", achievement.ID, err)
			continue
		}

		if cond.Kind != "count" {
			continue
		}

		value, err := e.counterRepo.Get(ctx, userID, cond.Target)
		if err != nil {
			return nil, nil, err
		}

		if value != cond.Value {
			continue
		}

		done, badge, err := e.complete(ctx, userID, achievement)
		if err != nil {
			return nil, nil, err
		}

		if done {
			completed = append(completed, achievement)
		}

		if badge != nil {
			linkedBadges = append(linkedBadges, *badge)
		}
	}

	return completed, linkedBadges, nil
}

// complete marks the achievement done for the user, awards its point value
// and grants its linked badge, all exactly once.
func (e *AchievementEngine) complete(
	ctx context.Context, userID string, achievement entity.Achievement,
) (bool, *entity.Badge, error) {
	_, err := e.userAchievementRepo.CreateIfNotExist(ctx, &entity.UserAchievement{
		UserID:        userID,
		AchievementID: achievement.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create achievement progress: %v", err)
		return false, nil, err
	}

	done, err := e.userAchievementRepo.Complete(ctx, userID, achievement.ID, time.Now())
	if err != nil {
		return false, nil, err
	}

	if !done {
		return false, nil, nil
	}

	if achievement.Points > 0 {
		if err := e.ledger.Award(ctx, userID, achievement.Points); err != nil {
			return false, nil, err
		}
	}

	if !achievement.BadgeID.Valid {
		return true, nil, nil
	}

	badge, err := e.badgeRepo.GetByID(ctx, achievement.BadgeID.String)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf(
				"Linked badge %s of achievement %s is not in catalog",
				achievement.BadgeID.String, achievement.ID)
			return true, nil, nil
		}

		return false, nil, err
	}

	granted, err := e.badges.Award(ctx, userID, *badge)
	if err != nil {
		return false, nil, err
	}

	if !granted {
		return true, nil, nil
	}

	return true, badge, nil
}
