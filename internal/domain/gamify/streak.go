package gamify

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/dateutil"
	mathutil "github.com/pkg/math"
	"gorm.io/gorm"
)

// StreakTracker maintains per-category consecutive-activity counters.
type StreakTracker struct {
	// categories maps action types to their streak category. Actions absent
	// from the map are not streak-eligible.
	categories map[string]string
	milestones []int

	streakRepo repository.StreakRepository
}

func NewStreakTracker(cfg config.GamificationConfigs, streakRepo repository.StreakRepository) *StreakTracker {
	return &StreakTracker{
		categories: cfg.Streaks,
		milestones: cfg.StreakMilestones,
		streakRepo: streakRepo,
	}
}

// Update applies the action to its streak, if the action type is streak
// eligible. The first action of a calendar day increments the length no
// matter how many inactive days passed before it; a repeat action on the
// same day leaves the lengths untouched. Gaps deliberately do not reset the
// streak. Last activity is always stamped. The returned milestones are the
// lengths from the configured milestone list reached by this update.
func (t *StreakTracker) Update(
	ctx context.Context, userID, actionType string, now time.Time,
) ([]entity.Streak, []int, error) {
	category, ok := t.categories[actionType]
	if !ok {
		return nil, nil, nil
	}

	streak, err := t.getOrCreate(ctx, userID, category)
	if err != nil {
		return nil, nil, err
	}

	var milestones []int
	if !streak.LastActivity.Valid || dateutil.IsNewDay(streak.LastActivity.Time, now) {
		streak.CurrentLength++
		streak.LongestLength = mathutil.MaxInt(streak.LongestLength, streak.CurrentLength)
		for _, m := range t.milestones {
			if streak.CurrentLength == m {
				milestones = append(milestones, m)
			}
		}
	}

	streak.LastActivity = sql.NullTime{Valid: true, Time: now}
	err = t.streakRepo.Update(
		ctx, userID, category, streak.CurrentLength, streak.LongestLength, now)
	if err != nil {
		return nil, nil, err
	}

	return []entity.Streak{*streak}, milestones, nil
}

// Current returns the current streak length of a category, zero when the
// user never performed a qualifying action.
func (t *StreakTracker) Current(ctx context.Context, userID, category string) (int, error) {
	streak, err := t.streakRepo.Get(ctx, userID, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return streak.CurrentLength, nil
}

func (t *StreakTracker) getOrCreate(ctx context.Context, userID, category string) (*entity.Streak, error) {
	streak, err := t.streakRepo.Get(ctx, userID, category)
	if err == nil {
		return streak, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newStreak := &entity.Streak{UserID: userID, Category: category}
	if err := t.streakRepo.Create(ctx, newStreak); err != nil {
		return nil, err
	}

	return newStreak, nil
}
