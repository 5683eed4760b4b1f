package migration

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

// migrate0000 creates the database with the latest schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.LevelTier{},
		&entity.PointBalance{},
		&entity.Badge{},
		&entity.UserBadge{},
		&entity.Achievement{},
		&entity.UserAchievement{},
		&entity.Streak{},
		&entity.Leaderboard{},
		&entity.LeaderboardEntry{},
		&entity.Reward{},
		&entity.UserReward{},
		&entity.GamificationEvent{},
		&entity.UserCounter{},
	)
}
