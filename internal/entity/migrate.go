package entity

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&LevelTier{},
		&PointBalance{},
		&Badge{},
		&UserBadge{},
		&Achievement{},
		&UserAchievement{},
		&Streak{},
		&Leaderboard{},
		&LeaderboardEntry{},
		&Reward{},
		&UserReward{},
		&GamificationEvent{},
		&UserCounter{},
	)
}
