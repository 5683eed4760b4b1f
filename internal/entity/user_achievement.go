package entity

import (
	"database/sql"
	"time"
)

// UserAchievement tracks completion per (user, achievement). IsCompleted is
// monotonic, it never reverts to false.
type UserAchievement struct {
	UserID        string      `gorm:"primaryKey"`
	AchievementID string      `gorm:"primaryKey"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID"`

	Progress    int64
	IsCompleted bool
	CompletedAt sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}
