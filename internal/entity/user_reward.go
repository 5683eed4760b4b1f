package entity

import (
	"database/sql"
	"time"
)

// UserReward is created at most once per (user, reward) and is immutable
// after the claim, except for the used flag.
type UserReward struct {
	UserID   string `gorm:"primaryKey"`
	RewardID string `gorm:"primaryKey"`
	Reward   Reward `gorm:"foreignKey:RewardID"`

	IsUsed bool
	UsedAt sql.NullTime

	CreatedAt time.Time
}
