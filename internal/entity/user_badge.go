package entity

import "time"

// UserBadge is created at most once per (user, badge).
type UserBadge struct {
	UserID  string `gorm:"primaryKey"`
	BadgeID string `gorm:"primaryKey"`
	Badge   Badge  `gorm:"foreignKey:BadgeID"`

	IsFeatured bool
	CreatedAt  time.Time
}
