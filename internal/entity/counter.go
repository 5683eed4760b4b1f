package entity

import "time"

// UserCounter is a monotonically increasing per (user, name) action counter.
// Badge rules and achievement conditions read these values.
type UserCounter struct {
	UserID string `gorm:"primaryKey"`
	Name   string `gorm:"primaryKey"`

	Value int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
