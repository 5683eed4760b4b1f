package entity

import (
	"database/sql"
	"time"
)

// Streak is a per (user, category) consecutive-activity counter, created
// lazily on the first qualifying action.
type Streak struct {
	UserID   string `gorm:"primaryKey"`
	Category string `gorm:"primaryKey"`

	CurrentLength int
	LongestLength int
	LastActivity  sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}
