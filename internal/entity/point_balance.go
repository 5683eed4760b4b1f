package entity

import (
	"database/sql"
	"time"
)

// PointBalance tracks a user's lifetime points and level progress. The row
// is created lazily on the first qualifying action. TotalPoints only ever
// decreases through a reward claim; the tier reference never goes backwards.
type PointBalance struct {
	UserID        string `gorm:"primaryKey"`
	CurrentTierID string
	CurrentTier   LevelTier `gorm:"foreignKey:CurrentTierID"`

	TotalPoints   int64
	PointsToNext  int64
	ProgressPct   float64
	LastLevelUpAt sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}
