package entity

import "time"

// LeaderboardEntry holds one user's score on one leaderboard. Rank is a
// dense 1..N position recomputed after every score change; ties are broken
// by the entry's creation order.
type LeaderboardEntry struct {
	LeaderboardID string `gorm:"primaryKey"`
	UserID        string `gorm:"primaryKey"`

	Score int64
	Rank  int

	CreatedAt time.Time
	UpdatedAt time.Time
}
