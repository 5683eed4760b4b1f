package model

import "time"

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Rarity      string `json:"rarity"`
	Points      int64  `json:"points"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Points      int64  `json:"points"`
}

type Streak struct {
	Category      string `json:"category"`
	CurrentLength int    `json:"current_length"`
	LongestLength int    `json:"longest_length"`
}

type Reward struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Cost        int64          `json:"cost"`
	Value       map[string]any `json:"value"`
}

type LevelProgress struct {
	LevelNumber  int     `json:"level_number"`
	TierName     string  `json:"tier_name"`
	TotalPoints  int64   `json:"total_points"`
	PointsToNext int64   `json:"points_to_next"`
	ProgressPct  float64 `json:"progress_pct"`
}

type GamificationEvent struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PointsDelta int64          `json:"points_delta"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Score  int64  `json:"score"`
	Rank   int    `json:"rank"`
}

// ActionResult aggregates everything a single processed action produced.
// Only strictly positive outcomes appear here.
type ActionResult struct {
	PointsEarned          int64               `json:"points_earned"`
	BadgesEarned          []Badge             `json:"badges_earned"`
	LevelUp               bool                `json:"level_up"`
	NewLevelNumber        int                 `json:"new_level_number,omitempty"`
	AchievementsCompleted []Achievement       `json:"achievements_completed"`
	StreaksUpdated        []Streak            `json:"streaks_updated"`
	EventsCreated         []GamificationEvent `json:"events_created"`
}
