package entity

import "github.com/jobquest-lab/backend/pkg/enum"

type EventKind string

var (
	EventKindPointsEarned         = enum.New(EventKind("points_earned"))
	EventKindBadgeEarned          = enum.New(EventKind("badge_earned"))
	EventKindLevelUp              = enum.New(EventKind("level_up"))
	EventKindAchievementCompleted = enum.New(EventKind("achievement_completed"))
	EventKindStreakMilestone      = enum.New(EventKind("streak_milestone"))
	EventKindRewardClaimed        = enum.New(EventKind("reward_claimed"))
)

// GamificationEvent is an append-only log row. Rows are write-once; a
// delivery system may subscribe to them, the engine never delivers anything
// itself.
type GamificationEvent struct {
	Base

	UserID      string `gorm:"index"`
	Kind        EventKind
	Title       string
	Description string
	PointsDelta int64
	Metadata    Map
}
