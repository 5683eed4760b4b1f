package entity

import "github.com/jobquest-lab/backend/pkg/enum"

type LeaderboardMetric string

var (
	LeaderboardMetricPoints       = enum.New(LeaderboardMetric("points"))
	LeaderboardMetricBadges       = enum.New(LeaderboardMetric("badges"))
	LeaderboardMetricApplications = enum.New(LeaderboardMetric("applications"))
	LeaderboardMetricStreak       = enum.New(LeaderboardMetric("streak"))
)

type LeaderboardPeriod string

var (
	LeaderboardPeriodDaily   = enum.New(LeaderboardPeriod("daily"))
	LeaderboardPeriodWeekly  = enum.New(LeaderboardPeriod("weekly"))
	LeaderboardPeriodMonthly = enum.New(LeaderboardPeriod("monthly"))
	LeaderboardPeriodAllTime = enum.New(LeaderboardPeriod("all_time"))
)

// Leaderboard is a catalog row, unique per (metric, period).
type Leaderboard struct {
	Base

	Name     string
	Metric   LeaderboardMetric `gorm:"index:idx_leaderboards_metric_period,unique"`
	Period   LeaderboardPeriod `gorm:"index:idx_leaderboards_metric_period,unique"`
	IsActive bool              `gorm:"default:true"`
}
