package testutil

import (
	"context"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/logger"
	"github.com/jobquest-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env:      "testing",
		LogLevel: "debug",
		Gamification: config.GamificationConfigs{
			EventTopic:       "gamification-events",
			MaxActionRetries: 3,
			Points: map[string]config.PointRule{
				"daily_login":   {Flat: 5},
				"weekly_login":  {Flat: 25},
				"monthly_login": {Flat: 100},
				"profile_completion": {Sub: map[string]int{
					"basic_info":   10,
					"photo":        5,
					"summary":      15,
					"skills":       5,
					"experience":   10,
					"education":    10,
					"contact_info": 5,
				}},
				"job_application": {Sub: map[string]int{
					"first_application":             50,
					"application":                   10,
					"application_with_cover_letter": 15,
					"application_with_video":        25,
				}},
				"cv_creation": {Sub: map[string]int{
					"create_cv":   30,
					"complete_cv": 20,
					"export_cv":   5,
				}},
				"skill_verification": {Sub: map[string]int{
					"verify_skill":  20,
					"complete_test": 30,
				}},
				"referral": {Sub: map[string]int{
					"invite_friend":            25,
					"friend_signs_up":          50,
					"friend_completes_profile": 25,
				}},
				"social": {Sub: map[string]int{
					"like_job":       2,
					"share_job":      5,
					"follow_company": 3,
					"write_review":   15,
				}},
			},
			Counters: map[string]string{
				"job_application": "job_applications",
				"cv_creation":     "cv_creations",
				"referral":        "referrals",
				"daily_login":     "logins",
			},
			Streaks: map[string]string{
				"daily_login":     "login",
				"job_application": "application",
			},
			StreakMilestones: []int{7, 30, 100},
			BadgeRules: []config.BadgeRule{
				{Action: "job_application", Badge: "first_application", Counter: "job_applications", Equals: 1},
				{Action: "job_application", Badge: "active_applicant", Counter: "job_applications", Equals: 10},
				{Action: "cv_creation", Badge: "first_cv", Counter: "cv_creations", Equals: 1},
				{Action: "referral", Badge: "first_referral", Counter: "referrals", Equals: 1},
				{Action: "profile_completion", Badge: "complete_profile", Metric: "completion_pct", AtLeast: 100},
			},
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.DEBUG))
	ctx = xcontext.WithDB(ctx, db)

	return ctx
}

func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
