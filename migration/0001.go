package migration

import (
	"context"
	"database/sql"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// migrate0001 seeds the starter catalogs. Rows already present are left
// alone, so re-running the migrator is safe.
func migrate0001(ctx context.Context) error {
	tiers := []entity.LevelTier{
		{Base: entity.Base{ID: "tier-newcomer"}, Name: "Newcomer",
			LevelNumber: 1, RequiredPoints: 0, IsActive: true},
		{Base: entity.Base{ID: "tier-job-seeker"}, Name: "Job Seeker",
			LevelNumber: 2, RequiredPoints: 100, IsActive: true,
			Benefits: entity.Array[string]{"profile_highlight"}},
		{Base: entity.Base{ID: "tier-professional"}, Name: "Professional",
			LevelNumber: 3, RequiredPoints: 300, IsActive: true,
			Benefits: entity.Array[string]{"profile_highlight", "priority_review"}},
		{Base: entity.Base{ID: "tier-expert"}, Name: "Expert",
			LevelNumber: 4, RequiredPoints: 1000, IsActive: true,
			Benefits: entity.Array[string]{"profile_highlight", "priority_review", "direct_contact"}},
	}

	badges := []entity.Badge{
		{Base: entity.Base{ID: "badge-first-application"}, Name: "First Step",
			Description: "Submitted your first job application",
			Type:        "first_application", Points: 20,
			Rarity: entity.BadgeRarityCommon, IsActive: true},
		{Base: entity.Base{ID: "badge-active-applicant"}, Name: "Active Applicant",
			Description: "Submitted ten job applications",
			Type:        "active_applicant", Points: 50,
			Rarity: entity.BadgeRarityRare, IsActive: true},
		{Base: entity.Base{ID: "badge-first-cv"}, Name: "Paper Trail",
			Description: "Uploaded your first CV",
			Type:        "first_cv", Points: 15,
			Rarity: entity.BadgeRarityCommon, IsActive: true},
		{Base: entity.Base{ID: "badge-first-referral"}, Name: "Connector",
			Description: "Referred your first candidate",
			Type:        "first_referral", Points: 25,
			Rarity: entity.BadgeRarityUncommon, IsActive: true},
		{Base: entity.Base{ID: "badge-complete-profile"}, Name: "All Set",
			Description: "Completed your profile",
			Type:        "complete_profile", Points: 30,
			Rarity: entity.BadgeRarityUncommon, IsActive: true},
		{Base: entity.Base{ID: "badge-dedicated"}, Name: "Dedicated",
			Description: "Completed the Dedicated Applicant achievement",
			Type:        "dedicated",
			Rarity:      entity.BadgeRarityEpic, IsActive: true},
	}

	achievements := []entity.Achievement{
		{Base: entity.Base{ID: "achievement-five-applications"}, Name: "Dedicated Applicant",
			Description: "Submit five job applications",
			Type:        "job_application",
			Condition:   entity.Map{"kind": "count", "target": "job_applications", "value": 5},
			Points:      40,
			BadgeID:     sql.NullString{String: "badge-dedicated", Valid: true},
			IsActive:    true},
		{Base: entity.Base{ID: "achievement-three-referrals"}, Name: "Talent Scout",
			Description: "Refer three candidates",
			Type:        "referral",
			Condition:   entity.Map{"kind": "count", "target": "referrals", "value": 3},
			Points:      60,
			IsActive:    true},
	}

	leaderboards := []entity.Leaderboard{
		{Base: entity.Base{ID: "board-points-all-time"}, Name: "Top Points",
			Metric: entity.LeaderboardMetricPoints, Period: entity.LeaderboardPeriodAllTime,
			IsActive: true},
		{Base: entity.Base{ID: "board-badges-all-time"}, Name: "Badge Collectors",
			Metric: entity.LeaderboardMetricBadges, Period: entity.LeaderboardPeriodAllTime,
			IsActive: true},
		{Base: entity.Base{ID: "board-applications-weekly"}, Name: "Weekly Applicants",
			Metric: entity.LeaderboardMetricApplications, Period: entity.LeaderboardPeriodWeekly,
			IsActive: true},
		{Base: entity.Base{ID: "board-streak-all-time"}, Name: "Longest Streaks",
			Metric: entity.LeaderboardMetricStreak, Period: entity.LeaderboardPeriodAllTime,
			IsActive: true},
	}

	rewards := []entity.Reward{
		{Base: entity.Base{ID: "reward-profile-boost"}, Name: "Profile Boost",
			Description: "Pin your profile on top of recruiter searches for a week",
			Type:        entity.RewardTypePremiumFeature,
			Value:       entity.Map{"feature": "profile_boost", "days": 7},
			Cost:        50, IsActive: true},
		{Base: entity.Base{ID: "reward-cv-review"}, Name: "Expert CV Review",
			Description: "A recruiter reviews your CV",
			Type:        entity.RewardTypeCustom,
			Value:       entity.Map{"service": "cv_review"},
			Cost:        200, IsActive: true},
	}

	db := xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true})
	for _, seed := range []any{tiers, badges, achievements, leaderboards, rewards} {
		if err := db.Create(seed).Error; err != nil {
			return err
		}
	}

	return nil
}
