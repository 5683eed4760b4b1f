package testutil

import (
	"context"
	"database/sql"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
)

var (
	User1 = entity.User{Base: entity.Base{ID: "user1"}, Name: "Alice"}
	User2 = entity.User{Base: entity.Base{ID: "user2"}, Name: "Bob"}

	Tier1 = entity.LevelTier{
		Base: entity.Base{ID: "tier1"}, Name: "Newcomer",
		LevelNumber: 1, RequiredPoints: 0, IsActive: true,
	}
	Tier2 = entity.LevelTier{
		Base: entity.Base{ID: "tier2"}, Name: "Job Seeker",
		LevelNumber: 2, RequiredPoints: 100, IsActive: true,
		Benefits: entity.Array[string]{"profile_highlight"},
	}
	Tier3 = entity.LevelTier{
		Base: entity.Base{ID: "tier3"}, Name: "Professional",
		LevelNumber: 3, RequiredPoints: 300, IsActive: true,
		Benefits: entity.Array[string]{"profile_highlight", "priority_review"},
	}

	BadgeFirstApplication = entity.Badge{
		Base: entity.Base{ID: "badge_first_application"}, Name: "First Step",
		Description: "Submitted your first job application",
		Type:        "first_application", Points: 20,
		Rarity: entity.BadgeRarityCommon, IsActive: true,
	}
	BadgeActiveApplicant = entity.Badge{
		Base: entity.Base{ID: "badge_active_applicant"}, Name: "Active Applicant",
		Description: "Submitted ten job applications",
		Type:        "active_applicant", Points: 50,
		Rarity: entity.BadgeRarityRare, IsActive: true,
	}
	BadgeFirstCV = entity.Badge{
		Base: entity.Base{ID: "badge_first_cv"}, Name: "Paper Trail",
		Description: "Uploaded your first CV",
		Type:        "first_cv", Points: 15,
		Rarity: entity.BadgeRarityCommon, IsActive: true,
	}
	BadgeFirstReferral = entity.Badge{
		Base: entity.Base{ID: "badge_first_referral"}, Name: "Connector",
		Description: "Referred your first candidate",
		Type:        "first_referral", Points: 25,
		Rarity: entity.BadgeRarityUncommon, IsActive: true,
	}
	BadgeCompleteProfile = entity.Badge{
		Base: entity.Base{ID: "badge_complete_profile"}, Name: "All Set",
		Description: "Completed your profile",
		Type:        "complete_profile", Points: 30,
		Rarity: entity.BadgeRarityUncommon, IsActive: true,
	}
	BadgeDedicated = entity.Badge{
		Base: entity.Base{ID: "badge_dedicated"}, Name: "Dedicated",
		Description: "Completed the Dedicated Applicant achievement",
		Type:        "dedicated", Points: 0,
		Rarity: entity.BadgeRarityEpic, IsActive: true,
	}

	AchievementFiveApplications = entity.Achievement{
		Base: entity.Base{ID: "achievement_five_applications"}, Name: "Dedicated Applicant",
		Description: "Submit five job applications",
		Type:        "job_application",
		Condition:   entity.Map{"kind": "count", "target": "job_applications", "value": 5},
		Points:      40,
		BadgeID:     sql.NullString{String: "badge_dedicated", Valid: true},
		IsActive:    true,
	}
	AchievementThreeReferrals = entity.Achievement{
		Base: entity.Base{ID: "achievement_three_referrals"}, Name: "Talent Scout",
		Description: "Refer three candidates",
		Type:        "referral",
		Condition:   entity.Map{"kind": "count", "target": "referrals", "value": 3},
		Points:      60,
		IsActive:    true,
	}

	LeaderboardPointsAllTime = entity.Leaderboard{
		Base: entity.Base{ID: "board_points_all_time"}, Name: "Top Points",
		Metric: entity.LeaderboardMetricPoints, Period: entity.LeaderboardPeriodAllTime,
		IsActive: true,
	}
	LeaderboardBadgesAllTime = entity.Leaderboard{
		Base: entity.Base{ID: "board_badges_all_time"}, Name: "Badge Collectors",
		Metric: entity.LeaderboardMetricBadges, Period: entity.LeaderboardPeriodAllTime,
		IsActive: true,
	}
	LeaderboardApplicationsWeekly = entity.Leaderboard{
		Base: entity.Base{ID: "board_applications_weekly"}, Name: "Weekly Applicants",
		Metric: entity.LeaderboardMetricApplications, Period: entity.LeaderboardPeriodWeekly,
		IsActive: true,
	}
	LeaderboardStreakAllTime = entity.Leaderboard{
		Base: entity.Base{ID: "board_streak_all_time"}, Name: "Longest Streaks",
		Metric: entity.LeaderboardMetricStreak, Period: entity.LeaderboardPeriodAllTime,
		IsActive: true,
	}

	RewardProfileBoost = entity.Reward{
		Base: entity.Base{ID: "reward_profile_boost"}, Name: "Profile Boost",
		Description: "Pin your profile on top of recruiter searches for a week",
		Type:        entity.RewardTypePremiumFeature,
		Value:       entity.Map{"feature": "profile_boost", "days": 7},
		Cost:        50, IsActive: true,
	}
	RewardCVReview = entity.Reward{
		Base: entity.Base{ID: "reward_cv_review"}, Name: "Expert CV Review",
		Description: "A recruiter reviews your CV",
		Type:        entity.RewardTypeCustom,
		Value:       entity.Map{"service": "cv_review"},
		Cost:        200, IsActive: true,
	}
	RewardRetired = entity.Reward{
		Base: entity.Base{ID: "reward_retired"}, Name: "Retired Reward",
		Description: "No longer claimable",
		Type:        entity.RewardTypeDiscount,
		Value:       entity.Map{"discount_percent": 10},
		Cost:        10, IsActive: false,
	}
)

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertLevelTiers(ctx)
	insertBadges(ctx)
	insertAchievements(ctx)
	insertLeaderboards(ctx)
	insertRewards(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	mustInsert(userRepo.Create(ctx, &User1))
	mustInsert(userRepo.Create(ctx, &User2))
}

func insertLevelTiers(ctx context.Context) {
	tierRepo := repository.NewLevelTierRepository()
	mustInsert(tierRepo.Create(ctx, &Tier1))
	mustInsert(tierRepo.Create(ctx, &Tier2))
	mustInsert(tierRepo.Create(ctx, &Tier3))
}

func insertBadges(ctx context.Context) {
	badgeRepo := repository.NewBadgeRepository()
	mustInsert(badgeRepo.Create(ctx, &BadgeFirstApplication))
	mustInsert(badgeRepo.Create(ctx, &BadgeActiveApplicant))
	mustInsert(badgeRepo.Create(ctx, &BadgeFirstCV))
	mustInsert(badgeRepo.Create(ctx, &BadgeFirstReferral))
	mustInsert(badgeRepo.Create(ctx, &BadgeCompleteProfile))
	mustInsert(badgeRepo.Create(ctx, &BadgeDedicated))
}

func insertAchievements(ctx context.Context) {
	achievementRepo := repository.NewAchievementRepository()
	mustInsert(achievementRepo.Create(ctx, &AchievementFiveApplications))
	mustInsert(achievementRepo.Create(ctx, &AchievementThreeReferrals))
}

func insertLeaderboards(ctx context.Context) {
	leaderboardRepo := repository.NewLeaderboardRepository()
	mustInsert(leaderboardRepo.Create(ctx, &LeaderboardPointsAllTime))
	mustInsert(leaderboardRepo.Create(ctx, &LeaderboardBadgesAllTime))
	mustInsert(leaderboardRepo.Create(ctx, &LeaderboardApplicationsWeekly))
	mustInsert(leaderboardRepo.Create(ctx, &LeaderboardStreakAllTime))
}

func insertRewards(ctx context.Context) {
	rewardRepo := repository.NewRewardRepository()
	mustInsert(rewardRepo.Create(ctx, &RewardProfileBoost))
	mustInsert(rewardRepo.Create(ctx, &RewardCVReview))
	mustInsert(rewardRepo.Create(ctx, &RewardRetired))
}

func mustInsert(err error) {
	if err != nil {
		panic(err)
	}
}
