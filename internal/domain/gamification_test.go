package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/jobquest-lab/backend/internal/model"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/errorx"
	"github.com/jobquest-lab/backend/pkg/testutil"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_gamificationDomain_FullScenario(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	gamificationDomain := NewGamificationDomain(
		xcontext.Configs(ctx).Gamification,
		repository.NewUserRepository(),
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewStreakRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		repository.NewRewardRepository(),
		repository.NewUserRewardRepository(),
		repository.NewGamificationEventRepository(),
		repository.NewUserCounterRepository(),
		publisher,
	)

	// First application: sub-reward points plus the first-application badge
	// with its bonus points, and the application streak starts.
	resp, err := gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID:     testutil.User1.ID,
		ActionType: "job_application",
		Payload:    map[string]any{"first_application": 1},
	})
	require.NoError(t, err)
	require.EqualValues(t, 50, resp.Result.PointsEarned)
	require.Len(t, resp.Result.BadgesEarned, 1)
	require.Equal(t, "first_application", resp.Result.BadgesEarned[0].Type)
	require.False(t, resp.Result.LevelUp)
	require.Empty(t, resp.Result.AchievementsCompleted)
	require.Len(t, resp.Result.StreaksUpdated, 1)
	require.Equal(t, 1, resp.Result.StreaksUpdated[0].CurrentLength)
	require.Len(t, resp.Result.EventsCreated, 2)

	// Applications two to four. The fourth pushes the balance to 100 and
	// crosses into level 2.
	for i := 0; i < 3; i++ {
		resp, err = gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
			UserID:     testutil.User1.ID,
			ActionType: "job_application",
			Payload:    map[string]any{"application": 1},
		})
		require.NoError(t, err)
		require.EqualValues(t, 10, resp.Result.PointsEarned)
	}
	require.True(t, resp.Result.LevelUp)
	require.Equal(t, 2, resp.Result.NewLevelNumber)

	// The fifth application completes the achievement and grants its linked
	// badge.
	resp, err = gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID:     testutil.User1.ID,
		ActionType: "job_application",
		Payload:    map[string]any{"application": 1},
	})
	require.NoError(t, err)
	require.Len(t, resp.Result.AchievementsCompleted, 1)
	require.Equal(t, "Dedicated Applicant", resp.Result.AchievementsCompleted[0].Name)
	require.Len(t, resp.Result.BadgesEarned, 1)
	require.Equal(t, "dedicated", resp.Result.BadgesEarned[0].Type)
	require.Len(t, resp.Result.EventsCreated, 3)

	// 50+20 from the first application, 30 more applications points, 40 from
	// the achievement.
	levelResp, err := gamificationDomain.GetMyLevel(
		ctx, &model.GetMyLevelRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 150, levelResp.Level.TotalPoints)
	require.Equal(t, 2, levelResp.Level.LevelNumber)
	require.Equal(t, "Job Seeker", levelResp.Level.TierName)
	require.EqualValues(t, 150, levelResp.Level.PointsToNext)
	require.InDelta(t, 25, levelResp.Level.ProgressPct, 0.001)

	badgesResp, err := gamificationDomain.GetMyBadges(
		ctx, &model.GetMyBadgesRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, badgesResp.Badges, 2)

	streakResp, err := gamificationDomain.GetCurrentStreak(ctx, &model.GetCurrentStreakRequest{
		UserID:   testutil.User1.ID,
		Category: "application",
	})
	require.NoError(t, err)
	require.Equal(t, 1, streakResp.CurrentLength)

	rankResp, err := gamificationDomain.GetUserRank(ctx, &model.GetUserRankRequest{
		UserID: testutil.User1.ID,
		Metric: "points",
		Period: "all_time",
	})
	require.NoError(t, err)
	require.NotNil(t, rankResp.Rank)
	require.Equal(t, 1, *rankResp.Rank)

	// User2 never acted and has no rank.
	rankResp, err = gamificationDomain.GetUserRank(ctx, &model.GetUserRankRequest{
		UserID: testutil.User2.ID,
		Metric: "points",
		Period: "all_time",
	})
	require.NoError(t, err)
	require.Nil(t, rankResp.Rank)

	boardResp, err := gamificationDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Metric: "points",
		Period: "all_time",
	})
	require.NoError(t, err)
	require.Len(t, boardResp.Entries, 1)
	require.Equal(t, testutil.User1.ID, boardResp.Entries[0].UserID)
	require.EqualValues(t, 150, boardResp.Entries[0].Score)
	require.Equal(t, 1, boardResp.Entries[0].Rank)

	// Every committed event went out on the wire too. Five actions produced
	// 2+1+1+2+3 events.
	eventsResp, err := gamificationDomain.GetEvents(
		ctx, &model.GetEventsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, eventsResp.Events, 9)
	require.Len(t, publisher.PublishedPacks(), 9)
}

func Test_gamificationDomain_ClaimReward(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	gamificationDomain := NewGamificationDomain(
		xcontext.Configs(ctx).Gamification,
		repository.NewUserRepository(),
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewStreakRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		repository.NewRewardRepository(),
		repository.NewUserRewardRepository(),
		repository.NewGamificationEventRepository(),
		repository.NewUserCounterRepository(),
		&testutil.MockPublisher{},
	)

	// Earn enough to cross into level 2 and afford the boost.
	_, err := gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID:     testutil.User1.ID,
		ActionType: "monthly_login",
	})
	require.NoError(t, err)

	rewardsResp, err := gamificationDomain.GetAvailableRewards(
		ctx, &model.GetAvailableRewardsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, rewardsResp.Rewards, 1)

	claimResp, err := gamificationDomain.ClaimReward(ctx, &model.ClaimRewardRequest{
		UserID:   testutil.User1.ID,
		RewardID: testutil.RewardProfileBoost.ID,
	})
	require.NoError(t, err)
	require.True(t, claimResp.Claimed)

	// Spending points never demotes the level.
	levelResp, err := gamificationDomain.GetMyLevel(
		ctx, &model.GetMyLevelRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 50, levelResp.Level.TotalPoints)
	require.Equal(t, 2, levelResp.Level.LevelNumber)

	// A second claim of the same reward is refused without deducting.
	claimResp, err = gamificationDomain.ClaimReward(ctx, &model.ClaimRewardRequest{
		UserID:   testutil.User1.ID,
		RewardID: testutil.RewardProfileBoost.ID,
	})
	require.NoError(t, err)
	require.False(t, claimResp.Claimed)

	// An unaffordable claim changes nothing either.
	claimResp, err = gamificationDomain.ClaimReward(ctx, &model.ClaimRewardRequest{
		UserID:   testutil.User1.ID,
		RewardID: testutil.RewardCVReview.ID,
	})
	require.NoError(t, err)
	require.False(t, claimResp.Claimed)

	levelResp, err = gamificationDomain.GetMyLevel(
		ctx, &model.GetMyLevelRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 50, levelResp.Level.TotalPoints)
}

func Test_gamificationDomain_Validation(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	gamificationDomain := NewGamificationDomain(
		xcontext.Configs(ctx).Gamification,
		repository.NewUserRepository(),
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewStreakRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		repository.NewRewardRepository(),
		repository.NewUserRewardRepository(),
		repository.NewGamificationEventRepository(),
		repository.NewUserCounterRepository(),
		&testutil.MockPublisher{},
	)

	_, err := gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID:     "",
		ActionType: "daily_login",
	})
	require.Equal(t, "Not allow an empty user id or action type", err.Error())

	_, err = gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID:     "nobody",
		ActionType: "daily_login",
	})
	require.Equal(t, "Not found user", err.Error())

	// Unknown action types are processed leniently, producing nothing.
	resp, err := gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID:     testutil.User1.ID,
		ActionType: "mysterious_action",
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.Result.PointsEarned)
	require.Empty(t, resp.Result.BadgesEarned)
	require.Empty(t, resp.Result.EventsCreated)

	_, err = gamificationDomain.GetUserRank(ctx, &model.GetUserRankRequest{
		UserID: testutil.User1.ID,
		Metric: "shoe_size",
	})
	require.Error(t, err)
}

func Test_gamificationDomain_SerializesPerUser(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	gamificationDomain := NewGamificationDomain(
		xcontext.Configs(ctx).Gamification,
		repository.NewUserRepository(),
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewStreakRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		repository.NewRewardRepository(),
		repository.NewUserRewardRepository(),
		repository.NewGamificationEventRepository(),
		repository.NewUserCounterRepository(),
		&testutil.MockPublisher{},
	)

	const actions = 5
	var wg sync.WaitGroup
	errs := make(chan error, actions)
	for i := 0; i < actions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
				UserID:     testutil.User1.ID,
				ActionType: "daily_login",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Every award landed, none was lost to a race.
	levelResp, err := gamificationDomain.GetMyLevel(
		ctx, &model.GetMyLevelRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.EqualValues(t, actions*5, levelResp.Level.TotalPoints)

	// Same calendar day, so the streak moved once.
	streakResp, err := gamificationDomain.GetCurrentStreak(ctx, &model.GetCurrentStreakRequest{
		UserID:   testutil.User1.ID,
		Category: "login",
	})
	require.NoError(t, err)
	require.Equal(t, 1, streakResp.CurrentLength)
}

func Test_gamificationDomain_RanksFollowCommittedScores(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	gamificationDomain := NewGamificationDomain(
		xcontext.Configs(ctx).Gamification,
		repository.NewUserRepository(),
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewStreakRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		repository.NewRewardRepository(),
		repository.NewUserRewardRepository(),
		repository.NewGamificationEventRepository(),
		repository.NewUserCounterRepository(),
		&testutil.MockPublisher{},
	)

	// Two users sharing a board: each action must leave rank and score
	// consistent for both, not only for the acting user.
	_, err := gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID: testutil.User1.ID, ActionType: "monthly_login",
	})
	require.NoError(t, err)

	_, err = gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID: testutil.User2.ID, ActionType: "daily_login",
	})
	require.NoError(t, err)

	boardResp, err := gamificationDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Metric: "points",
		Period: "all_time",
	})
	require.NoError(t, err)
	require.Len(t, boardResp.Entries, 2)
	require.Equal(t, testutil.User1.ID, boardResp.Entries[0].UserID)
	require.EqualValues(t, 100, boardResp.Entries[0].Score)
	require.Equal(t, 1, boardResp.Entries[0].Rank)
	require.Equal(t, testutil.User2.ID, boardResp.Entries[1].UserID)
	require.EqualValues(t, 5, boardResp.Entries[1].Score)
	require.Equal(t, 2, boardResp.Entries[1].Rank)

	// The second user overtakes; both rows reflect the committed totals.
	_, err = gamificationDomain.ProcessAction(ctx, &model.ProcessActionRequest{
		UserID: testutil.User2.ID, ActionType: "monthly_login",
	})
	require.NoError(t, err)

	boardResp, err = gamificationDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Metric: "points",
		Period: "all_time",
	})
	require.NoError(t, err)
	require.Len(t, boardResp.Entries, 2)
	require.Equal(t, testutil.User2.ID, boardResp.Entries[0].UserID)
	require.EqualValues(t, 105, boardResp.Entries[0].Score)
	require.Equal(t, 1, boardResp.Entries[0].Rank)
	require.Equal(t, testutil.User1.ID, boardResp.Entries[1].UserID)
	require.EqualValues(t, 100, boardResp.Entries[1].Score)
	require.Equal(t, 2, boardResp.Entries[1].Rank)
}

func Test_isConflict(t *testing.T) {
	require.True(t, isConflict(errorx.New(errorx.ConflictRetry, "Concurrent update")))

	// Deterministic failures must not be retried.
	require.False(t, isConflict(errors.New("database exploded")))
	require.False(t, isConflict(errorx.New(errorx.BadRequest, "Bad payload")))
	require.False(t, isConflict(gorm.ErrRecordNotFound))
}
