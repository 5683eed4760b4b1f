package gamify

import (
	"testing"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/testutil"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Ranker_DenseRanksAndTies(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewPointBalanceRepository()
	entryRepo := repository.NewLeaderboardEntryRepository()
	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification, balanceRepo, repository.NewLevelTierRepository())
	ranker := NewRanker(
		repository.NewLeaderboardRepository(),
		entryRepo,
		balanceRepo,
		repository.NewUserBadgeRepository(),
		repository.NewUserCounterRepository(),
		repository.NewStreakRepository(),
	)

	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 50))
	release, err := ranker.Update(ctx, testutil.User1.ID)
	require.NoError(t, err)
	release()

	rank, err := ranker.Rank(ctx, testutil.User1.ID,
		entity.LeaderboardMetricPoints, entity.LeaderboardPeriodAllTime)
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	// A higher score takes over the first place.
	require.NoError(t, ledger.Award(ctx, testutil.User2.ID, 80))
	release, err = ranker.Update(ctx, testutil.User2.ID)
	require.NoError(t, err)
	release()

	rank, err = ranker.Rank(ctx, testutil.User2.ID,
		entity.LeaderboardMetricPoints, entity.LeaderboardPeriodAllTime)
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	rank, err = ranker.Rank(ctx, testutil.User1.ID,
		entity.LeaderboardMetricPoints, entity.LeaderboardPeriodAllTime)
	require.NoError(t, err)
	require.Equal(t, 2, rank)

	// On an equal score the earlier entrant keeps the better rank, and the
	// ranks stay a dense 1..N permutation.
	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 30))
	release, err = ranker.Update(ctx, testutil.User1.ID)
	require.NoError(t, err)
	release()

	entries, err := entryRepo.GetPage(ctx, testutil.LeaderboardPointsAllTime.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, testutil.User1.ID, entries[0].UserID)
	require.Equal(t, 1, entries[0].Rank)
	require.EqualValues(t, 80, entries[0].Score)
	require.Equal(t, testutil.User2.ID, entries[1].UserID)
	require.Equal(t, 2, entries[1].Rank)
	require.EqualValues(t, 80, entries[1].Score)
}

func Test_Ranker_NoStandingNoEntry(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewPointBalanceRepository()
	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification, balanceRepo, repository.NewLevelTierRepository())
	ranker := NewRanker(
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		balanceRepo,
		repository.NewUserBadgeRepository(),
		repository.NewUserCounterRepository(),
		repository.NewStreakRepository(),
	)

	// User1 has points but no badges, applications or streaks: only the
	// points board gets an entry.
	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 10))
	release, err := ranker.Update(ctx, testutil.User1.ID)
	require.NoError(t, err)
	release()

	rank, err := ranker.Rank(ctx, testutil.User1.ID,
		entity.LeaderboardMetricPoints, entity.LeaderboardPeriodAllTime)
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	rank, err = ranker.Rank(ctx, testutil.User1.ID,
		entity.LeaderboardMetricBadges, entity.LeaderboardPeriodAllTime)
	require.NoError(t, err)
	require.Equal(t, 0, rank)

	// A board that does not exist ranks nobody.
	rank, err = ranker.Rank(ctx, testutil.User1.ID,
		entity.LeaderboardMetricPoints, entity.LeaderboardPeriodDaily)
	require.NoError(t, err)
	require.Equal(t, 0, rank)
}

func Test_Ranker_HoldsBoardLocksUntilRelease(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewPointBalanceRepository()
	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification, balanceRepo, repository.NewLevelTierRepository())
	ranker := NewRanker(
		repository.NewLeaderboardRepository(),
		repository.NewLeaderboardEntryRepository(),
		balanceRepo,
		repository.NewUserBadgeRepository(),
		repository.NewUserCounterRepository(),
		repository.NewStreakRepository(),
	)

	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 50))
	release, err := ranker.Update(ctx, testutil.User1.ID)
	require.NoError(t, err)

	// Every touched board stays locked until the caller committed its
	// transaction: a concurrent recompute must not rank against scores it
	// cannot see yet.
	lock, ok := ranker.boardLocks.Load(testutil.LeaderboardPointsAllTime.ID)
	require.True(t, ok)
	require.False(t, lock.TryLock())

	release()
	release()
	require.True(t, lock.TryLock())
	lock.Unlock()
}
