package gamify

import (
	"testing"
	"time"

	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/testutil"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_StreakTracker_Update(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	tracker := NewStreakTracker(
		xcontext.Configs(ctx).Gamification, repository.NewStreakRepository())

	day1 := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	// First ever qualifying action starts the streak at one.
	streaks, milestones, err := tracker.Update(ctx, testutil.User1.ID, "daily_login", day1)
	require.NoError(t, err)
	require.Len(t, streaks, 1)
	require.Equal(t, "login", streaks[0].Category)
	require.Equal(t, 1, streaks[0].CurrentLength)
	require.Equal(t, 1, streaks[0].LongestLength)
	require.Empty(t, milestones)

	// A repeat on the same day leaves the lengths untouched.
	streaks, _, err = tracker.Update(ctx, testutil.User1.ID, "daily_login", day1.Add(5*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, streaks[0].CurrentLength)

	// The next day increments.
	streaks, _, err = tracker.Update(ctx, testutil.User1.ID, "daily_login", day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 2, streaks[0].CurrentLength)

	// A multi-day gap still increments, gaps do not reset the streak.
	streaks, _, err = tracker.Update(ctx, testutil.User1.ID, "daily_login", day1.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Equal(t, 3, streaks[0].CurrentLength)
	require.Equal(t, 3, streaks[0].LongestLength)

	// Actions outside the streak mapping do not touch any streak.
	streaks, milestones, err = tracker.Update(ctx, testutil.User1.ID, "profile_completion", day1)
	require.NoError(t, err)
	require.Empty(t, streaks)
	require.Empty(t, milestones)

	current, err := tracker.Current(ctx, testutil.User1.ID, "login")
	require.NoError(t, err)
	require.Equal(t, 3, current)

	current, err = tracker.Current(ctx, testutil.User1.ID, "application")
	require.NoError(t, err)
	require.Equal(t, 0, current)
}

func Test_StreakTracker_Milestones(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	tracker := NewStreakTracker(
		xcontext.Configs(ctx).Gamification, repository.NewStreakRepository())

	start := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 6; day++ {
		_, milestones, err := tracker.Update(
			ctx, testutil.User1.ID, "daily_login", start.AddDate(0, 0, day))
		require.NoError(t, err)
		require.Empty(t, milestones)
	}

	_, milestones, err := tracker.Update(
		ctx, testutil.User1.ID, "daily_login", start.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Equal(t, []int{7}, milestones)
}
