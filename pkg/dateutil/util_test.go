package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_IsNewDay(t *testing.T) {
	morning := time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.August, 28, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.August, 29, 0, 1, 0, 0, time.UTC)

	require.False(t, IsNewDay(morning, evening))
	require.True(t, IsNewDay(evening, nextDay))
	require.True(t, IsNewDay(morning, morning.AddDate(0, 0, 10)))
	require.True(t, IsNewDay(time.Time{}, morning))

	// Going backwards is not a new day either.
	require.False(t, IsNewDay(nextDay, evening))
}

func Test_PeriodValue(t *testing.T) {
	at := time.Date(2026, time.August, 28, 15, 0, 0, 0, time.UTC)

	v, err := PeriodValue("daily", at)
	require.NoError(t, err)
	require.Equal(t, "2026-08-28", v)

	v, err = PeriodValue("weekly", at)
	require.NoError(t, err)
	require.Equal(t, "week/35/2026", v)

	v, err = PeriodValue("monthly", at)
	require.NoError(t, err)
	require.Equal(t, "month/8/2026", v)

	v, err = PeriodValue("all_time", at)
	require.NoError(t, err)
	require.Empty(t, v)

	_, err = PeriodValue("hourly", at)
	require.Error(t, err)
}
