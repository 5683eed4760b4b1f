package gamify

import (
	"testing"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/testutil"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Ledger_Calculate(t *testing.T) {
	ctx := testutil.NewMockContext()
	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification,
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
	)

	// Flat rule.
	require.EqualValues(t, 5, ledger.Calculate("daily_login", nil))

	// Sub-mapping rule sums every matching payload key.
	require.EqualValues(t, 60, ledger.Calculate("job_application",
		entity.Map{"first_application": 1, "application": 1}))
	require.EqualValues(t, 10, ledger.Calculate("job_application",
		entity.Map{"application": 1, "company": "acme"}))

	// Unknown action types are worth nothing.
	require.EqualValues(t, 0, ledger.Calculate("window_shopping", entity.Map{"application": 1}))

	// Payload keys without a sub-reward do not contribute.
	require.EqualValues(t, 25, ledger.Calculate("profile_completion",
		entity.Map{"basic_info": true, "summary": true, "avatar": true}))

	// A referral is worth its listed milestones, nothing flat.
	require.EqualValues(t, 50, ledger.Calculate("referral",
		entity.Map{"friend_signs_up": true}))
}

func Test_Ledger_Award(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification,
		repository.NewPointBalanceRepository(),
		repository.NewLevelTierRepository(),
	)

	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 40))

	balance, err := ledger.Balance(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.NotNil(t, balance)
	require.EqualValues(t, 40, balance.TotalPoints)
	require.Equal(t, testutil.Tier1.ID, balance.CurrentTierID)
	require.EqualValues(t, 60, balance.PointsToNext)
	require.InDelta(t, 40, balance.ProgressPct, 0.001)

	// Awards accumulate on the existing balance.
	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 10))
	balance, err = ledger.Balance(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 50, balance.TotalPoints)
	require.EqualValues(t, 50, balance.PointsToNext)

	// A user who never earned points has no balance, and that is not an
	// error.
	balance, err = ledger.Balance(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Nil(t, balance)
}
