package gamify

import (
	"testing"

	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/errorx"
	"github.com/jobquest-lab/backend/pkg/testutil"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_RewardStore_AvailableAndClaim(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewPointBalanceRepository()
	userRewardRepo := repository.NewUserRewardRepository()
	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification, balanceRepo, repository.NewLevelTierRepository())
	store := NewRewardStore(
		repository.NewRewardRepository(), userRewardRepo, balanceRepo, ledger)

	// Without a balance nothing is available.
	rewards, err := store.Available(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, rewards)

	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 60))

	// Affordable and active only: the expert review costs too much and the
	// retired reward is inactive.
	rewards, err = store.Available(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	require.Equal(t, testutil.RewardProfileBoost.ID, rewards[0].ID)

	claimed, err := store.Claim(ctx, testutil.User1.ID, testutil.RewardProfileBoost.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	balance, err := balanceRepo.Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 10, balance.TotalPoints)

	// Claiming the same reward twice fails with AlreadyClaimed and never
	// deducts again.
	claimed, err = store.Claim(ctx, testutil.User1.ID, testutil.RewardProfileBoost.ID)
	require.False(t, claimed)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyClaimed, errx.Code)

	balance, err = balanceRepo.Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 10, balance.TotalPoints)

	// Unknown and inactive rewards fail softly.
	claimed, err = store.Claim(ctx, testutil.User1.ID, "no-such-reward")
	require.NoError(t, err)
	require.False(t, claimed)

	claimed, err = store.Claim(ctx, testutil.User1.ID, testutil.RewardRetired.ID)
	require.NoError(t, err)
	require.False(t, claimed)
}

func Test_RewardStore_InsufficientPoints(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewPointBalanceRepository()
	userRewardRepo := repository.NewUserRewardRepository()
	ledger := NewLedger(
		xcontext.Configs(ctx).Gamification, balanceRepo, repository.NewLevelTierRepository())
	store := NewRewardStore(
		repository.NewRewardRepository(), userRewardRepo, balanceRepo, ledger)

	require.NoError(t, ledger.Award(ctx, testutil.User1.ID, 60))

	// Claim runs inside a transaction so the provisional grant rolls back
	// together with the failed deduction.
	txCtx := xcontext.WithDBTransaction(ctx)
	claimed, err := store.Claim(txCtx, testutil.User1.ID, testutil.RewardCVReview.ID)
	require.False(t, claimed)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientPoints, errx.Code)
	xcontext.WithRollbackDBTransaction(txCtx)

	// Neither the balance nor the grant survived.
	balance, err := balanceRepo.Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 60, balance.TotalPoints)

	_, err = userRewardRepo.Get(ctx, testutil.User1.ID, testutil.RewardCVReview.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
