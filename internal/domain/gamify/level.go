package gamify

import (
	"context"
	"errors"
	"time"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	mathutil "github.com/pkg/math"
	"gorm.io/gorm"
)

// LevelEngine advances point balances through the tier catalog.
type LevelEngine struct {
	balanceRepo repository.PointBalanceRepository
	tierRepo    repository.LevelTierRepository
}

func NewLevelEngine(
	balanceRepo repository.PointBalanceRepository,
	tierRepo repository.LevelTierRepository,
) *LevelEngine {
	return &LevelEngine{balanceRepo: balanceRepo, tierRepo: tierRepo}
}

// CheckLevelUp advances the user by exactly one tier when the next tier's
// required points are covered by the balance. A single award crossing several
// tiers needs one call per tier to catch up; that is a deliberate policy, not
// an oversight. The reached tier is returned on advance.
func (e *LevelEngine) CheckLevelUp(ctx context.Context, userID string) (*entity.LevelTier, error) {
	balance, err := e.balanceRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if balance.CurrentTierID == "" {
		return nil, nil
	}

	current, err := e.tierRepo.GetByID(ctx, balance.CurrentTierID)
	if err != nil {
		// The tier was removed from the catalog behind our back. Treat it as
		// a configuration gap and do nothing.
		xcontext.Logger(ctx).Warnf("Cannot get current tier %s: %v", balance.CurrentTierID, err)
		return nil, nil
	}

	next, err := e.tierRepo.GetNext(ctx, current.LevelNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if balance.TotalPoints < next.RequiredPoints {
		return nil, nil
	}

	err = e.balanceRepo.AdvanceTier(ctx, userID, current.ID, next.ID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Somebody advanced the tier concurrently; not an error.
			return nil, nil
		}

		return nil, err
	}

	after, err := e.tierRepo.GetNext(ctx, next.LevelNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pointsToNext, progressPct := computeProgress(balance.TotalPoints, next, after)
	if err := e.balanceRepo.UpdateProgress(ctx, userID, pointsToNext, progressPct); err != nil {
		return nil, err
	}

	return next, nil
}

// computeProgress derives points_to_next and progress_pct for a balance
// sitting on the current tier. A nil next tier means the top is reached.
func computeProgress(total int64, current, next *entity.LevelTier) (int64, float64) {
	if next == nil {
		return 0, 100
	}

	span := next.RequiredPoints - current.RequiredPoints
	if span <= 0 {
		return 0, 100
	}

	pointsToNext := mathutil.MaxInt64(0, next.RequiredPoints-total)
	progress := float64(total-current.RequiredPoints) / float64(span) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return pointsToNext, progress
}
