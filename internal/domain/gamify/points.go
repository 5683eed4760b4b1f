package gamify

import (
	"context"
	"errors"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Ledger converts actions into point amounts and maintains point balances.
type Ledger struct {
	rules map[string]config.PointRule

	balanceRepo repository.PointBalanceRepository
	tierRepo    repository.LevelTierRepository
}

func NewLedger(
	cfg config.GamificationConfigs,
	balanceRepo repository.PointBalanceRepository,
	tierRepo repository.LevelTierRepository,
) *Ledger {
	return &Ledger{
		rules:       cfg.Points,
		balanceRepo: balanceRepo,
		tierRepo:    tierRepo,
	}
}

// Calculate returns the points an action is worth. A flat rule yields its
// amount as-is; a sub-mapping rule sums the contribution of every payload
// key with a configured sub-reward. Unknown action types are worth zero,
// never an error.
func (l *Ledger) Calculate(actionType string, payload entity.Map) int64 {
	rule, ok := l.rules[actionType]
	if !ok {
		return 0
	}

	if rule.Sub == nil {
		return int64(rule.Flat)
	}

	var points int64
	for key := range payload {
		if amount, ok := rule.Sub[key]; ok {
			points += int64(amount)
		}
	}

	return points
}

// Award adds amount to the user's balance, creating the balance at the
// lowest tier on first use, and recomputes the level progress.
func (l *Ledger) Award(ctx context.Context, userID string, amount int64) error {
	balance, err := l.getOrCreateBalance(ctx, userID)
	if err != nil {
		return err
	}

	if err := l.balanceRepo.AddPoints(ctx, userID, amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add points to balance: %v", err)
		return err
	}

	balance.TotalPoints += amount
	return l.refreshProgress(ctx, balance)
}

// Balance returns the user's balance, or nil without error when the user has
// never earned points.
func (l *Ledger) Balance(ctx context.Context, userID string) (*entity.PointBalance, error) {
	balance, err := l.balanceRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return balance, nil
}

func (l *Ledger) getOrCreateBalance(ctx context.Context, userID string) (*entity.PointBalance, error) {
	balance, err := l.balanceRepo.Get(ctx, userID)
	if err == nil {
		return balance, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newBalance := &entity.PointBalance{UserID: userID}
	firstTier, err := l.tierRepo.GetFirst(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// An empty tier catalog is a configuration gap. The balance still
		// accumulates points, it just has no tier to point at.
		xcontext.Logger(ctx).Warnf("No level tier configured, creating balance without tier")
	} else {
		newBalance.CurrentTierID = firstTier.ID
	}

	if err := l.balanceRepo.Create(ctx, newBalance); err != nil {
		return nil, err
	}

	return newBalance, nil
}

// refreshProgress recomputes points_to_next and progress_pct from the
// balance's tier neighborhood and persists them.
func (l *Ledger) refreshProgress(ctx context.Context, balance *entity.PointBalance) error {
	if balance.CurrentTierID == "" {
		return nil
	}

	current, err := l.tierRepo.GetByID(ctx, balance.CurrentTierID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get current tier %s: %v", balance.CurrentTierID, err)
		return nil
	}

	next, err := l.tierRepo.GetNext(ctx, current.LevelNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pointsToNext, progressPct := computeProgress(balance.TotalPoints, current, next)
	return l.balanceRepo.UpdateProgress(ctx, balance.UserID, pointsToNext, progressPct)
}
