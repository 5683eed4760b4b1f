package gamify

import (
	"context"
	"errors"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/errorx"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// RewardStore exposes the point-priced reward catalog and enforces
// single-claim semantics.
type RewardStore struct {
	rewardRepo     repository.RewardRepository
	userRewardRepo repository.UserRewardRepository
	balanceRepo    repository.PointBalanceRepository
	ledger         *Ledger
}

func NewRewardStore(
	rewardRepo repository.RewardRepository,
	userRewardRepo repository.UserRewardRepository,
	balanceRepo repository.PointBalanceRepository,
	ledger *Ledger,
) *RewardStore {
	return &RewardStore{
		rewardRepo:     rewardRepo,
		userRewardRepo: userRewardRepo,
		balanceRepo:    balanceRepo,
		ledger:         ledger,
	}
}

// Available returns the active rewards the user can afford right now.
func (s *RewardStore) Available(ctx context.Context, userID string) ([]entity.Reward, error) {
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if balance == nil {
		return nil, nil
	}

	return s.rewardRepo.GetAffordable(ctx, balance.TotalPoints)
}

// Claim grants the reward and deducts its cost. A repeated claim fails with
// errorx.AlreadyClaimed and an unaffordable one with
// errorx.InsufficientPoints; the balance is untouched in both cases. The
// caller must run Claim inside a transaction so the grant and the deduction
// commit together, and so the provisional grant rolls back with a failed
// deduction.
//
// Claiming never demotes the level: only total_points changes, the tier
// reference is sticky.
func (s *RewardStore) Claim(ctx context.Context, userID, rewardID string) (bool, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("No reward %s in catalog", rewardID)
			return false, nil
		}

		return false, err
	}

	if !reward.IsActive {
		return false, nil
	}

	created, err := s.userRewardRepo.CreateIfNotExist(ctx, &entity.UserReward{
		UserID:   userID,
		RewardID: reward.ID,
	})
	if err != nil {
		return false, err
	}

	if !created {
		return false, errorx.New(errorx.AlreadyClaimed, "Reward %s was already claimed", rewardID)
	}

	// The deduction is a single conditional statement, so affordability and
	// subtraction cannot be split by a concurrent claim.
	if err := s.balanceRepo.DeductPoints(ctx, userID, reward.Cost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errorx.New(errorx.InsufficientPoints,
				"Not enough points for reward %s", rewardID)
		}

		return false, err
	}

	balance, err := s.balanceRepo.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	if err := s.ledger.refreshProgress(ctx, balance); err != nil {
		return false, err
	}

	return true, nil
}
