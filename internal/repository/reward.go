package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)
	// GetAffordable returns active rewards costing at most maxCost, cheapest
	// first.
	GetAffordable(ctx context.Context, maxCost int64) ([]entity.Reward, error)
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	var result entity.Reward
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) GetAffordable(ctx context.Context, maxCost int64) ([]entity.Reward, error) {
	var result []entity.Reward
	err := xcontext.DB(ctx).
		Where("is_active=true AND cost <= ?", maxCost).
		Order("cost ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
