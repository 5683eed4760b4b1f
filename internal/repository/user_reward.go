package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserRewardRepository interface {
	Get(ctx context.Context, userID, rewardID string) (*entity.UserReward, error)
	CreateIfNotExist(ctx context.Context, userReward *entity.UserReward) (bool, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.UserReward, error)
}

type userRewardRepository struct{}

func NewUserRewardRepository() *userRewardRepository {
	return &userRewardRepository{}
}

func (r *userRewardRepository) Get(ctx context.Context, userID, rewardID string) (*entity.UserReward, error) {
	var result entity.UserReward
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND reward_id=?", userID, rewardID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRewardRepository) CreateIfNotExist(
	ctx context.Context, userReward *entity.UserReward,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "reward_id"}},
			DoNothing: true,
		}).
		Create(userReward)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *userRewardRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.UserReward, error) {
	var result []entity.UserReward
	err := xcontext.DB(ctx).
		Preload("Reward").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
