package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserBadgeRepository interface {
	Get(ctx context.Context, userID, badgeID string) (*entity.UserBadge, error)
	// CreateIfNotExist inserts the row unless it already exists. It reports
	// whether a row was actually created.
	CreateIfNotExist(ctx context.Context, userBadge *entity.UserBadge) (bool, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type userBadgeRepository struct{}

func NewUserBadgeRepository() *userBadgeRepository {
	return &userBadgeRepository{}
}

func (r *userBadgeRepository) Get(ctx context.Context, userID, badgeID string) (*entity.UserBadge, error) {
	var result entity.UserBadge
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND badge_id=?", userID, badgeID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userBadgeRepository) CreateIfNotExist(
	ctx context.Context, userBadge *entity.UserBadge,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(userBadge)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *userBadgeRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	err := xcontext.DB(ctx).
		Preload("Badge").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userBadgeRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.UserBadge{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
