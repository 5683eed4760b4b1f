package repository

import (
	"context"
	"time"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserAchievementRepository interface {
	Get(ctx context.Context, userID, achievementID string) (*entity.UserAchievement, error)
	CreateIfNotExist(ctx context.Context, progress *entity.UserAchievement) (bool, error)
	// Complete marks the progress row completed. The update is conditioned on
	// the completed flag, so it reports false for an already-completed row and
	// the flag can never revert.
	Complete(ctx context.Context, userID, achievementID string, at time.Time) (bool, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.UserAchievement, error)
}

type userAchievementRepository struct{}

func NewUserAchievementRepository() *userAchievementRepository {
	return &userAchievementRepository{}
}

func (r *userAchievementRepository) Get(
	ctx context.Context, userID, achievementID string,
) (*entity.UserAchievement, error) {
	var result entity.UserAchievement
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND achievement_id=?", userID, achievementID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userAchievementRepository) CreateIfNotExist(
	ctx context.Context, progress *entity.UserAchievement,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(progress)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *userAchievementRepository) Complete(
	ctx context.Context, userID, achievementID string, at time.Time,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Where("user_id=? AND achievement_id=? AND is_completed=false", userID, achievementID).
		Updates(map[string]any{
			"is_completed": true,
			"completed_at": at,
		})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *userAchievementRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.UserAchievement, error) {
	var result []entity.UserAchievement
	err := xcontext.DB(ctx).
		Preload("Achievement").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
