package repository

import (
	"context"
	"time"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type StreakRepository interface {
	Get(ctx context.Context, userID, category string) (*entity.Streak, error)
	Create(ctx context.Context, streak *entity.Streak) error
	Update(ctx context.Context, userID, category string, current, longest int, lastActivity time.Time) error
	GetListByUserID(ctx context.Context, userID string) ([]entity.Streak, error)
}

type streakRepository struct{}

func NewStreakRepository() *streakRepository {
	return &streakRepository{}
}

func (r *streakRepository) Get(ctx context.Context, userID, category string) (*entity.Streak, error) {
	var result entity.Streak
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND category=?", userID, category).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *streakRepository) Create(ctx context.Context, streak *entity.Streak) error {
	return xcontext.DB(ctx).Create(streak).Error
}

func (r *streakRepository) Update(
	ctx context.Context, userID, category string, current, longest int, lastActivity time.Time,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Streak{}).
		Where("user_id=? AND category=?", userID, category).
		Updates(map[string]any{
			"current_length": current,
			"longest_length": longest,
			"last_activity":  lastActivity,
		}).Error
}

func (r *streakRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Streak, error) {
	var result []entity.Streak
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("current_length DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
