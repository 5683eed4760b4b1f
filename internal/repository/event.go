package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type GamificationEventRepository interface {
	Create(ctx context.Context, event *entity.GamificationEvent) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.GamificationEvent, error)
}

type gamificationEventRepository struct{}

func NewGamificationEventRepository() *gamificationEventRepository {
	return &gamificationEventRepository{}
}

func (r *gamificationEventRepository) Create(ctx context.Context, event *entity.GamificationEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *gamificationEventRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.GamificationEvent, error) {
	var result []entity.GamificationEvent
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
