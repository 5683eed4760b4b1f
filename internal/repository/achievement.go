package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *entity.Achievement) error
	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	GetList(ctx context.Context) ([]entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *entity.Achievement) error {
	return xcontext.DB(ctx).Create(achievement).Error
}

func (r *achievementRepository) GetByID(ctx context.Context, id string) (*entity.Achievement, error) {
	var result entity.Achievement
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *achievementRepository) GetList(ctx context.Context) ([]entity.Achievement, error) {
	var result []entity.Achievement
	err := xcontext.DB(ctx).
		Where("is_active=true").
		Order("type, points").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
