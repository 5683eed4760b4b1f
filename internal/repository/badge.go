package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *entity.Badge) error
	GetByID(ctx context.Context, id string) (*entity.Badge, error)
	GetByType(ctx context.Context, badgeType string) (*entity.Badge, error)
	GetList(ctx context.Context) ([]entity.Badge, error)
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	return xcontext.DB(ctx).Create(badge).Error
}

func (r *badgeRepository) GetByID(ctx context.Context, id string) (*entity.Badge, error) {
	var result entity.Badge
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetByType(ctx context.Context, badgeType string) (*entity.Badge, error) {
	var result entity.Badge
	err := xcontext.DB(ctx).
		Take(&result, "type=? AND is_active=true", badgeType).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetList(ctx context.Context) ([]entity.Badge, error) {
	var result []entity.Badge
	err := xcontext.DB(ctx).
		Where("is_active=true").
		Order("type, points").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
