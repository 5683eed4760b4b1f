package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type LevelTierRepository interface {
	Create(ctx context.Context, tier *entity.LevelTier) error
	GetByID(ctx context.Context, id string) (*entity.LevelTier, error)
	GetFirst(ctx context.Context) (*entity.LevelTier, error)
	GetNext(ctx context.Context, levelNumber int) (*entity.LevelTier, error)
	GetList(ctx context.Context) ([]entity.LevelTier, error)
}

type levelTierRepository struct{}

func NewLevelTierRepository() *levelTierRepository {
	return &levelTierRepository{}
}

func (r *levelTierRepository) Create(ctx context.Context, tier *entity.LevelTier) error {
	return xcontext.DB(ctx).Create(tier).Error
}

func (r *levelTierRepository) GetByID(ctx context.Context, id string) (*entity.LevelTier, error) {
	var result entity.LevelTier
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetFirst returns the lowest active tier, the one every balance starts at.
func (r *levelTierRepository) GetFirst(ctx context.Context) (*entity.LevelTier, error) {
	var result entity.LevelTier
	err := xcontext.DB(ctx).
		Where("is_active=true").
		Order("level_number ASC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetNext returns the lowest active tier above the given level number.
func (r *levelTierRepository) GetNext(ctx context.Context, levelNumber int) (*entity.LevelTier, error) {
	var result entity.LevelTier
	err := xcontext.DB(ctx).
		Where("level_number > ? AND is_active=true", levelNumber).
		Order("level_number ASC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *levelTierRepository) GetList(ctx context.Context) ([]entity.LevelTier, error) {
	var result []entity.LevelTier
	err := xcontext.DB(ctx).
		Where("is_active=true").
		Order("level_number ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
