package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

type LeaderboardRepository interface {
	Create(ctx context.Context, leaderboard *entity.Leaderboard) error
	GetByID(ctx context.Context, id string) (*entity.Leaderboard, error)
	GetByMetricPeriod(
		ctx context.Context,
		metric entity.LeaderboardMetric,
		period entity.LeaderboardPeriod,
	) (*entity.Leaderboard, error)
	GetActiveList(ctx context.Context) ([]entity.Leaderboard, error)
}

type leaderboardRepository struct{}

func NewLeaderboardRepository() *leaderboardRepository {
	return &leaderboardRepository{}
}

func (r *leaderboardRepository) Create(ctx context.Context, leaderboard *entity.Leaderboard) error {
	return xcontext.DB(ctx).Create(leaderboard).Error
}

func (r *leaderboardRepository) GetByID(ctx context.Context, id string) (*entity.Leaderboard, error) {
	var result entity.Leaderboard
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *leaderboardRepository) GetByMetricPeriod(
	ctx context.Context,
	metric entity.LeaderboardMetric,
	period entity.LeaderboardPeriod,
) (*entity.Leaderboard, error) {
	var result entity.Leaderboard
	err := xcontext.DB(ctx).
		Take(&result, "metric=? AND period=? AND is_active=true", metric, period).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *leaderboardRepository) GetActiveList(ctx context.Context) ([]entity.Leaderboard, error) {
	var result []entity.Leaderboard
	err := xcontext.DB(ctx).
		Where("is_active=true").
		Order("metric, period").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
