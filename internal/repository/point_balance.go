package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PointBalanceRepository interface {
	Get(ctx context.Context, userID string) (*entity.PointBalance, error)
	Create(ctx context.Context, balance *entity.PointBalance) error
	AddPoints(ctx context.Context, userID string, amount int64) error
	DeductPoints(ctx context.Context, userID string, amount int64) error
	UpdateProgress(ctx context.Context, userID string, pointsToNext int64, progressPct float64) error
	AdvanceTier(ctx context.Context, userID, fromTierID, toTierID string, at time.Time) error
}

type pointBalanceRepository struct{}

func NewPointBalanceRepository() *pointBalanceRepository {
	return &pointBalanceRepository{}
}

func (r *pointBalanceRepository) Get(ctx context.Context, userID string) (*entity.PointBalance, error) {
	var result entity.PointBalance
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pointBalanceRepository) Create(ctx context.Context, balance *entity.PointBalance) error {
	return xcontext.DB(ctx).Create(balance).Error
}

func (r *pointBalanceRepository) AddPoints(ctx context.Context, userID string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PointBalance{}).
		Where("user_id=?", userID).
		Update("total_points", gorm.Expr("total_points+?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeductPoints removes amount from the balance only if it can afford it. The
// affordability check and the deduction are a single statement, so there is
// no check-then-act window. ErrRecordNotFound means insufficient points or a
// missing balance.
func (r *pointBalanceRepository) DeductPoints(ctx context.Context, userID string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PointBalance{}).
		Where("user_id=? AND total_points >= ?", userID, amount).
		Update("total_points", gorm.Expr("total_points-?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *pointBalanceRepository) UpdateProgress(
	ctx context.Context, userID string, pointsToNext int64, progressPct float64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.PointBalance{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"points_to_next": pointsToNext,
			"progress_pct":   progressPct,
		}).Error
}

// AdvanceTier moves the balance from one tier to the next. The update is
// conditioned on the current tier so concurrent advances cannot skip or
// repeat a step.
func (r *pointBalanceRepository) AdvanceTier(
	ctx context.Context, userID, fromTierID, toTierID string, at time.Time,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PointBalance{}).
		Where("user_id=? AND current_tier_id=?", userID, fromTierID).
		Updates(map[string]any{
			"current_tier_id":  toTierID,
			"last_level_up_at": at,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
