package repository

import (
	"context"
	"errors"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserCounterRepository interface {
	// Increase adds one to the named counter, creating it at 1 when the row
	// does not exist yet, and returns the new value.
	Increase(ctx context.Context, userID, name string) (int64, error)
	// Get returns the counter value; a missing row counts as zero.
	Get(ctx context.Context, userID, name string) (int64, error)
}

type userCounterRepository struct{}

func NewUserCounterRepository() *userCounterRepository {
	return &userCounterRepository{}
}

func (r *userCounterRepository) Increase(ctx context.Context, userID, name string) (int64, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value": gorm.Expr("value+1"),
			}),
		}).
		Create(&entity.UserCounter{UserID: userID, Name: name, Value: 1}).Error
	if err != nil {
		return 0, err
	}

	return r.Get(ctx, userID, name)
}

func (r *userCounterRepository) Get(ctx context.Context, userID, name string) (int64, error) {
	var result entity.UserCounter
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND name=?", userID, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return result.Value, nil
}
