package repository

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardEntryRepository interface {
	Get(ctx context.Context, leaderboardID, userID string) (*entity.LeaderboardEntry, error)
	// UpsertScore creates the entry or overwrites its score.
	UpsertScore(ctx context.Context, entry *entity.LeaderboardEntry) error
	// GetAllOrdered returns every entry of a leaderboard in creation order,
	// the stable base ordering rank recomputation relies on for ties.
	GetAllOrdered(ctx context.Context, leaderboardID string) ([]entity.LeaderboardEntry, error)
	UpdateRank(ctx context.Context, leaderboardID, userID string, rank int) error
	GetPage(ctx context.Context, leaderboardID string, offset, limit int) ([]entity.LeaderboardEntry, error)
}

type leaderboardEntryRepository struct{}

func NewLeaderboardEntryRepository() *leaderboardEntryRepository {
	return &leaderboardEntryRepository{}
}

func (r *leaderboardEntryRepository) Get(
	ctx context.Context, leaderboardID, userID string,
) (*entity.LeaderboardEntry, error) {
	var result entity.LeaderboardEntry
	err := xcontext.DB(ctx).
		Take(&result, "leaderboard_id=? AND user_id=?", leaderboardID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *leaderboardEntryRepository) UpsertScore(
	ctx context.Context, entry *entity.LeaderboardEntry,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "leaderboard_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"score": entry.Score,
			}),
		}).
		Create(entry).Error
}

func (r *leaderboardEntryRepository) GetAllOrdered(
	ctx context.Context, leaderboardID string,
) ([]entity.LeaderboardEntry, error) {
	var result []entity.LeaderboardEntry
	err := xcontext.DB(ctx).
		Where("leaderboard_id=?", leaderboardID).
		Order("created_at ASC, user_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *leaderboardEntryRepository) UpdateRank(
	ctx context.Context, leaderboardID, userID string, rank int,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.LeaderboardEntry{}).
		Where("leaderboard_id=? AND user_id=?", leaderboardID, userID).
		Update("rank", rank)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *leaderboardEntryRepository) GetPage(
	ctx context.Context, leaderboardID string, offset, limit int,
) ([]entity.LeaderboardEntry, error) {
	var result []entity.LeaderboardEntry
	// RANK is reserved in mysql 8, so the column must go through the
	// dialector quoting instead of a raw order string.
	err := xcontext.DB(ctx).
		Where("leaderboard_id=?", leaderboardID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}}).
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
