package gamify

import (
	"context"
	"errors"
	"sync"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/errorx"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Ranker maintains dense 1..N rank orderings per leaderboard.
type Ranker struct {
	leaderboardRepo repository.LeaderboardRepository
	entryRepo       repository.LeaderboardEntryRepository
	balanceRepo     repository.PointBalanceRepository
	userBadgeRepo   repository.UserBadgeRepository
	counterRepo     repository.UserCounterRepository
	streakRepo      repository.StreakRepository

	// boardLocks serializes the read-all-then-write-all recompute per
	// leaderboard. The locks stay held until the caller releases them after
	// its commit, so the next recompute reads committed scores only.
	boardLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewRanker(
	leaderboardRepo repository.LeaderboardRepository,
	entryRepo repository.LeaderboardEntryRepository,
	balanceRepo repository.PointBalanceRepository,
	userBadgeRepo repository.UserBadgeRepository,
	counterRepo repository.UserCounterRepository,
	streakRepo repository.StreakRepository,
) *Ranker {
	return &Ranker{
		leaderboardRepo: leaderboardRepo,
		entryRepo:       entryRepo,
		balanceRepo:     balanceRepo,
		userBadgeRepo:   userBadgeRepo,
		counterRepo:     counterRepo,
		streakRepo:      streakRepo,
		boardLocks:      xsync.NewMapOf[*sync.Mutex](),
	}
}

// Update refreshes the user's score on every active leaderboard and
// recomputes all ranks of each touched board. The full recompute is
// O(N log N) per board; it trades scalability for exact rank consistency.
//
// The returned release function unlocks every touched board. Callers must
// invoke it only after their transaction commits or rolls back, otherwise a
// concurrent recompute reads a snapshot without this update's scores and
// writes ranks inconsistent with them. Boards are locked in the stable
// GetActiveList order, so two callers cannot deadlock.
func (r *Ranker) Update(ctx context.Context, userID string) (func(), error) {
	boards, err := r.leaderboardRepo.GetActiveList(ctx)
	if err != nil {
		return nil, err
	}

	var held []*sync.Mutex
	var once sync.Once
	release := func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].Unlock()
			}
		})
	}

	for _, board := range boards {
		score, ok, err := r.metricValue(ctx, userID, board.Metric)
		if err != nil {
			release()
			return nil, err
		}

		// Users without any standing on the metric get no entry.
		if !ok {
			continue
		}

		lock, _ := r.boardLocks.LoadOrStore(board.ID, &sync.Mutex{})
		lock.Lock()
		held = append(held, lock)

		if err := r.updateBoard(ctx, board.ID, userID, score); err != nil {
			release()
			return nil, err
		}
	}

	return release, nil
}

func (r *Ranker) updateBoard(ctx context.Context, leaderboardID, userID string, score int64) error {
	err := r.entryRepo.UpsertScore(ctx, &entity.LeaderboardEntry{
		LeaderboardID: leaderboardID,
		UserID:        userID,
		Score:         score,
	})
	if err != nil {
		return err
	}

	return r.recomputeRanks(ctx, leaderboardID)
}

// recomputeRanks rewrites ranks as a dense permutation: entries sorted by
// descending score, ties keeping their creation order thanks to the stable
// sort over the creation-ordered fetch.
func (r *Ranker) recomputeRanks(ctx context.Context, leaderboardID string) error {
	entries, err := r.entryRepo.GetAllOrdered(ctx, leaderboardID)
	if err != nil {
		return err
	}

	slices.SortStableFunc(entries, func(a, b entity.LeaderboardEntry) bool {
		return a.Score > b.Score
	})

	for i, entry := range entries {
		rank := i + 1
		if entry.Rank == rank {
			continue
		}

		if err := r.entryRepo.UpdateRank(ctx, leaderboardID, entry.UserID, rank); err != nil {
			// The entry was there a moment ago, so another writer raced us.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.ConflictRetry,
					"Concurrent update on leaderboard %s", leaderboardID)
			}

			return err
		}
	}

	return nil
}

// Rank returns the user's dense rank on the given board, or zero when the
// user has no entry there.
func (r *Ranker) Rank(
	ctx context.Context,
	userID string,
	metric entity.LeaderboardMetric,
	period entity.LeaderboardPeriod,
) (int, error) {
	board, err := r.leaderboardRepo.GetByMetricPeriod(ctx, metric, period)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	entry, err := r.entryRepo.Get(ctx, board.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return entry.Rank, nil
}

// metricValue reads the user's current value for a board metric. The second
// return value reports whether the user has any standing on the metric.
func (r *Ranker) metricValue(
	ctx context.Context, userID string, metric entity.LeaderboardMetric,
) (int64, bool, error) {
	switch metric {
	case entity.LeaderboardMetricPoints:
		balance, err := r.balanceRepo.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, false, nil
			}

			return 0, false, err
		}

		return balance.TotalPoints, true, nil

	case entity.LeaderboardMetricBadges:
		count, err := r.userBadgeRepo.Count(ctx, userID)
		if err != nil {
			return 0, false, err
		}

		return count, count > 0, nil

	case entity.LeaderboardMetricApplications:
		value, err := r.counterRepo.Get(ctx, userID, "job_applications")
		if err != nil {
			return 0, false, err
		}

		return value, value > 0, nil

	case entity.LeaderboardMetricStreak:
		streaks, err := r.streakRepo.GetListByUserID(ctx, userID)
		if err != nil {
			return 0, false, err
		}

		best := 0
		for _, s := range streaks {
			if s.CurrentLength > best {
				best = s.CurrentLength
			}
		}

		return int64(best), best > 0, nil

	default:
		xcontext.Logger(ctx).Warnf("Unknown leaderboard metric %s", metric)
		return 0, false, nil
	}
}
