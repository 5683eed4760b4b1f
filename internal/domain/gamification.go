package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/internal/domain/gamify"
	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/model"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/dateutil"
	"github.com/jobquest-lab/backend/pkg/enum"
	"github.com/jobquest-lab/backend/pkg/errorx"
	"github.com/jobquest-lab/backend/pkg/pubsub"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

type GamificationDomain interface {
	ProcessAction(context.Context, *model.ProcessActionRequest) (*model.ProcessActionResponse, error)
	ClaimReward(context.Context, *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	GetUserRank(context.Context, *model.GetUserRankRequest) (*model.GetUserRankResponse, error)
	GetCurrentStreak(context.Context, *model.GetCurrentStreakRequest) (*model.GetCurrentStreakResponse, error)
	GetAvailableRewards(context.Context, *model.GetAvailableRewardsRequest) (*model.GetAvailableRewardsResponse, error)
	GetMyBadges(context.Context, *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error)
	GetMyLevel(context.Context, *model.GetMyLevelRequest) (*model.GetMyLevelResponse, error)
	GetEvents(context.Context, *model.GetEventsRequest) (*model.GetEventsResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type gamificationDomain struct {
	userRepo        repository.UserRepository
	tierRepo        repository.LevelTierRepository
	userBadgeRepo   repository.UserBadgeRepository
	leaderboardRepo repository.LeaderboardRepository
	entryRepo       repository.LeaderboardEntryRepository
	eventRepo       repository.GamificationEventRepository
	counterRepo     repository.UserCounterRepository

	ledger       *gamify.Ledger
	badges       *gamify.BadgeEngine
	levels       *gamify.LevelEngine
	achievements *gamify.AchievementEngine
	streaks      *gamify.StreakTracker
	ranker       *gamify.Ranker
	rewards      *gamify.RewardStore
	events       *gamify.EventLog

	// counters maps action types to the user counter they bump.
	counters   map[string]string
	maxRetries int

	// userLocks serializes actions of the same user so balance updates and
	// streak increments cannot race each other. Different users only contend
	// on the per-leaderboard locks inside the ranker.
	userLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewGamificationDomain(
	cfg config.GamificationConfigs,
	userRepo repository.UserRepository,
	balanceRepo repository.PointBalanceRepository,
	tierRepo repository.LevelTierRepository,
	badgeRepo repository.BadgeRepository,
	userBadgeRepo repository.UserBadgeRepository,
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	streakRepo repository.StreakRepository,
	leaderboardRepo repository.LeaderboardRepository,
	entryRepo repository.LeaderboardEntryRepository,
	rewardRepo repository.RewardRepository,
	userRewardRepo repository.UserRewardRepository,
	eventRepo repository.GamificationEventRepository,
	counterRepo repository.UserCounterRepository,
	publisher pubsub.Publisher,
) *gamificationDomain {
	ledger := gamify.NewLedger(cfg, balanceRepo, tierRepo)
	badges := gamify.NewBadgeEngine(cfg, badgeRepo, userBadgeRepo, counterRepo, ledger)

	return &gamificationDomain{
		userRepo:        userRepo,
		tierRepo:        tierRepo,
		userBadgeRepo:   userBadgeRepo,
		leaderboardRepo: leaderboardRepo,
		entryRepo:       entryRepo,
		eventRepo:       eventRepo,
		counterRepo:     counterRepo,
		ledger:          ledger,
		badges:          badges,
		levels:          gamify.NewLevelEngine(balanceRepo, tierRepo),
		achievements: gamify.NewAchievementEngine(
			achievementRepo, userAchievementRepo, counterRepo, badgeRepo, badges, ledger),
		streaks: gamify.NewStreakTracker(cfg, streakRepo),
		ranker: gamify.NewRanker(
			leaderboardRepo, entryRepo, balanceRepo, userBadgeRepo, counterRepo, streakRepo),
		rewards:    gamify.NewRewardStore(rewardRepo, userRewardRepo, balanceRepo, ledger),
		events:     gamify.NewEventLog(eventRepo, publisher, cfg.EventTopic),
		counters:   cfg.Counters,
		maxRetries: cfg.MaxActionRetries,
		userLocks:  xsync.NewMapOf[*sync.Mutex](),
	}
}

// ProcessAction runs the whole pipeline for one action in one transaction:
// points, badges, level, achievements, streaks, events, then the leaderboard
// refresh which depends on all updated metrics. Everything commits together
// or not at all. Callers must guarantee at-most-once submission per logical
// action: points and streaks are not idempotent on retry.
func (d *gamificationDomain) ProcessAction(
	ctx context.Context, req *model.ProcessActionRequest,
) (*model.ProcessActionResponse, error) {
	if req.UserID == "" || req.ActionType == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id or action type")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	lock, _ := d.userLocks.LoadOrStore(req.UserID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	var result model.ActionResult
	var committed []entity.GamificationEvent
	var err error
	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		result, committed, err = d.processOnce(ctx, req)
		if err == nil {
			break
		}

		// Only concurrency conflicts are worth another attempt. A
		// deterministic failure would fail the same way three times.
		if !isConflict(err) {
			xcontext.Logger(ctx).Errorf("Cannot process action %s: %v", req.ActionType, err)
			return nil, errorx.Unknown
		}

		xcontext.Logger(ctx).Warnf(
			"Action %s attempt %d/%d conflicted: %v", req.ActionType, attempt, d.maxRetries, err)
	}

	if err != nil {
		return nil, errorx.New(errorx.ConflictRetry, "Too much contention, try again")
	}

	d.events.Publish(ctx, committed)
	return &model.ProcessActionResponse{Result: result}, nil
}

// isConflict reports whether a fresh transaction could resolve err.
func isConflict(err error) bool {
	var errx errorx.Error
	return errors.As(err, &errx) && errx.Code == errorx.ConflictRetry
}

func (d *gamificationDomain) processOnce(
	ctx context.Context, req *model.ProcessActionRequest,
) (model.ActionResult, []entity.GamificationEvent, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	payload := entity.Map(req.Payload)
	result := model.ActionResult{}

	// The counter is bumped first so unlock predicates and achievement
	// conditions already see this action included, the same way the original
	// collaborators counted their own rows.
	if counter, ok := d.counters[req.ActionType]; ok {
		if _, err := d.counterRepo.Increase(ctx, req.UserID, counter); err != nil {
			return result, nil, err
		}
	}

	points := d.ledger.Calculate(req.ActionType, payload)
	if points > 0 {
		if err := d.ledger.Award(ctx, req.UserID, points); err != nil {
			return result, nil, err
		}

		result.PointsEarned = points
	}

	unlocked, err := d.badges.Check(ctx, req.UserID, req.ActionType, payload)
	if err != nil {
		return result, nil, err
	}

	var grantedBadges []entity.Badge
	for _, badge := range unlocked {
		granted, err := d.badges.Award(ctx, req.UserID, badge)
		if err != nil {
			return result, nil, err
		}

		if granted {
			grantedBadges = append(grantedBadges, badge)
		}
	}

	newTier, err := d.levels.CheckLevelUp(ctx, req.UserID)
	if err != nil {
		return result, nil, err
	}

	completed, linkedBadges, err := d.achievements.Check(ctx, req.UserID, req.ActionType)
	if err != nil {
		return result, nil, err
	}

	grantedBadges = append(grantedBadges, linkedBadges...)

	streaks, milestones, err := d.streaks.Update(ctx, req.UserID, req.ActionType, time.Now())
	if err != nil {
		return result, nil, err
	}

	events, err := d.appendEvents(
		ctx, req, points, grantedBadges, newTier, completed, streaks, milestones)
	if err != nil {
		return result, nil, err
	}

	// The leaderboard refresh runs last because it reads every metric the
	// previous steps may have changed. The board locks must outlive the
	// commit below, or a concurrent recompute could rank against scores this
	// transaction has not made visible yet.
	release, err := d.ranker.Update(ctx, req.UserID)
	if err != nil {
		return result, nil, err
	}
	defer release()

	for _, badge := range grantedBadges {
		result.BadgesEarned = append(result.BadgesEarned, model.ConvertBadge(badge))
	}

	if newTier != nil {
		result.LevelUp = true
		result.NewLevelNumber = newTier.LevelNumber
	}

	for _, achievement := range completed {
		result.AchievementsCompleted = append(
			result.AchievementsCompleted, model.ConvertAchievement(achievement))
	}

	for _, streak := range streaks {
		result.StreaksUpdated = append(result.StreaksUpdated, model.ConvertStreak(streak))
	}

	for _, event := range events {
		result.EventsCreated = append(result.EventsCreated, model.ConvertGamificationEvent(event))
	}

	xcontext.WithCommitDBTransaction(ctx)
	return result, events, nil
}

func (d *gamificationDomain) appendEvents(
	ctx context.Context,
	req *model.ProcessActionRequest,
	points int64,
	badges []entity.Badge,
	newTier *entity.LevelTier,
	achievements []entity.Achievement,
	streaks []entity.Streak,
	milestones []int,
) ([]entity.GamificationEvent, error) {
	var events []entity.GamificationEvent

	appendOne := func(e *entity.GamificationEvent, err error) error {
		if err != nil {
			return err
		}

		events = append(events, *e)
		return nil
	}

	if points > 0 {
		err := appendOne(d.events.Append(ctx, req.UserID, entity.EventKindPointsEarned,
			fmt.Sprintf("+%d points", points),
			fmt.Sprintf("You earned %d points for %s", points, req.ActionType),
			points,
			entity.Map{"action_type": req.ActionType, "payload": req.Payload},
		))
		if err != nil {
			return nil, err
		}
	}

	for _, badge := range badges {
		err := appendOne(d.events.Append(ctx, req.UserID, entity.EventKindBadgeEarned,
			fmt.Sprintf("Badge earned: %s", badge.Name),
			badge.Description,
			badge.Points,
			entity.Map{"badge_id": badge.ID, "badge_type": badge.Type},
		))
		if err != nil {
			return nil, err
		}
	}

	if newTier != nil {
		err := appendOne(d.events.Append(ctx, req.UserID, entity.EventKindLevelUp,
			fmt.Sprintf("Level %d reached!", newTier.LevelNumber),
			fmt.Sprintf("Congratulations! You reached level %d", newTier.LevelNumber),
			0,
			entity.Map{"new_level": newTier.LevelNumber},
		))
		if err != nil {
			return nil, err
		}
	}

	for _, achievement := range achievements {
		err := appendOne(d.events.Append(ctx, req.UserID, entity.EventKindAchievementCompleted,
			fmt.Sprintf("Achievement completed: %s", achievement.Name),
			achievement.Description,
			achievement.Points,
			entity.Map{"achievement_id": achievement.ID},
		))
		if err != nil {
			return nil, err
		}
	}

	for _, milestone := range milestones {
		category := ""
		if len(streaks) > 0 {
			category = streaks[0].Category
		}

		err := appendOne(d.events.Append(ctx, req.UserID, entity.EventKindStreakMilestone,
			fmt.Sprintf("%d-day streak!", milestone),
			fmt.Sprintf("You kept your %s streak for %d days", category, milestone),
			0,
			entity.Map{"category": category, "length": milestone},
		))
		if err != nil {
			return nil, err
		}
	}

	return events, nil
}

// ClaimReward atomically grants the reward and deducts its cost. A claim
// that cannot afford the reward, or repeats a previous claim, reports
// Claimed=false and changes nothing.
func (d *gamificationDomain) ClaimReward(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	if req.UserID == "" || req.RewardID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id or reward id")
	}

	lock, _ := d.userLocks.LoadOrStore(req.UserID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	claimed, err := d.rewards.Claim(ctx, req.UserID, req.RewardID)
	if err != nil {
		// A repeated or unaffordable claim is a business outcome, not a
		// failure. The deferred rollback discards the provisional grant.
		var errx errorx.Error
		if errors.As(err, &errx) &&
			(errx.Code == errorx.InsufficientPoints || errx.Code == errorx.AlreadyClaimed) {
			return &model.ClaimRewardResponse{Claimed: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot claim reward: %v", err)
		return nil, errorx.Unknown
	}

	if !claimed {
		return &model.ClaimRewardResponse{Claimed: false}, nil
	}

	event, err := d.events.Append(ctx, req.UserID, entity.EventKindRewardClaimed,
		"Reward claimed",
		fmt.Sprintf("You claimed reward %s", req.RewardID),
		0,
		entity.Map{"reward_id": req.RewardID},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append reward event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	d.events.Publish(ctx, []entity.GamificationEvent{*event})
	return &model.ClaimRewardResponse{Claimed: true}, nil
}

func (d *gamificationDomain) GetUserRank(
	ctx context.Context, req *model.GetUserRankRequest,
) (*model.GetUserRankResponse, error) {
	metric, err := enum.ToEnum[entity.LeaderboardMetric](req.Metric)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid leaderboard metric %s", req.Metric)
	}

	period := entity.LeaderboardPeriodAllTime
	if req.Period != "" {
		period, err = enum.ToEnum[entity.LeaderboardPeriod](req.Period)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid leaderboard period %s", req.Period)
		}
	}

	rank, err := d.ranker.Rank(ctx, req.UserID, metric, period)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank: %v", err)
		return nil, errorx.Unknown
	}

	if rank == 0 {
		return &model.GetUserRankResponse{Rank: nil}, nil
	}

	return &model.GetUserRankResponse{Rank: &rank}, nil
}

func (d *gamificationDomain) GetCurrentStreak(
	ctx context.Context, req *model.GetCurrentStreakRequest,
) (*model.GetCurrentStreakResponse, error) {
	current, err := d.streaks.Current(ctx, req.UserID, req.Category)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCurrentStreakResponse{CurrentLength: current}, nil
}

func (d *gamificationDomain) GetAvailableRewards(
	ctx context.Context, req *model.GetAvailableRewardsRequest,
) (*model.GetAvailableRewardsResponse, error) {
	rewards, err := d.rewards.Available(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get available rewards: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetAvailableRewardsResponse{Rewards: []model.Reward{}}
	for _, reward := range rewards {
		resp.Rewards = append(resp.Rewards, model.ConvertReward(reward))
	}

	return resp, nil
}

func (d *gamificationDomain) GetMyBadges(
	ctx context.Context, req *model.GetMyBadgesRequest,
) (*model.GetMyBadgesResponse, error) {
	userBadges, err := d.userBadgeRepo.GetListByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyBadgesResponse{Badges: []model.Badge{}}
	for _, ub := range userBadges {
		resp.Badges = append(resp.Badges, model.ConvertBadge(ub.Badge))
	}

	return resp, nil
}

func (d *gamificationDomain) GetMyLevel(
	ctx context.Context, req *model.GetMyLevelRequest,
) (*model.GetMyLevelResponse, error) {
	balance, err := d.ledger.Balance(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	if balance == nil {
		return &model.GetMyLevelResponse{}, nil
	}

	level := model.LevelProgress{
		TotalPoints:  balance.TotalPoints,
		PointsToNext: balance.PointsToNext,
		ProgressPct:  balance.ProgressPct,
	}

	if balance.CurrentTierID != "" {
		tier, err := d.tierRepo.GetByID(ctx, balance.CurrentTierID)
		if err == nil {
			level.LevelNumber = tier.LevelNumber
			level.TierName = tier.Name
		}
	}

	return &model.GetMyLevelResponse{Level: level}, nil
}

func (d *gamificationDomain) GetEvents(
	ctx context.Context, req *model.GetEventsRequest,
) (*model.GetEventsResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	events, err := d.eventRepo.GetListByUserID(ctx, req.UserID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetEventsResponse{Events: []model.GamificationEvent{}}
	for _, event := range events {
		resp.Events = append(resp.Events, model.ConvertGamificationEvent(event))
	}

	return resp, nil
}

func (d *gamificationDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	metric, err := enum.ToEnum[entity.LeaderboardMetric](req.Metric)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid leaderboard metric %s", req.Metric)
	}

	period := entity.LeaderboardPeriodAllTime
	if req.Period != "" {
		period, err = enum.ToEnum[entity.LeaderboardPeriod](req.Period)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid leaderboard period %s", req.Period)
		}
	}

	board, err := d.leaderboardRepo.GetByMetricPeriod(ctx, metric, period)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetLeaderboardResponse{Entries: []model.LeaderboardEntry{}}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, err := d.entryRepo.GetPage(ctx, board.ID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard page: %v", err)
		return nil, errorx.Unknown
	}

	periodValue, err := dateutil.PeriodValue(string(board.Period), time.Now())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Invalid period of board %s: %v", board.ID, err)
	}

	resp := &model.GetLeaderboardResponse{
		PeriodValue: periodValue,
		Entries:     []model.LeaderboardEntry{},
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, model.ConvertLeaderboardEntry(entry))
	}

	return resp, nil
}
