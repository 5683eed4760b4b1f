package main

import (
	"context"
	"net/http"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/internal/domain"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/kafka"
	"github.com/jobquest-lab/backend/pkg/logger"
	"github.com/jobquest-lab/backend/pkg/pubsub"
	"github.com/jobquest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	userRepo            repository.UserRepository
	tierRepo            repository.LevelTierRepository
	balanceRepo         repository.PointBalanceRepository
	badgeRepo           repository.BadgeRepository
	userBadgeRepo       repository.UserBadgeRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	streakRepo          repository.StreakRepository
	leaderboardRepo     repository.LeaderboardRepository
	entryRepo           repository.LeaderboardEntryRepository
	rewardRepo          repository.RewardRepository
	userRewardRepo      repository.UserRewardRepository
	eventRepo           repository.GamificationEventRepository
	counterRepo         repository.UserCounterRepository

	publisher pubsub.Publisher

	gamificationDomain domain.GamificationDomain

	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	var err error
	s.configs, err = config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.LogLevel == "debug" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadPublisher() {
	if !s.configs.Kafka.Enabled {
		return
	}

	var err error
	s.publisher, err = kafka.NewPublisher(
		"gamification", []string{s.configs.Kafka.Addr})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.tierRepo = repository.NewLevelTierRepository()
	s.balanceRepo = repository.NewPointBalanceRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.userBadgeRepo = repository.NewUserBadgeRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.userAchievementRepo = repository.NewUserAchievementRepository()
	s.streakRepo = repository.NewStreakRepository()
	s.leaderboardRepo = repository.NewLeaderboardRepository()
	s.entryRepo = repository.NewLeaderboardEntryRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.userRewardRepo = repository.NewUserRewardRepository()
	s.eventRepo = repository.NewGamificationEventRepository()
	s.counterRepo = repository.NewUserCounterRepository()
}

func (s *srv) loadDomains() {
	s.gamificationDomain = domain.NewGamificationDomain(
		s.configs.Gamification,
		s.userRepo,
		s.balanceRepo,
		s.tierRepo,
		s.badgeRepo,
		s.userBadgeRepo,
		s.achievementRepo,
		s.userAchievementRepo,
		s.streakRepo,
		s.leaderboardRepo,
		s.entryRepo,
		s.rewardRepo,
		s.userRewardRepo,
		s.eventRepo,
		s.counterRepo,
		s.publisher,
	)
}
