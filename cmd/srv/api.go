package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobquest-lab/backend/api"
	"github.com/jobquest-lab/backend/internal/model"
	"github.com/jobquest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.loadMux(),
	}

	s.logger.Infof("Starting server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadMux() *http.ServeMux {
	// Every request gets the process-wide values; request-scoped deadlines
	// and cancellation stay on the incoming context.
	prepare := func(ctx context.Context) context.Context {
		ctx = xcontext.WithConfigs(ctx, s.configs)
		ctx = xcontext.WithLogger(ctx, s.logger)
		return xcontext.WithDB(ctx, s.db)
	}

	mux := http.NewServeMux()
	endpoints := []interface{ Register(mux *http.ServeMux) }{
		&api.Endpoint[model.ProcessActionRequest, model.ProcessActionResponse]{
			Path:    "/processAction",
			Prepare: prepare,
			Handle:  s.gamificationDomain.ProcessAction,
		},
		&api.Endpoint[model.ClaimRewardRequest, model.ClaimRewardResponse]{
			Path:    "/claimReward",
			Prepare: prepare,
			Handle:  s.gamificationDomain.ClaimReward,
		},
		&api.Endpoint[model.GetUserRankRequest, model.GetUserRankResponse]{
			Path:    "/getUserRank",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetUserRank,
		},
		&api.Endpoint[model.GetCurrentStreakRequest, model.GetCurrentStreakResponse]{
			Path:    "/getCurrentStreak",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetCurrentStreak,
		},
		&api.Endpoint[model.GetAvailableRewardsRequest, model.GetAvailableRewardsResponse]{
			Path:    "/getAvailableRewards",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetAvailableRewards,
		},
		&api.Endpoint[model.GetMyBadgesRequest, model.GetMyBadgesResponse]{
			Path:    "/getMyBadges",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetMyBadges,
		},
		&api.Endpoint[model.GetMyLevelRequest, model.GetMyLevelResponse]{
			Path:    "/getMyLevel",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetMyLevel,
		},
		&api.Endpoint[model.GetEventsRequest, model.GetEventsResponse]{
			Path:    "/getEvents",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetEvents,
		},
		&api.Endpoint[model.GetLeaderboardRequest, model.GetLeaderboardResponse]{
			Path:    "/getLeaderboard",
			Prepare: prepare,
			Handle:  s.gamificationDomain.GetLeaderboard,
		},
	}

	for _, e := range endpoints {
		e.Register(mux)
	}

	return mux
}
