package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/kafka"
	"github.com/jobquest-lab/backend/pkg/pubsub"
	"github.com/jobquest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

// startSubscriber tails the gamification event topic. It is the natural hook
// for a notification sender; for now it only logs what happened.
func (s *srv) startSubscriber(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()

	subscriber, err := kafka.NewSubscriber(
		"gamification-subscriber",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Gamification.EventTopic},
		s.handleEventPack,
	)
	if err != nil {
		return err
	}
	defer subscriber.Stop(s.ctx)

	s.logger.Infof("Subscribing to %s", s.configs.Gamification.EventTopic)
	subscriber.Subscribe(s.ctx)
	return nil
}

func (s *srv) handleEventPack(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event entity.GamificationEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal event pack: %v", err)
		return
	}

	s.logger.Infof("User %s: %s (%s)", event.UserID, event.Title, event.Kind)
}
