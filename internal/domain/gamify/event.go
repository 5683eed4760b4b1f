package gamify

import (
	"context"
	"encoding/json"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/pubsub"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
)

// EventLog appends write-once gamification events and, after the owning
// transaction committed, hands them to the outbound publisher. Delivery to
// users is somebody else's job.
type EventLog struct {
	eventRepo repository.GamificationEventRepository
	publisher pubsub.Publisher
	topic     string
}

func NewEventLog(
	eventRepo repository.GamificationEventRepository,
	publisher pubsub.Publisher,
	topic string,
) *EventLog {
	return &EventLog{eventRepo: eventRepo, publisher: publisher, topic: topic}
}

// Append persists one event row inside the current transaction.
func (l *EventLog) Append(
	ctx context.Context,
	userID string,
	kind entity.EventKind,
	title, description string,
	pointsDelta int64,
	metadata entity.Map,
) (*entity.GamificationEvent, error) {
	event := &entity.GamificationEvent{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		PointsDelta: pointsDelta,
		Metadata:    metadata,
	}

	if err := l.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Publish sends committed events to the outbound topic. Publish failures are
// logged and swallowed: the rows are the source of truth and a subscriber
// can replay them.
func (l *EventLog) Publish(ctx context.Context, events []entity.GamificationEvent) {
	if l.publisher == nil {
		return
	}

	for i := range events {
		msg, err := json.Marshal(events[i])
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal event %s: %v", events[i].ID, err)
			continue
		}

		pack := &pubsub.Pack{Key: []byte(events[i].UserID), Msg: msg}
		if err := l.publisher.Publish(ctx, l.topic, pack); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish event %s: %v", events[i].ID, err)
		}
	}
}
