package pubsub

import (
	"context"
	"time"
)

type SubscribeHandler func(ctx context.Context, pack *Pack, t time.Time)

type Subscriber interface {
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
