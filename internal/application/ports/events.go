package ports

import (
	"context"

	"person-registry-api/internal/infrastructure/mq"
)

// EventPublisher queues person lifecycle events; PublisherWorker drains the
// queue into the broker until ctx is done.
type EventPublisher interface {
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	Events() chan<- mq.Event
	Close() error
}

type EventConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
	Close() error
}
