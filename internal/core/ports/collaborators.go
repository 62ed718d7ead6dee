package ports

import (
	"context"
	"io"
	"time"
)

// Email is a templated message for one recipient.
type Email struct {
	To       string
	Name     string
	Subject  string
	Template string
	Data     any
}

// DomainEvent is published to the message broker.
type DomainEvent struct {
	Type        string    `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Data        any       `json:"data"`
}

// Notification is one fire-and-forget delivery. Key selects the worker so
// notifications sharing a key are delivered in order.
type Notification struct {
	Key   string
	Email *Email
	Event *DomainEvent
}

// Notifier enqueues notifications without blocking the caller.
type Notifier interface {
	Notify(n Notification)
}

// NotificationService delivers a single notification synchronously.
type NotificationService interface {
	Deliver(ctx context.Context, n Notification) error
}

// Mailer sends an email synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evt DomainEvent) error
}

// ImageStore uploads and removes hosted images.
type ImageStore interface {
	Upload(ctx context.Context, folder, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// Upload is one file received from a client.
type Upload struct {
	Name   string
	Reader io.Reader
}

// DedupChecker is an idempotency store keyed by an opaque string.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// ReferenceGenerator yields short human-readable references such as
// "BK-3KD9QZ".
type ReferenceGenerator interface {
	Generate(prefix string) string
}
