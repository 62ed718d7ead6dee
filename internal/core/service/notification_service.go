package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// NotificationService delivers queued notifications. Email goes through the
// mailer and events through the broker; either collaborator may be nil, in
// which case that half of the notification is skipped.
type NotificationService struct {
	mailer    ports.Mailer
	publisher ports.EventPublisher
	timeout   time.Duration
	log       zerolog.Logger
}

func NewNotificationService(mailer ports.Mailer, publisher ports.EventPublisher, timeout time.Duration, log zerolog.Logger) *NotificationService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NotificationService{mailer: mailer, publisher: publisher, timeout: timeout, log: log}
}

// Deliver sends the email and the event of n, each bounded by the timeout.
// Both are attempted even when the first fails.
func (s *NotificationService) Deliver(ctx context.Context, n ports.Notification) error {
	var errs []error

	if n.Email != nil && s.mailer != nil {
		if err := s.withTimeout(ctx, func(ctx context.Context) error { return s.mailer.Send(ctx, *n.Email) }); err != nil {
			errs = append(errs, fmt.Errorf("send %s: %w", n.Email.Template, err))
		}
	}

	if n.Event != nil && s.publisher != nil {
		if err := s.withTimeout(ctx, func(ctx context.Context) error { return s.publisher.Publish(ctx, *n.Event) }); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", n.Event.Type, err))
		}
	}

	return errors.Join(errs...)
}

func (s *NotificationService) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}

func statusEmail(to, name, subject, template string, data map[string]any) *ports.Email {
	if to == "" {
		return nil
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Name"] = name
	return &ports.Email{To: to, Name: name, Subject: subject, Template: template, Data: data}
}

func domainEvent(typ, aggregateID string, data any) *ports.DomainEvent {
	return &ports.DomainEvent{
		Type:        typ,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}
}
