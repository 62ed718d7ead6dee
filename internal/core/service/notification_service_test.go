package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubMailer struct {
	sent []ports.Email
	err  error
}

func (m *stubMailer) Send(ctx context.Context, msg ports.Email) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("send called without deadline")
	}
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type stubPublisher struct {
	published []ports.DomainEvent
	err       error
}

func (p *stubPublisher) Publish(_ context.Context, evt ports.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, evt)
	return nil
}

func TestNotificationService_DeliversBoth(t *testing.T) {
	m, p := &stubMailer{}, &stubPublisher{}
	svc := NewNotificationService(m, p, time.Second, zerolog.Nop())

	err := svc.Deliver(context.Background(), ports.Notification{
		Key:   "g1",
		Email: statusEmail("ada@example.com", "Ada", "Hi", TemplateWelcome, nil),
		Event: domainEvent("booking.created", "b1", nil),
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if len(m.sent) != 1 || len(p.published) != 1 {
		t.Fatalf("sent=%d published=%d", len(m.sent), len(p.published))
	}
	if m.sent[0].Data.(map[string]any)["Name"] != "Ada" {
		t.Errorf("template data missing name: %+v", m.sent[0].Data)
	}
}

func TestNotificationService_MailFailureStillPublishes(t *testing.T) {
	m, p := &stubMailer{err: errors.New("smtp down")}, &stubPublisher{}
	svc := NewNotificationService(m, p, time.Second, zerolog.Nop())

	err := svc.Deliver(context.Background(), ports.Notification{
		Email: statusEmail("ada@example.com", "Ada", "Hi", TemplateWelcome, nil),
		Event: domainEvent("booking.created", "b1", nil),
	})
	if err == nil {
		t.Fatal("expected mail error")
	}
	if len(p.published) != 1 {
		t.Error("event should be published despite mail failure")
	}
}

func TestNotificationService_NilCollaboratorsAreSkipped(t *testing.T) {
	svc := NewNotificationService(nil, nil, 0, zerolog.Nop())
	err := svc.Deliver(context.Background(), ports.Notification{
		Email: statusEmail("ada@example.com", "Ada", "Hi", TemplateWelcome, nil),
		Event: domainEvent("x", "1", nil),
	})
	if err != nil {
		t.Errorf("Deliver: %v", err)
	}
}

func TestStatusEmail_NoRecipient(t *testing.T) {
	if e := statusEmail("", "Ada", "Hi", TemplateWelcome, nil); e != nil {
		t.Errorf("expected nil email, got %+v", e)
	}
}
