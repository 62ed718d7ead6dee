package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type paymentEventService struct {
	tx       ports.TxRunner
	payments ports.PaymentRepository
	payables Payables
	dedup    ports.DedupChecker
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewPaymentEventService returns a PaymentEventService implementation.
func NewPaymentEventService(
	tx ports.TxRunner,
	payments ports.PaymentRepository,
	payables Payables,
	dedup ports.DedupChecker,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.PaymentEventService {
	return &paymentEventService{
		tx:       tx,
		payments: payments,
		payables: payables,
		dedup:    dedup,
		notifier: notifier,
		log:      log,
	}
}

// Process applies a gateway notice to its payment. Replays of the same
// reference and status are skipped once a notice has been committed. A
// successful charge marks the target document paid in the same transaction
// as the state change.
func (s *paymentEventService) Process(ctx context.Context, n ports.GatewayNotice) (*domain.Payment, error) {
	gt := n.Transaction
	key := "payment:" + gt.Reference + ":" + gt.Status

	isDup, err := s.dedup.IsDuplicate(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("reference", gt.Reference).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("reference", gt.Reference).Str("status", gt.Status).Msg("duplicate gateway notice skipped")
		return s.payments.FindByReference(ctx, gt.Reference)
	}

	p, err := s.payments.FindByReference(ctx, gt.Reference)
	if err != nil {
		return nil, fmt.Errorf("process payment notice: %w", err)
	}

	next, final := gatewayState(gt.Status)
	if !final {
		return p, nil
	}
	if next == domain.PaymentSuccess && gt.AmountMinor != toMinor(p.Amount) {
		s.log.Warn().
			Str("reference", p.Reference).
			Int64("expected", toMinor(p.Amount)).
			Int64("received", gt.AmountMinor).
			Msg("gateway amount mismatch, failing payment")
		next = domain.PaymentFailed
	}
	if p.State == next {
		return p, nil
	}
	if !p.State.CanTransitionTo(next) {
		return nil, fmt.Errorf("process payment notice: %w (from %s to %s)", domain.ErrInvalidTransition, p.State, next)
	}

	paidAt := gt.PaidAt
	if next == domain.PaymentSuccess && paidAt == nil {
		now := time.Now().UTC()
		paidAt = &now
	}
	if next != domain.PaymentSuccess {
		paidAt = nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.payments.UpdateState(ctx, p.Reference, p.State, next, gt.Channel, paidAt); err != nil {
			return fmt.Errorf("update payment state: %w", err)
		}
		if next != domain.PaymentSuccess {
			return nil
		}
		store, ok := s.payables[p.Purpose]
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedPurpose, p.Purpose)
		}
		if err := store.MarkPaid(ctx, p.TargetID); err != nil {
			return fmt.Errorf("mark %s %s paid: %w", p.Purpose, p.TargetID, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("process payment notice: %w", err)
	}

	if markErr := s.dedup.Mark(ctx, key); markErr != nil {
		s.log.Warn().Err(markErr).Str("reference", gt.Reference).Msg("failed to set dedup key")
	}

	p.State = next
	p.Channel = gt.Channel
	p.PaidAt = paidAt
	p.UpdatedAt = time.Now().UTC()

	audit := &domain.PaymentEvent{
		Reference:     p.Reference,
		State:         next,
		GatewayStatus: gt.Status,
		AmountMinor:   gt.AmountMinor,
		Source:        n.Source,
		ReceivedAt:    time.Now().UTC(),
	}
	if err := s.payments.InsertEvent(ctx, audit); err != nil {
		s.log.Warn().Err(err).Str("reference", p.Reference).Msg("failed to insert payment event")
	}

	if next == domain.PaymentSuccess {
		s.notifier.Notify(ports.Notification{
			Key: p.GuestID,
			Email: statusEmail(p.GuestEmail, "", "Payment received", TemplatePaymentReceived, map[string]any{
				"Reference": p.Reference,
				"Amount":    p.Amount,
				"Currency":  p.Currency,
				"Purpose":   string(p.Purpose),
			}),
			Event: domainEvent("payment.succeeded", p.ID, p),
		})
	}

	s.log.Info().
		Str("reference", p.Reference).
		Str("state", string(next)).
		Str("source", n.Source).
		Msg("payment notice processed")

	return p, nil
}

// gatewayState maps a gateway status onto a payment state. final is false
// for statuses that mean the charge is still in flight.
func gatewayState(status string) (domain.PaymentState, bool) {
	switch status {
	case "success":
		return domain.PaymentSuccess, true
	case "failed", "reversed":
		return domain.PaymentFailed, true
	case "abandoned":
		return domain.PaymentAbandoned, true
	}
	return "", false
}
