package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// Payables maps each payment purpose to the store holding its documents.
type Payables map[domain.PaymentPurpose]ports.PayableStore

type PaymentService struct {
	payments ports.PaymentRepository
	payables Payables
	gateway  ports.PaymentGateway
	events   ports.PaymentEventService
	currency string
	log      zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	payables Payables,
	gateway ports.PaymentGateway,
	events ports.PaymentEventService,
	currency string,
	log zerolog.Logger,
) *PaymentService {
	if currency == "" {
		currency = "NGN"
	}
	return &PaymentService{
		payments: payments,
		payables: payables,
		gateway:  gateway,
		events:   events,
		currency: currency,
		log:      log,
	}
}

// Initialize opens a gateway checkout for a document owned by guest. The
// amount always comes from the stored document.
func (s *PaymentService) Initialize(ctx context.Context, guest domain.Principal, in ports.InitializePaymentInput) (*domain.Payment, error) {
	store, ok := s.payables[in.Purpose]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedPurpose, in.Purpose)
	}

	target, err := store.FindPayable(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}
	switch {
	case target.GuestID != guest.ID:
		return nil, fmt.Errorf("%w: document belongs to another guest", domain.ErrForbidden)
	case target.Closed:
		return nil, domain.ErrNotPayable
	case target.PaymentStatus == domain.Paid:
		return nil, domain.ErrAlreadyPaid
	case target.Amount <= 0:
		return nil, domain.ErrNothingToPay
	}

	reference := "PAY-" + uuid.NewString()
	resp, err := s.gateway.Initialize(ctx, ports.InitializeRequest{
		Reference:   reference,
		Email:       guest.Email,
		AmountMinor: toMinor(target.Amount),
		Currency:    s.currency,
		Metadata: map[string]string{
			"purpose":   string(in.Purpose),
			"target_id": target.ID,
			"guest_id":  guest.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	now := time.Now().UTC()
	p := &domain.Payment{
		Reference:        reference,
		GuestID:          guest.ID,
		GuestEmail:       guest.Email,
		Purpose:          in.Purpose,
		TargetID:         target.ID,
		Amount:           target.Amount,
		Currency:         s.currency,
		State:            domain.PaymentPending,
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().Str("reference", reference).Str("purpose", string(in.Purpose)).Float64("amount", p.Amount).Msg("payment initialized")
	return p, nil
}

// Verify asks the gateway for the current state of a payment and settles it.
// Staff may verify any payment; guests only their own.
func (s *PaymentService) Verify(ctx context.Context, caller domain.Principal, reference string) (*domain.Payment, error) {
	p, err := s.payments.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if caller.Category == domain.CategoryGuest && p.GuestID != caller.ID {
		return nil, domain.ErrPaymentNotFound
	}
	if p.State == domain.PaymentSuccess || p.State == domain.PaymentFailed {
		return p, nil
	}

	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	return s.events.Process(ctx, ports.GatewayNotice{Source: "verify", Transaction: *tx})
}

// HandleWebhook authenticates and applies a gateway webhook. Notices for
// references this service never issued are acknowledged and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gateway.VerifySignature(body, signature) {
		return domain.ErrInvalidSignature
	}
	tx, err := s.gateway.ParseWebhook(body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if tx == nil {
		return nil
	}

	_, err = s.events.Process(ctx, ports.GatewayNotice{Source: "webhook", Transaction: *tx})
	switch {
	case errors.Is(err, domain.ErrPaymentNotFound):
		s.log.Warn().Str("reference", tx.Reference).Msg("webhook for unknown payment ignored")
		return nil
	case errors.Is(err, domain.ErrInvalidTransition):
		s.log.Debug().Str("reference", tx.Reference).Str("status", tx.Status).Msg("stale webhook ignored")
		return nil
	}
	return err
}

func (s *PaymentService) List(ctx context.Context, f ports.PaymentFilter) (*ports.ListResult[*domain.Payment], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.payments.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

// toMinor converts a major-unit amount to kobo.
func toMinor(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}
