package ports

import (
	"context"
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// Payable is the settlement view of a bookable document. Closed is true once
// the document was cancelled and can no longer be paid.
type Payable struct {
	ID            string
	GuestID       string
	Amount        float64
	PaymentStatus domain.PaymentStatus
	Closed        bool
}

// PayableStore is implemented by every repository whose documents can be
// settled through the payment gateway.
type PayableStore interface {
	FindPayable(ctx context.Context, id string) (*Payable, error)
	MarkPaid(ctx context.Context, id string) error
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	GuestID string
	State   string
	Purpose string
	Page    Page
}

// PaymentRepository persists gateway transactions and their audit trail.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByReference(ctx context.Context, reference string) (*domain.Payment, error)
	List(ctx context.Context, f PaymentFilter) ([]*domain.Payment, int64, error)
	// UpdateState moves a payment from one state to another and fails with
	// domain.ErrInvalidTransition when the stored state is no longer from.
	UpdateState(ctx context.Context, reference string, from, to domain.PaymentState, channel string, paidAt *time.Time) error
	InsertEvent(ctx context.Context, e *domain.PaymentEvent) error
}

// InitializeRequest is sent to the gateway to open a checkout.
type InitializeRequest struct {
	Reference   string
	Email       string
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// InitializeResponse is the gateway's checkout handle.
type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// GatewayTransaction is the gateway's view of a transaction.
type GatewayTransaction struct {
	Reference   string
	Status      string // success, failed, abandoned, ongoing, pending, ...
	AmountMinor int64
	Currency    string
	Channel     string
	PaidAt      *time.Time
}

// PaymentGateway is the third-party payment provider.
type PaymentGateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*GatewayTransaction, error)
	// VerifySignature checks a webhook body against its signature header.
	VerifySignature(body []byte, signature string) bool
	// ParseWebhook decodes a webhook body. It returns nil, nil for events
	// that do not concern a charge.
	ParseWebhook(body []byte) (*GatewayTransaction, error)
}

// InitializePaymentInput names the document a guest wants to pay for.
type InitializePaymentInput struct {
	Purpose  domain.PaymentPurpose
	TargetID string
}

// PaymentService opens and lists payments.
type PaymentService interface {
	Initialize(ctx context.Context, guest domain.Principal, in InitializePaymentInput) (*domain.Payment, error)
	Verify(ctx context.Context, guest domain.Principal, reference string) (*domain.Payment, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	List(ctx context.Context, f PaymentFilter) (*ListResult[*domain.Payment], error)
}

// GatewayNotice is a gateway report about one transaction, from a webhook
// or a verify call.
type GatewayNotice struct {
	Source      string
	Transaction GatewayTransaction
}

// PaymentEventService settles payments from gateway notices.
type PaymentEventService interface {
	Process(ctx context.Context, notice GatewayNotice) (*domain.Payment, error)
}
