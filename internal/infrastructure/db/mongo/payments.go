package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	collectionPayments      = "payments"
	collectionPaymentEvents = "payment_events"
)

type PaymentRepository struct {
	payments *mongo.Collection
	events   *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		payments: db.Collection(collectionPayments),
		events:   db.Collection(collectionPaymentEvents),
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	p.ID = newID()
	return insert(ctx, r.payments, p, domain.ErrDuplicate)
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return findOne[domain.Payment](ctx, r.payments, bson.M{"reference": reference}, domain.ErrPaymentNotFound)
}

func (r *PaymentRepository) List(ctx context.Context, f ports.PaymentFilter) ([]*domain.Payment, int64, error) {
	filter := bson.M{}
	if f.GuestID != "" {
		filter["guest_id"] = f.GuestID
	}
	if f.State != "" {
		filter["state"] = f.State
	}
	if f.Purpose != "" {
		filter["purpose"] = f.Purpose
	}
	return findPage[domain.Payment](ctx, r.payments, filter, f.Page, nil)
}

func (r *PaymentRepository) UpdateState(ctx context.Context, reference string, from, to domain.PaymentState, channel string, paidAt *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{"state": to, "updated_at": time.Now().UTC()}
	if channel != "" {
		set["channel"] = channel
	}
	if paidAt != nil {
		set["paid_at"] = paidAt.UTC()
	}

	res, err := r.payments.UpdateOne(ctx, bson.M{"reference": reference, "state": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update payment state: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.payments.CountDocuments(ctx, bson.M{"reference": reference})
	if err != nil {
		return fmt.Errorf("count payments: %w", err)
	}
	if n == 0 {
		return domain.ErrPaymentNotFound
	}
	return domain.ErrInvalidTransition
}

func (r *PaymentRepository) InsertEvent(ctx context.Context, e *domain.PaymentEvent) error {
	return insert(ctx, r.events, e, domain.ErrDuplicate)
}
