package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	collectionHalls        = "halls"
	collectionReservations = "hall_reservations"
)

type HallRepository struct {
	col *mongo.Collection
}

func NewHallRepository(db *mongo.Database) *HallRepository {
	return &HallRepository{col: db.Collection(collectionHalls)}
}

func (r *HallRepository) Create(ctx context.Context, h *domain.Hall) error {
	h.ID = newID()
	return insert(ctx, r.col, h, domain.ErrDuplicate)
}

func (r *HallRepository) FindByID(ctx context.Context, id string) (*domain.Hall, error) {
	return findOne[domain.Hall](ctx, r.col, bson.M{"_id": id}, domain.ErrHallNotFound)
}

func (r *HallRepository) List(ctx context.Context, p ports.Page) ([]*domain.Hall, int64, error) {
	return findPage[domain.Hall](ctx, r.col, bson.M{}, p, bson.D{{Key: "name", Value: 1}})
}

func (r *HallRepository) Update(ctx context.Context, h *domain.Hall) error {
	return replaceByID(ctx, r.col, h.ID, h, domain.ErrHallNotFound)
}

func (r *HallRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrHallNotFound)
}

func (r *HallRepository) AddImages(ctx context.Context, id string, urls []string) error {
	return guardedUpdate(ctx, r.col, id,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": urls}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		domain.ErrHallNotFound, domain.ErrHallNotFound)
}

// ReservationRepository relies on the unique partial index over
// (hall_id, event_date) where active is true; see EnsureIndexes.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.HallReservation) error {
	res.ID = newID()
	res.Active = res.Status.HoldsDate()
	return insert(ctx, r.col, res, domain.ErrHallUnavailable)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.HallReservation, error) {
	return findOne[domain.HallReservation](ctx, r.col, bson.M{"_id": id}, domain.ErrReservationNotFound)
}

func (r *ReservationRepository) List(ctx context.Context, f ports.ReservationFilter) ([]*domain.HallReservation, int64, error) {
	filter := bson.M{}
	if f.GuestID != "" {
		filter["guest_id"] = f.GuestID
	}
	if f.HallID != "" {
		filter["hall_id"] = f.HallID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	dateRange(filter, "event_date", f.From, f.To)
	return findPage[domain.HallReservation](ctx, r.col, filter, f.Page, bson.D{{Key: "event_date", Value: 1}})
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	return transition(ctx, r.col, id, string(from), string(to), bson.M{"active": to.HoldsDate()}, domain.ErrReservationNotFound)
}

func (r *ReservationRepository) FindPayable(ctx context.Context, id string) (*ports.Payable, error) {
	return findPayable(ctx, r.col, id, string(domain.ReservationCancelled), domain.ErrReservationNotFound)
}

func (r *ReservationRepository) MarkPaid(ctx context.Context, id string) error {
	return markPaid(ctx, r.col, id, domain.ErrReservationNotFound)
}
