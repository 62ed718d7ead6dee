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
	collectionRooms    = "rooms"
	collectionBookings = "room_bookings"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection(collectionRooms)}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	room.ID = newID()
	return insert(ctx, r.col, room, domain.ErrDuplicate)
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	return findOne[domain.Room](ctx, r.col, bson.M{"_id": id}, domain.ErrRoomNotFound)
}

func (r *RoomRepository) List(ctx context.Context, f ports.RoomFilter) ([]*domain.Room, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = containsFold(f.Type)
	}
	return findPage[domain.Room](ctx, r.col, filter, f.Page, bson.D{{Key: "number", Value: 1}})
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return replaceByID(ctx, r.col, room.ID, room, domain.ErrRoomNotFound)
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrRoomNotFound)
}

func (r *RoomRepository) AddImages(ctx context.Context, id string, urls []string) error {
	return guardedUpdate(ctx, r.col, id,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": urls}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		domain.ErrRoomNotFound, domain.ErrRoomNotFound)
}

// Reserve is the single guarded write that prevents double booking: only an
// Available room matches the filter.
func (r *RoomRepository) Reserve(ctx context.Context, id string) error {
	return guardedUpdate(ctx, r.col, id,
		bson.M{"_id": id, "status": domain.RoomAvailable},
		bson.M{"$set": bson.M{"status": domain.RoomBooked, "updated_at": time.Now().UTC()}},
		domain.ErrRoomNotFound, domain.ErrRoomUnavailable)
}

func (r *RoomRepository) Release(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.RoomBooked},
		bson.M{"$set": bson.M{"status": domain.RoomAvailable, "updated_at": time.Now().UTC()}})
	return err
}

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.RoomBooking) error {
	b.ID = newID()
	return insert(ctx, r.col, b, domain.ErrDuplicate)
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.RoomBooking, error) {
	return findOne[domain.RoomBooking](ctx, r.col, bson.M{"_id": id}, domain.ErrBookingNotFound)
}

func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]*domain.RoomBooking, int64, error) {
	filter := bson.M{}
	if f.GuestID != "" {
		filter["guest_id"] = f.GuestID
	}
	if f.RoomID != "" {
		filter["room_id"] = f.RoomID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return findPage[domain.RoomBooking](ctx, r.col, filter, f.Page, nil)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	return transition(ctx, r.col, id, string(from), string(to), nil, domain.ErrBookingNotFound)
}

func (r *BookingRepository) FindPayable(ctx context.Context, id string) (*ports.Payable, error) {
	return findPayable(ctx, r.col, id, string(domain.BookingCancelled), domain.ErrBookingNotFound)
}

func (r *BookingRepository) MarkPaid(ctx context.Context, id string) error {
	return markPaid(ctx, r.col, id, domain.ErrBookingNotFound)
}
