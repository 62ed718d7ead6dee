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
	collectionGuests = "guests"
	collectionStaff  = "staff"
)

type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{col: db.Collection(collectionGuests)}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	g.ID = newID()
	return insert(ctx, r.col, g, domain.ErrUserExists)
}

func (r *GuestRepository) FindByID(ctx context.Context, id string) (*domain.Guest, error) {
	return findOne[domain.Guest](ctx, r.col, bson.M{"_id": id}, domain.ErrGuestNotFound)
}

func (r *GuestRepository) FindByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	return findOne[domain.Guest](ctx, r.col, bson.M{"email": email}, domain.ErrGuestNotFound)
}

func (r *GuestRepository) List(ctx context.Context, f ports.AccountFilter) ([]*domain.Guest, int64, error) {
	filter := accountFilter(f)
	filter["is_deleted"] = bson.M{"$ne": true}
	return findPage[domain.Guest](ctx, r.col, filter, f.Page, nil)
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	return replaceByID(ctx, r.col, g.ID, g, domain.ErrGuestNotFound)
}

func (r *GuestRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return setPassword(ctx, r.col, id, hash, domain.ErrGuestNotFound)
}

// StaffRepository keeps soft-deleted accounts; listings hide them.
type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{col: db.Collection(collectionStaff)}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	s.ID = newID()
	return insert(ctx, r.col, s, domain.ErrUserExists)
}

func (r *StaffRepository) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	return findOne[domain.Staff](ctx, r.col, bson.M{"_id": id}, domain.ErrStaffNotFound)
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return findOne[domain.Staff](ctx, r.col, bson.M{"email": email}, domain.ErrStaffNotFound)
}

func (r *StaffRepository) List(ctx context.Context, f ports.AccountFilter) ([]*domain.Staff, int64, error) {
	filter := accountFilter(f)
	filter["is_deleted"] = bson.M{"$ne": true}
	if f.Role != "" {
		filter["role"] = containsFold(f.Role)
	}
	return findPage[domain.Staff](ctx, r.col, filter, f.Page, nil)
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	return replaceByID(ctx, r.col, s.ID, s, domain.ErrStaffNotFound)
}

func (r *StaffRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return setPassword(ctx, r.col, id, hash, domain.ErrStaffNotFound)
}

func accountFilter(f ports.AccountFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		rx := containsFold(f.Search)
		filter["$or"] = bson.A{
			bson.M{"full_name": rx},
			bson.M{"email": rx},
		}
	}
	if f.Blocked != nil {
		filter["is_blocked"] = *f.Blocked
	}
	return filter
}

func setPassword(ctx context.Context, col *mongo.Collection, id, hash string, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}
