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
	collectionLaundryItems  = "laundry_items"
	collectionLaundryOrders = "laundry_orders"
)

type LaundryItemRepository struct {
	col *mongo.Collection
}

func NewLaundryItemRepository(db *mongo.Database) *LaundryItemRepository {
	return &LaundryItemRepository{col: db.Collection(collectionLaundryItems)}
}

func (r *LaundryItemRepository) Create(ctx context.Context, item *domain.LaundryItem) error {
	item.ID = newID()
	return insert(ctx, r.col, item, domain.ErrDuplicate)
}

func (r *LaundryItemRepository) FindByID(ctx context.Context, id string) (*domain.LaundryItem, error) {
	return findOne[domain.LaundryItem](ctx, r.col, bson.M{"_id": id}, domain.ErrLaundryItemNotFound)
}

func (r *LaundryItemRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.LaundryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find laundry items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.LaundryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode laundry items: %w", err)
	}

	out := make(map[string]domain.LaundryItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *LaundryItemRepository) List(ctx context.Context, category string, p ports.Page) ([]*domain.LaundryItem, int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return findPage[domain.LaundryItem](ctx, r.col, filter, p, bson.D{{Key: "name", Value: 1}})
}

func (r *LaundryItemRepository) Update(ctx context.Context, item *domain.LaundryItem) error {
	return replaceByID(ctx, r.col, item.ID, item, domain.ErrLaundryItemNotFound)
}

func (r *LaundryItemRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrLaundryItemNotFound)
}

type LaundryOrderRepository struct {
	col *mongo.Collection
}

func NewLaundryOrderRepository(db *mongo.Database) *LaundryOrderRepository {
	return &LaundryOrderRepository{col: db.Collection(collectionLaundryOrders)}
}

func (r *LaundryOrderRepository) Create(ctx context.Context, o *domain.LaundryOrder) error {
	o.ID = newID()
	return insert(ctx, r.col, o, domain.ErrDuplicate)
}

func (r *LaundryOrderRepository) FindByID(ctx context.Context, id string) (*domain.LaundryOrder, error) {
	return findOne[domain.LaundryOrder](ctx, r.col, bson.M{"_id": id}, domain.ErrLaundryOrderNotFound)
}

func (r *LaundryOrderRepository) List(ctx context.Context, f ports.LaundryOrderFilter) ([]*domain.LaundryOrder, int64, error) {
	filter := bson.M{}
	if f.GuestID != "" {
		filter["guest_id"] = f.GuestID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return findPage[domain.LaundryOrder](ctx, r.col, filter, f.Page, nil)
}

// Reprice only writes while the stored order is still editable, so a status
// change racing an edit cannot be overwritten.
func (r *LaundryOrderRepository) Reprice(ctx context.Context, o *domain.LaundryOrder) error {
	return guardedUpdate(ctx, r.col, o.ID,
		bson.M{"_id": o.ID, "status": bson.M{"$in": bson.A{domain.LaundryPending, domain.LaundryInProgress}}},
		bson.M{"$set": bson.M{
			"lines":              o.Lines,
			"total_quantity":     o.TotalQuantity,
			"subtotal":           o.Subtotal,
			"discount_requested": o.DiscountRequested,
			"discount":           o.Discount,
			"urgent_fee":         o.UrgentFee,
			"service_charge":     o.ServiceCharge,
			"total":              o.Total,
			"notes":              o.Notes,
			"updated_at":         time.Now().UTC(),
		}},
		domain.ErrLaundryOrderNotFound, domain.ErrOrderLocked)
}

func (r *LaundryOrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.LaundryStatus) error {
	return transition(ctx, r.col, id, string(from), string(to), nil, domain.ErrLaundryOrderNotFound)
}

func (r *LaundryOrderRepository) FindPayable(ctx context.Context, id string) (*ports.Payable, error) {
	return findPayable(ctx, r.col, id, string(domain.LaundryCancelled), domain.ErrLaundryOrderNotFound)
}

func (r *LaundryOrderRepository) MarkPaid(ctx context.Context, id string) error {
	return markPaid(ctx, r.col, id, domain.ErrLaundryOrderNotFound)
}
