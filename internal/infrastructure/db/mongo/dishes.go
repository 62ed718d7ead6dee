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
	collectionDishes     = "dishes"
	collectionDishOrders = "dish_orders"
)

type DishRepository struct {
	col *mongo.Collection
}

func NewDishRepository(db *mongo.Database) *DishRepository {
	return &DishRepository{col: db.Collection(collectionDishes)}
}

func (r *DishRepository) Create(ctx context.Context, d *domain.Dish) error {
	d.ID = newID()
	return insert(ctx, r.col, d, domain.ErrDuplicate)
}

func (r *DishRepository) FindByID(ctx context.Context, id string) (*domain.Dish, error) {
	return findOne[domain.Dish](ctx, r.col, bson.M{"_id": id}, domain.ErrDishNotFound)
}

func (r *DishRepository) List(ctx context.Context, category string, p ports.Page) ([]*domain.Dish, int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return findPage[domain.Dish](ctx, r.col, filter, p, bson.D{{Key: "name", Value: 1}})
}

func (r *DishRepository) Update(ctx context.Context, d *domain.Dish) error {
	return replaceByID(ctx, r.col, d.ID, d, domain.ErrDishNotFound)
}

func (r *DishRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrDishNotFound)
}

func (r *DishRepository) SetImage(ctx context.Context, id, url string) error {
	return guardedUpdate(ctx, r.col, id,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"image_url": url, "updated_at": time.Now().UTC()}},
		domain.ErrDishNotFound, domain.ErrDishNotFound)
}

// TakeStock decrements only when enough portions remain, so concurrent
// orders can never drive stock negative.
func (r *DishRepository) TakeStock(ctx context.Context, id string, qty int) error {
	return guardedUpdate(ctx, r.col, id,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		domain.ErrDishNotFound, domain.ErrInsufficientStock)
}

func (r *DishRepository) ReturnStock(ctx context.Context, id string, qty int) error {
	return guardedUpdate(ctx, r.col, id,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		domain.ErrDishNotFound, domain.ErrDishNotFound)
}

type DishOrderRepository struct {
	col *mongo.Collection
}

func NewDishOrderRepository(db *mongo.Database) *DishOrderRepository {
	return &DishOrderRepository{col: db.Collection(collectionDishOrders)}
}

func (r *DishOrderRepository) Create(ctx context.Context, o *domain.DishOrder) error {
	o.ID = newID()
	return insert(ctx, r.col, o, domain.ErrDuplicate)
}

func (r *DishOrderRepository) FindByID(ctx context.Context, id string) (*domain.DishOrder, error) {
	return findOne[domain.DishOrder](ctx, r.col, bson.M{"_id": id}, domain.ErrDishOrderNotFound)
}

func (r *DishOrderRepository) List(ctx context.Context, f ports.DishOrderFilter) ([]*domain.DishOrder, int64, error) {
	filter := bson.M{}
	if f.GuestID != "" {
		filter["guest_id"] = f.GuestID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return findPage[domain.DishOrder](ctx, r.col, filter, f.Page, nil)
}

func (r *DishOrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.DishOrderStatus) error {
	return transition(ctx, r.col, id, string(from), string(to), nil, domain.ErrDishOrderNotFound)
}

func (r *DishOrderRepository) FindPayable(ctx context.Context, id string) (*ports.Payable, error) {
	return findPayable(ctx, r.col, id, string(domain.DishOrderCancelled), domain.ErrDishOrderNotFound)
}

func (r *DishOrderRepository) MarkPaid(ctx context.Context, id string) error {
	return markPaid(ctx, r.col, id, domain.ErrDishOrderNotFound)
}
