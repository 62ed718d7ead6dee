package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	collectionSuppliers      = "suppliers"
	collectionInventory      = "inventory_items"
	collectionStockMovements = "stock_movements"
)

type SupplierRepository struct {
	col *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{col: db.Collection(collectionSuppliers)}
}

func (r *SupplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	s.ID = newID()
	return insert(ctx, r.col, s, domain.ErrDuplicate)
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return findOne[domain.Supplier](ctx, r.col, bson.M{"_id": id}, domain.ErrSupplierNotFound)
}

func (r *SupplierRepository) List(ctx context.Context, p ports.Page) ([]*domain.Supplier, int64, error) {
	return findPage[domain.Supplier](ctx, r.col, bson.M{}, p, bson.D{{Key: "name", Value: 1}})
}

func (r *SupplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	return replaceByID(ctx, r.col, s.ID, s, domain.ErrSupplierNotFound)
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrSupplierNotFound)
}

type InventoryRepository struct {
	items     *mongo.Collection
	movements *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		items:     db.Collection(collectionInventory),
		movements: db.Collection(collectionStockMovements),
	}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	item.ID = newID()
	return insert(ctx, r.items, item, domain.ErrDuplicate)
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return findOne[domain.InventoryItem](ctx, r.items, bson.M{"_id": id}, domain.ErrInventoryItemNotFound)
}

func (r *InventoryRepository) List(ctx context.Context, f ports.InventoryFilter) ([]*domain.InventoryItem, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.SupplierID != "" {
		filter["supplier_id"] = f.SupplierID
	}
	if f.LowStock {
		filter["$expr"] = lowStockExpr
	}
	return findPage[domain.InventoryItem](ctx, r.items, filter, f.Page, bson.D{{Key: "name", Value: 1}})
}

var lowStockExpr = bson.M{"$lte": bson.A{"$quantity", "$reorder_level"}}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	return replaceByID(ctx, r.items, item.ID, item, domain.ErrInventoryItemNotFound)
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.items, id, domain.ErrInventoryItemNotFound)
}

func (r *InventoryRepository) Adjust(ctx context.Context, id string, delta int) (*domain.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item domain.InventoryItem
	err := r.items.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("adjust inventory: %w", err)
	}
	return nil, missReason(ctx, r.items, id, domain.ErrInventoryItemNotFound, domain.ErrInsufficientStock)
}

func (r *InventoryRepository) InsertMovement(ctx context.Context, m *domain.StockMovement) error {
	return insert(ctx, r.movements, m, domain.ErrDuplicate)
}
