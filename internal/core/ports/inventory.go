package ports

import (
	"context"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, p Page) ([]*domain.Supplier, int64, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Category   string
	SupplierID string
	LowStock   bool
	Page       Page
}

// InventoryRepository persists stocked items.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	FindByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, f InventoryFilter) ([]*domain.InventoryItem, int64, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id string) error
	// Adjust adds delta to the quantity in one guarded update and returns the
	// new state. It fails with domain.ErrInsufficientStock when the result
	// would be negative.
	Adjust(ctx context.Context, id string, delta int) (*domain.InventoryItem, error)
	InsertMovement(ctx context.Context, m *domain.StockMovement) error
}

// SupplierInput carries the editable supplier fields.
type SupplierInput struct {
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Categories  []string
}

// InventoryItemInput carries the editable item fields. Quantity is only
// honoured on create; later changes go through Adjust.
type InventoryItemInput struct {
	Name         string
	Category     string
	Unit         string
	Quantity     int
	ReorderLevel int
	UnitCost     float64
	SupplierID   string
}

// InventoryService manages suppliers and stock.
type InventoryService interface {
	CreateSupplier(ctx context.Context, in SupplierInput) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, p Page) (*ListResult[*domain.Supplier], error)
	UpdateSupplier(ctx context.Context, id string, in SupplierInput) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	CreateItem(ctx context.Context, in InventoryItemInput) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, f InventoryFilter) (*ListResult[*domain.InventoryItem], error)
	UpdateItem(ctx context.Context, id string, in InventoryItemInput) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
	Adjust(ctx context.Context, actor domain.Principal, id string, delta int, note string) (*domain.InventoryItem, error)
}
