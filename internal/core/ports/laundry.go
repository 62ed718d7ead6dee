package ports

import (
	"context"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// LaundryItemRepository persists the laundry catalog.
type LaundryItemRepository interface {
	Create(ctx context.Context, item *domain.LaundryItem) error
	FindByID(ctx context.Context, id string) (*domain.LaundryItem, error)
	// FindByIDs returns the subset of ids that exist, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.LaundryItem, error)
	List(ctx context.Context, category string, p Page) ([]*domain.LaundryItem, int64, error)
	Update(ctx context.Context, item *domain.LaundryItem) error
	Delete(ctx context.Context, id string) error
}

// LaundryOrderFilter narrows laundry order listings.
type LaundryOrderFilter struct {
	GuestID string
	Status  string
	Page    Page
}

// LaundryOrderRepository persists laundry orders.
type LaundryOrderRepository interface {
	PayableStore
	Create(ctx context.Context, o *domain.LaundryOrder) error
	FindByID(ctx context.Context, id string) (*domain.LaundryOrder, error)
	List(ctx context.Context, f LaundryOrderFilter) ([]*domain.LaundryOrder, int64, error)
	// Reprice stores new lines, fees and totals. It fails with
	// domain.ErrOrderLocked when the stored order is no longer editable.
	Reprice(ctx context.Context, o *domain.LaundryOrder) error
	UpdateStatus(ctx context.Context, id string, from, to domain.LaundryStatus) error
}

// LaundryItemInput carries the editable catalog fields.
type LaundryItemInput struct {
	Name             string
	Category         string
	BasePrice        float64
	WashPrice        float64
	IronPrice        float64
	WashAndIronPrice float64
	ImageURL         string
}

// CreateLaundryOrderInput carries a guest's laundry booking.
type CreateLaundryOrderInput struct {
	Lines             []domain.LineRequest
	UrgentFee         float64
	ServiceCharge     float64
	DiscountRequested bool
	RoomNumber        string
	Notes             string
}

// UpdateLaundryOrderInput is a partial edit. Replacing Lines re-resolves
// catalog prices; changing only fees or the discount flag requotes the
// persisted lines.
type UpdateLaundryOrderInput struct {
	Lines             *[]domain.LineRequest
	UrgentFee         *float64
	ServiceCharge     *float64
	DiscountRequested *bool
	Notes             *string
}

// LaundryOrderResult pairs an order with the catalog ids that were dropped
// while pricing it.
type LaundryOrderResult struct {
	Order   *domain.LaundryOrder
	Dropped []string
}

// LaundryService manages the catalog and laundry orders.
type LaundryService interface {
	CreateItem(ctx context.Context, in LaundryItemInput) (*domain.LaundryItem, error)
	GetItem(ctx context.Context, id string) (*domain.LaundryItem, error)
	ListItems(ctx context.Context, category string, p Page) (*ListResult[*domain.LaundryItem], error)
	UpdateItem(ctx context.Context, id string, in LaundryItemInput) (*domain.LaundryItem, error)
	DeleteItem(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, guest domain.Principal, in CreateLaundryOrderInput) (*LaundryOrderResult, error)
	GetOrder(ctx context.Context, id string) (*domain.LaundryOrder, error)
	ListOrders(ctx context.Context, f LaundryOrderFilter) (*ListResult[*domain.LaundryOrder], error)
	UpdateOrder(ctx context.Context, id string, in UpdateLaundryOrderInput) (*LaundryOrderResult, error)
	UpdateOrderStatus(ctx context.Context, id string, to domain.LaundryStatus) (*domain.LaundryOrder, error)
}
