package ports

import (
	"context"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// DishRepository persists the menu.
type DishRepository interface {
	Create(ctx context.Context, d *domain.Dish) error
	FindByID(ctx context.Context, id string) (*domain.Dish, error)
	List(ctx context.Context, category string, p Page) ([]*domain.Dish, int64, error)
	Update(ctx context.Context, d *domain.Dish) error
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, url string) error
	// TakeStock decrements stock by qty only if enough is left, failing with
	// domain.ErrInsufficientStock otherwise.
	TakeStock(ctx context.Context, id string, qty int) error
	ReturnStock(ctx context.Context, id string, qty int) error
}

// DishOrderFilter narrows dish order listings.
type DishOrderFilter struct {
	GuestID string
	Status  string
	Page    Page
}

// DishOrderRepository persists dish orders.
type DishOrderRepository interface {
	PayableStore
	Create(ctx context.Context, o *domain.DishOrder) error
	FindByID(ctx context.Context, id string) (*domain.DishOrder, error)
	List(ctx context.Context, f DishOrderFilter) ([]*domain.DishOrder, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.DishOrderStatus) error
}

// DishInput carries the editable dish fields.
type DishInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Stock       int
}

// DishOrderLineInput is one requested dish.
type DishOrderLineInput struct {
	DishID   string
	Quantity int
}

// CreateDishOrderInput carries a guest's food order.
type CreateDishOrderInput struct {
	Lines      []DishOrderLineInput
	RoomNumber string
	Notes      string
}

// DishService manages the menu and dish orders.
type DishService interface {
	Create(ctx context.Context, in DishInput) (*domain.Dish, error)
	Get(ctx context.Context, id string) (*domain.Dish, error)
	List(ctx context.Context, category string, p Page) (*ListResult[*domain.Dish], error)
	Update(ctx context.Context, id string, in DishInput) (*domain.Dish, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id string, file Upload) (*domain.Dish, error)

	PlaceOrder(ctx context.Context, guest domain.Principal, in CreateDishOrderInput) (*domain.DishOrder, error)
	GetOrder(ctx context.Context, id string) (*domain.DishOrder, error)
	ListOrders(ctx context.Context, f DishOrderFilter) (*ListResult[*domain.DishOrder], error)
	UpdateOrderStatus(ctx context.Context, id string, to domain.DishOrderStatus) (*domain.DishOrder, error)
}
