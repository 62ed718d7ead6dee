package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubDishRepo struct {
	dishes map[string]*domain.Dish
}

func (r *stubDishRepo) Create(_ context.Context, d *domain.Dish) error {
	r.dishes[d.ID] = d
	return nil
}

func (r *stubDishRepo) FindByID(_ context.Context, id string) (*domain.Dish, error) {
	d, ok := r.dishes[id]
	if !ok {
		return nil, domain.ErrDishNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDishRepo) List(_ context.Context, _ string, _ ports.Page) ([]*domain.Dish, int64, error) {
	return nil, 0, nil
}

func (r *stubDishRepo) Update(_ context.Context, d *domain.Dish) error {
	r.dishes[d.ID] = d
	return nil
}

func (r *stubDishRepo) Delete(_ context.Context, id string) error {
	delete(r.dishes, id)
	return nil
}

func (r *stubDishRepo) SetImage(_ context.Context, id, url string) error {
	r.dishes[id].ImageURL = url
	return nil
}

func (r *stubDishRepo) TakeStock(_ context.Context, id string, qty int) error {
	d := r.dishes[id]
	if d.Stock < qty {
		return domain.ErrInsufficientStock
	}
	d.Stock -= qty
	return nil
}

func (r *stubDishRepo) ReturnStock(_ context.Context, id string, qty int) error {
	r.dishes[id].Stock += qty
	return nil
}

type stubDishOrders struct {
	*stubPayables
	orders map[string]*domain.DishOrder
}

func (r *stubDishOrders) Create(_ context.Context, o *domain.DishOrder) error {
	o.ID = "do-" + o.Reference
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubDishOrders) FindByID(_ context.Context, id string) (*domain.DishOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrDishOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubDishOrders) List(_ context.Context, _ ports.DishOrderFilter) ([]*domain.DishOrder, int64, error) {
	return nil, 0, nil
}

func (r *stubDishOrders) UpdateStatus(_ context.Context, id string, from, to domain.DishOrderStatus) error {
	o := r.orders[id]
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func newDishFixture() (*DishService, *stubDishRepo, *stubDishOrders) {
	dishes := &stubDishRepo{dishes: map[string]*domain.Dish{
		"jollof": {ID: "jollof", Name: "Jollof Rice", Price: 3500, Stock: 5},
		"suya":   {ID: "suya", Name: "Suya", Price: 2000.5, Stock: 1},
	}}
	orders := &stubDishOrders{stubPayables: newStubPayables(), orders: map[string]*domain.DishOrder{}}
	svc := NewDishService(&stubTx{}, dishes, orders, nil, &stubRefs{}, &stubNotifier{}, zerolog.Nop())
	return svc, dishes, orders
}

func TestDishService_PlaceOrder(t *testing.T) {
	svc, dishes, _ := newDishFixture()

	o, err := svc.PlaceOrder(context.Background(), guestAda, ports.CreateDishOrderInput{
		Lines: []ports.DishOrderLineInput{
			{DishID: "jollof", Quantity: 1},
			{DishID: "suya", Quantity: 1},
			{DishID: "jollof", Quantity: 1},
		},
		RoomNumber: "101",
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if len(o.Lines) != 2 || o.Lines[0].Quantity != 2 {
		t.Errorf("lines = %+v, want jollof merged to 2", o.Lines)
	}
	if o.Total != 9000.5 {
		t.Errorf("total = %v, want 9000.5", o.Total)
	}
	if dishes.dishes["jollof"].Stock != 3 || dishes.dishes["suya"].Stock != 0 {
		t.Errorf("stock jollof=%d suya=%d", dishes.dishes["jollof"].Stock, dishes.dishes["suya"].Stock)
	}
}

func TestDishService_PlaceOrder_InsufficientStock(t *testing.T) {
	svc, _, orders := newDishFixture()

	_, err := svc.PlaceOrder(context.Background(), guestAda, ports.CreateDishOrderInput{
		Lines: []ports.DishOrderLineInput{{DishID: "suya", Quantity: 2}},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Error("order should not be stored")
	}
}

func TestDishService_PlaceOrder_Validation(t *testing.T) {
	svc, _, _ := newDishFixture()
	ctx := context.Background()

	if _, err := svc.PlaceOrder(ctx, guestAda, ports.CreateDishOrderInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty order: %v", err)
	}
	bad := ports.CreateDishOrderInput{Lines: []ports.DishOrderLineInput{{DishID: "jollof", Quantity: 0}}}
	if _, err := svc.PlaceOrder(ctx, guestAda, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("zero quantity: %v", err)
	}
	missing := ports.CreateDishOrderInput{Lines: []ports.DishOrderLineInput{{DishID: "pizza", Quantity: 1}}}
	if _, err := svc.PlaceOrder(ctx, guestAda, missing); !errors.Is(err, domain.ErrDishNotFound) {
		t.Errorf("unknown dish: %v", err)
	}
}

func TestDishService_CancelReturnsStock(t *testing.T) {
	svc, dishes, _ := newDishFixture()
	ctx := context.Background()

	o, err := svc.PlaceOrder(ctx, guestAda, ports.CreateDishOrderInput{
		Lines: []ports.DishOrderLineInput{{DishID: "jollof", Quantity: 4}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateOrderStatus(ctx, o.ID, domain.DishOrderCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if dishes.dishes["jollof"].Stock != 5 {
		t.Errorf("stock = %d, want 5", dishes.dishes["jollof"].Stock)
	}
	if _, err := svc.UpdateOrderStatus(ctx, o.ID, domain.DishOrderServed); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Cancelled -> Served: %v", err)
	}
}
