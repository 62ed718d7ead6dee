package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubLaundryItems struct {
	items map[string]domain.LaundryItem
}

func (r *stubLaundryItems) Create(_ context.Context, item *domain.LaundryItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *stubLaundryItems) FindByID(_ context.Context, id string) (*domain.LaundryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrLaundryItemNotFound
	}
	return &item, nil
}

func (r *stubLaundryItems) FindByIDs(_ context.Context, ids []string) (map[string]domain.LaundryItem, error) {
	out := make(map[string]domain.LaundryItem, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *stubLaundryItems) List(_ context.Context, _ string, _ ports.Page) ([]*domain.LaundryItem, int64, error) {
	return nil, 0, nil
}

func (r *stubLaundryItems) Update(_ context.Context, item *domain.LaundryItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *stubLaundryItems) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type stubLaundryOrders struct {
	*stubPayables
	orders map[string]*domain.LaundryOrder
}

func newStubLaundryOrders() *stubLaundryOrders {
	return &stubLaundryOrders{stubPayables: newStubPayables(), orders: map[string]*domain.LaundryOrder{}}
}

func (r *stubLaundryOrders) Create(_ context.Context, o *domain.LaundryOrder) error {
	o.ID = "lo-" + o.Reference
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubLaundryOrders) FindByID(_ context.Context, id string) (*domain.LaundryOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrLaundryOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubLaundryOrders) List(_ context.Context, _ ports.LaundryOrderFilter) ([]*domain.LaundryOrder, int64, error) {
	return nil, 0, nil
}

func (r *stubLaundryOrders) Reprice(_ context.Context, o *domain.LaundryOrder) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		return domain.ErrLaundryOrderNotFound
	}
	if !stored.Status.Editable() {
		return domain.ErrOrderLocked
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubLaundryOrders) UpdateStatus(_ context.Context, id string, from, to domain.LaundryStatus) error {
	o := r.orders[id]
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func laundryCatalog() *stubLaundryItems {
	return &stubLaundryItems{items: map[string]domain.LaundryItem{
		"shirt": {ID: "shirt", Name: "Shirt", BasePrice: 100, WashPrice: 120, IronPrice: 80, WashAndIronPrice: 150},
		"towel": {ID: "towel", Name: "Towel", BasePrice: 50, WashPrice: 60, IronPrice: 40, WashAndIronPrice: 70},
	}}
}

func newLaundrySvc(orders *stubLaundryOrders, cfg LaundryConfig) *LaundryService {
	return NewLaundryService(laundryCatalog(), orders, &stubRefs{}, &stubNotifier{}, cfg, zerolog.Nop())
}

func TestLaundryService_CreateOrder_DiscountAndFees(t *testing.T) {
	orders := newStubLaundryOrders()
	svc := newLaundrySvc(orders, LaundryConfig{})

	res, err := svc.CreateOrder(context.Background(), guestAda, ports.CreateLaundryOrderInput{
		Lines:             []domain.LineRequest{{ItemID: "shirt", ServiceType: "Wash & Iron", Quantity: 20}},
		UrgentFee:         50,
		DiscountRequested: true,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	o := res.Order
	if o.Subtotal != 3000 || o.Discount != 300 || o.Total != 2750 {
		t.Errorf("subtotal=%v discount=%v total=%v, want 3000/300/2750", o.Subtotal, o.Discount, o.Total)
	}
	if o.Status != domain.LaundryPending || o.GuestEmail != guestAda.Email {
		t.Errorf("unexpected order %+v", o)
	}
	if len(res.Dropped) != 0 {
		t.Errorf("dropped = %v", res.Dropped)
	}
}

func TestLaundryService_CreateOrder_UnknownItems(t *testing.T) {
	in := ports.CreateLaundryOrderInput{Lines: []domain.LineRequest{
		{ItemID: "shirt", ServiceType: "iron", Quantity: 2},
		{ItemID: "ghost", ServiceType: "wash", Quantity: 1},
	}}

	res, err := newLaundrySvc(newStubLaundryOrders(), LaundryConfig{}).CreateOrder(context.Background(), guestAda, in)
	if err != nil {
		t.Fatalf("drop mode: %v", err)
	}
	if res.Order.Total != 160 || len(res.Dropped) != 1 || res.Dropped[0] != "ghost" {
		t.Errorf("total=%v dropped=%v", res.Order.Total, res.Dropped)
	}

	_, err = newLaundrySvc(newStubLaundryOrders(), LaundryConfig{RejectUnknownItems: true}).CreateOrder(context.Background(), guestAda, in)
	var pe *domain.PricingError
	if !errors.As(err, &pe) {
		t.Errorf("reject mode: expected PricingError, got %v", err)
	}
}

func TestLaundryService_UpdateOrder_FeesRequoteFrozenPrices(t *testing.T) {
	orders := newStubLaundryOrders()
	svc := newLaundrySvc(orders, LaundryConfig{})
	ctx := context.Background()

	res, err := svc.CreateOrder(ctx, guestAda, ports.CreateLaundryOrderInput{
		Lines: []domain.LineRequest{{ItemID: "towel", ServiceType: "wash", Quantity: 10}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// A later catalog change must not leak into a fee-only edit.
	svc.items.(*stubLaundryItems).items["towel"] = domain.LaundryItem{ID: "towel", Name: "Towel", WashPrice: 999}

	charge := 25.0
	upd, err := svc.UpdateOrder(ctx, res.Order.ID, ports.UpdateLaundryOrderInput{ServiceCharge: &charge})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if upd.Order.Subtotal != 600 || upd.Order.Total != 625 {
		t.Errorf("subtotal=%v total=%v, want 600/625", upd.Order.Subtotal, upd.Order.Total)
	}

	lines := []domain.LineRequest{{ItemID: "towel", ServiceType: "wash", Quantity: 1}}
	upd, err = svc.UpdateOrder(ctx, res.Order.ID, ports.UpdateLaundryOrderInput{Lines: &lines})
	if err != nil {
		t.Fatalf("UpdateOrder lines: %v", err)
	}
	if upd.Order.Subtotal != 999 || upd.Order.Total != 1024 {
		t.Errorf("replaced lines: subtotal=%v total=%v, want 999/1024", upd.Order.Subtotal, upd.Order.Total)
	}
}

func TestLaundryService_UpdateOrder_LockedOnceReady(t *testing.T) {
	orders := newStubLaundryOrders()
	svc := newLaundrySvc(orders, LaundryConfig{})
	ctx := context.Background()

	res, _ := svc.CreateOrder(ctx, guestAda, ports.CreateLaundryOrderInput{
		Lines: []domain.LineRequest{{ItemID: "shirt", Quantity: 1}},
	})
	for _, to := range []domain.LaundryStatus{domain.LaundryInProgress, domain.LaundryReady} {
		if _, err := svc.UpdateOrderStatus(ctx, res.Order.ID, to); err != nil {
			t.Fatalf("-> %s: %v", to, err)
		}
	}

	fee := 10.0
	if _, err := svc.UpdateOrder(ctx, res.Order.ID, ports.UpdateLaundryOrderInput{UrgentFee: &fee}); !errors.Is(err, domain.ErrOrderLocked) {
		t.Errorf("expected ErrOrderLocked, got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(ctx, res.Order.ID, domain.LaundryPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Ready -> Pending: %v", err)
	}
}
