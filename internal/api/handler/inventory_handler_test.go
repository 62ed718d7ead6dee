package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubInventoryService struct {
	ports.InventoryService
	listFn   func(ctx context.Context, f ports.InventoryFilter) (*ports.ListResult[*domain.InventoryItem], error)
	adjustFn func(ctx context.Context, actor domain.Principal, id string, delta int, note string) (*domain.InventoryItem, error)
}

func (s *stubInventoryService) ListItems(ctx context.Context, f ports.InventoryFilter) (*ports.ListResult[*domain.InventoryItem], error) {
	return s.listFn(ctx, f)
}

func (s *stubInventoryService) Adjust(ctx context.Context, actor domain.Principal, id string, delta int, note string) (*domain.InventoryItem, error) {
	return s.adjustFn(ctx, actor, id, delta, note)
}

var testStorekeeper = domain.Principal{ID: "s1", Category: domain.CategoryStaff, Role: domain.RoleStaff, Tasks: []domain.Task{domain.TaskInventory}}

func TestInventoryHandler_LowStock_BindsQueryAndFlag(t *testing.T) {
	h := NewInventoryHandler(&stubInventoryService{
		listFn: func(ctx context.Context, f ports.InventoryFilter) (*ports.ListResult[*domain.InventoryItem], error) {
			if !f.LowStock || f.Category != "linen" || f.SupplierID != "sp1" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if f.Page.Page != 4 || f.Page.Limit != 25 {
				t.Fatalf("unexpected page: %+v", f.Page)
			}
			return ports.NewListResult([]*domain.InventoryItem{{ID: "i1"}}, 1, f.Page), nil
		},
	})

	c, rec := newJSONContext(http.MethodGet, "/v1/inventory/items/low-stock?category=linen&supplier_id=sp1&page=4&limit=25", "")
	if err := h.LowStock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)
}

func TestInventoryHandler_Adjust(t *testing.T) {
	h := NewInventoryHandler(&stubInventoryService{
		adjustFn: func(ctx context.Context, actor domain.Principal, id string, delta int, note string) (*domain.InventoryItem, error) {
			if actor.ID != testStorekeeper.ID || id != "i1" || delta != -3 || note != "spa" {
				t.Fatalf("unexpected call: actor=%s id=%s delta=%d note=%q", actor.ID, id, delta, note)
			}
			return &domain.InventoryItem{ID: id, Quantity: 7}, nil
		},
	})

	c, rec := newJSONContext(http.MethodPatch, "/v1/inventory/items/i1/adjust", `{"delta":-3,"note":"spa"}`)
	c.SetParamNames("id")
	c.SetParamValues("i1")
	if err := h.Adjust(asPrincipal(c, testStorekeeper)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)
}

func TestInventoryHandler_Adjust_RejectsZeroDelta(t *testing.T) {
	h := NewInventoryHandler(&stubInventoryService{})

	c, _ := newJSONContext(http.MethodPatch, "/v1/inventory/items/i1/adjust", `{"delta":0}`)
	c.SetParamNames("id")
	c.SetParamValues("i1")
	assertHTTPError(t, h.Adjust(asPrincipal(c, testStorekeeper)), http.StatusUnprocessableEntity)
}

func TestInventoryHandler_Adjust_PassesStockErrors(t *testing.T) {
	h := NewInventoryHandler(&stubInventoryService{
		adjustFn: func(context.Context, domain.Principal, string, int, string) (*domain.InventoryItem, error) {
			return nil, domain.ErrInsufficientStock
		},
	})

	c, _ := newJSONContext(http.MethodPatch, "/v1/inventory/items/i1/adjust", `{"delta":-50}`)
	c.SetParamNames("id")
	c.SetParamValues("i1")
	if err := h.Adjust(asPrincipal(c, testStorekeeper)); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
}
