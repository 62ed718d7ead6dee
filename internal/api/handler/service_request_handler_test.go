package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubServiceRequestService struct {
	ports.ServiceRequestService
	listFn   func(ctx context.Context, f ports.ServiceRequestFilter) (*ports.ListResult[*domain.ServiceRequest], error)
	statusFn func(ctx context.Context, actor domain.Principal, id string, to domain.ServiceRequestStatus) (*domain.ServiceRequest, error)
}

func (s *stubServiceRequestService) List(ctx context.Context, f ports.ServiceRequestFilter) (*ports.ListResult[*domain.ServiceRequest], error) {
	return s.listFn(ctx, f)
}

func (s *stubServiceRequestService) UpdateStatus(ctx context.Context, actor domain.Principal, id string, to domain.ServiceRequestStatus) (*domain.ServiceRequest, error) {
	return s.statusFn(ctx, actor, id, to)
}

func TestServiceRequestHandler_List_BindsEveryFilter(t *testing.T) {
	h := NewServiceRequestHandler(&stubServiceRequestService{
		listFn: func(ctx context.Context, f ports.ServiceRequestFilter) (*ports.ListResult[*domain.ServiceRequest], error) {
			want := ports.ServiceRequestFilter{GuestID: "g2", Status: "Open", Type: "Maintenance", Page: ports.Page{Page: 3, Limit: 20}}
			if f != want {
				t.Fatalf("filter = %+v, want %+v", f, want)
			}
			return ports.NewListResult[*domain.ServiceRequest](nil, 0, f.Page), nil
		},
	})

	c, rec := newJSONContext(http.MethodGet, "/v1/service-requests?guest_id=g2&status=Open&type=Maintenance&page=3&limit=20", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)
}

func TestServiceRequestHandler_Mine_IgnoresGuestIDParam(t *testing.T) {
	h := NewServiceRequestHandler(&stubServiceRequestService{
		listFn: func(ctx context.Context, f ports.ServiceRequestFilter) (*ports.ListResult[*domain.ServiceRequest], error) {
			if f.GuestID != testGuest.ID || f.Status != "Cancelled" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return ports.NewListResult[*domain.ServiceRequest](nil, 0, f.Page), nil
		},
	})

	c, rec := newJSONContext(http.MethodGet, "/v1/service-requests/mine?guest_id=g2&status=Cancelled", "")
	if err := h.Mine(asPrincipal(c, testGuest)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)
}

func TestServiceRequestHandler_UpdateStatus_PassesActor(t *testing.T) {
	h := NewServiceRequestHandler(&stubServiceRequestService{
		statusFn: func(ctx context.Context, actor domain.Principal, id string, to domain.ServiceRequestStatus) (*domain.ServiceRequest, error) {
			if actor.ID != testGuest.ID || id != "sr1" {
				t.Fatalf("actor=%s id=%s", actor.ID, id)
			}
			if to != domain.RequestResolved {
				t.Fatalf("status = %s", to)
			}
			return nil, domain.ErrForbidden
		},
	})

	c, _ := newJSONContext(http.MethodPatch, "/v1/service-requests/sr1/status", `{"status":"Resolved"}`)
	c.SetParamNames("id")
	c.SetParamValues("sr1")
	if err := h.UpdateStatus(asPrincipal(c, testGuest)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestServiceRequestHandler_UpdateStatus_RequiresStatus(t *testing.T) {
	h := NewServiceRequestHandler(&stubServiceRequestService{})

	c, _ := newJSONContext(http.MethodPatch, "/v1/service-requests/sr1/status", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("sr1")
	assertHTTPError(t, h.UpdateStatus(asPrincipal(c, testGuest)), http.StatusUnprocessableEntity)
}
