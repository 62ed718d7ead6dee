package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubHallService struct {
	ports.HallService
	reserveFn func(ctx context.Context, guest domain.Principal, in ports.CreateReservationInput) (*domain.HallReservation, error)
	listFn    func(ctx context.Context, f ports.ReservationFilter) (*ports.ListResult[*domain.HallReservation], error)
}

func (s *stubHallService) Reserve(ctx context.Context, guest domain.Principal, in ports.CreateReservationInput) (*domain.HallReservation, error) {
	return s.reserveFn(ctx, guest, in)
}

func (s *stubHallService) ListReservations(ctx context.Context, f ports.ReservationFilter) (*ports.ListResult[*domain.HallReservation], error) {
	return s.listFn(ctx, f)
}

func TestHallHandler_ListReservations_BindsDateWindow(t *testing.T) {
	h := NewHallHandler(&stubHallService{
		listFn: func(ctx context.Context, f ports.ReservationFilter) (*ports.ListResult[*domain.HallReservation], error) {
			if f.HallID != "h1" || f.GuestID != "g3" || f.Status != "Confirmed" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if !f.From.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) || !f.To.Equal(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected window: %s - %s", f.From, f.To)
			}
			if f.Page.Page != 2 || f.Page.Limit != 15 {
				t.Fatalf("unexpected page: %+v", f.Page)
			}
			return ports.NewListResult[*domain.HallReservation](nil, 0, f.Page), nil
		},
	})

	c, rec := newJSONContext(http.MethodGet, "/v1/halls/reservations?hall_id=h1&guest_id=g3&status=Confirmed&from=2026-06-01&to=2026-06-30&page=2&limit=15", "")
	if err := h.ListReservations(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)
}

func TestHallHandler_ListReservations_RejectsBadDate(t *testing.T) {
	h := NewHallHandler(&stubHallService{})

	c, _ := newJSONContext(http.MethodGet, "/v1/halls/reservations?from=01-06-2026", "")
	assertHTTPError(t, h.ListReservations(c), http.StatusUnprocessableEntity)
}

func TestHallHandler_Reserve(t *testing.T) {
	h := NewHallHandler(&stubHallService{
		reserveFn: func(ctx context.Context, guest domain.Principal, in ports.CreateReservationInput) (*domain.HallReservation, error) {
			if guest.ID != testGuest.ID || in.HallID != "h1" || in.Attendees != 80 {
				t.Fatalf("unexpected call: guest=%s in=%+v", guest.ID, in)
			}
			if !in.EventDate.Equal(time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("event date = %s", in.EventDate)
			}
			return &domain.HallReservation{ID: "hr1"}, nil
		},
	})

	c, rec := newJSONContext(http.MethodPost, "/v1/halls/reservations", `{"hall_id":"h1","event_type":"Wedding","event_date":"2026-07-04","attendees":80}`)
	if err := h.Reserve(asPrincipal(c, testGuest)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusCreated)
}
