package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubHallRepo struct {
	halls map[string]*domain.Hall
}

func (r *stubHallRepo) Create(_ context.Context, h *domain.Hall) error {
	r.halls[h.ID] = h
	return nil
}

func (r *stubHallRepo) FindByID(_ context.Context, id string) (*domain.Hall, error) {
	h, ok := r.halls[id]
	if !ok {
		return nil, domain.ErrHallNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *stubHallRepo) List(_ context.Context, _ ports.Page) ([]*domain.Hall, int64, error) {
	return nil, 0, nil
}

func (r *stubHallRepo) Update(_ context.Context, h *domain.Hall) error {
	r.halls[h.ID] = h
	return nil
}

func (r *stubHallRepo) Delete(_ context.Context, id string) error {
	delete(r.halls, id)
	return nil
}

func (r *stubHallRepo) AddImages(_ context.Context, id string, urls []string) error {
	r.halls[id].Images = append(r.halls[id].Images, urls...)
	return nil
}

// stubReservations enforces the one-active-reservation-per-hall-and-day
// index the real store has.
type stubReservations struct {
	*stubPayables
	byID map[string]*domain.HallReservation
}

func (r *stubReservations) Create(_ context.Context, res *domain.HallReservation) error {
	for _, other := range r.byID {
		if other.Active && other.HallID == res.HallID && other.EventDate.Equal(res.EventDate) {
			return domain.ErrHallUnavailable
		}
	}
	res.ID = "ev-" + res.Reference
	clone := *res
	r.byID[res.ID] = &clone
	return nil
}

func (r *stubReservations) FindByID(_ context.Context, id string) (*domain.HallReservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservations) List(_ context.Context, f ports.ReservationFilter) ([]*domain.HallReservation, int64, error) {
	var out []*domain.HallReservation
	for _, res := range r.byID {
		if f.HallID != "" && res.HallID != f.HallID {
			continue
		}
		if f.Status != "" && string(res.Status) != f.Status {
			continue
		}
		out = append(out, res)
	}
	return out, int64(len(out)), nil
}

func (r *stubReservations) UpdateStatus(_ context.Context, id string, from, to domain.ReservationStatus) error {
	res := r.byID[id]
	if res.Status != from {
		return domain.ErrInvalidTransition
	}
	res.Status = to
	res.Active = to.HoldsDate()
	return nil
}

func newHallFixture() (*HallService, *stubReservations) {
	halls := &stubHallRepo{halls: map[string]*domain.Hall{
		"h1": {ID: "h1", Name: "Grand Hall", Capacity: 200, PricePerDay: 500000},
	}}
	res := &stubReservations{stubPayables: newStubPayables(), byID: map[string]*domain.HallReservation{}}
	svc := NewHallService(halls, res, nil, &stubRefs{}, &stubNotifier{}, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }
	return svc, res
}

func TestHallService_Reserve_OnePerDay(t *testing.T) {
	svc, _ := newHallFixture()
	ctx := context.Background()
	in := ports.CreateReservationInput{
		HallID:    "h1",
		EventType: "Wedding",
		EventDate: time.Date(2026, 6, 20, 15, 0, 0, 0, time.UTC),
		Attendees: 150,
	}

	first, err := svc.Reserve(ctx, guestAda, in)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !first.EventDate.Equal(time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)) || first.Amount != 500000 {
		t.Errorf("unexpected reservation %+v", first)
	}

	in.EventDate = time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC)
	if _, err := svc.Reserve(ctx, guestAda, in); !errors.Is(err, domain.ErrHallUnavailable) {
		t.Errorf("same day: %v", err)
	}

	if _, err := svc.UpdateReservationStatus(ctx, first.ID, domain.ReservationCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Reserve(ctx, guestAda, in); err != nil {
		t.Errorf("date should be free after cancellation: %v", err)
	}
}

func TestHallService_Reserve_Validation(t *testing.T) {
	svc, _ := newHallFixture()
	ctx := context.Background()
	base := ports.CreateReservationInput{HallID: "h1", EventType: "Party", EventDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)}

	past := base
	past.EventDate = time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	crowd := base
	crowd.Attendees = 201
	noType := base
	noType.EventType = " "
	missing := base
	missing.HallID = "h9"

	for name, tc := range map[string]struct {
		in   ports.CreateReservationInput
		want error
	}{
		"past date":     {past, domain.ErrInvalidInput},
		"over capacity": {crowd, domain.ErrInvalidInput},
		"no event type": {noType, domain.ErrInvalidInput},
		"unknown hall":  {missing, domain.ErrHallNotFound},
	} {
		if _, err := svc.Reserve(ctx, guestAda, tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestHallService_Delete_BlockedByUpcomingReservation(t *testing.T) {
	svc, _ := newHallFixture()
	ctx := context.Background()

	r, err := svc.Reserve(ctx, guestAda, ports.CreateReservationInput{
		HallID: "h1", EventType: "Gala", EventDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateReservationStatus(ctx, r.ID, domain.ReservationConfirmed); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "h1"); !errors.Is(err, domain.ErrHallUnavailable) {
		t.Errorf("expected ErrHallUnavailable, got %v", err)
	}
}
