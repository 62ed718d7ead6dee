package ports

import (
	"context"
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// HallRepository persists halls.
type HallRepository interface {
	Create(ctx context.Context, h *domain.Hall) error
	FindByID(ctx context.Context, id string) (*domain.Hall, error)
	List(ctx context.Context, p Page) ([]*domain.Hall, int64, error)
	Update(ctx context.Context, h *domain.Hall) error
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, id string, urls []string) error
}

// ReservationFilter narrows hall reservation listings.
type ReservationFilter struct {
	GuestID string
	HallID  string
	Status  string
	From    time.Time
	To      time.Time
	Page    Page
}

// ReservationRepository persists hall reservations. Create fails with
// domain.ErrHallUnavailable when another active reservation holds the same
// hall and day.
type ReservationRepository interface {
	PayableStore
	Create(ctx context.Context, r *domain.HallReservation) error
	FindByID(ctx context.Context, id string) (*domain.HallReservation, error)
	List(ctx context.Context, f ReservationFilter) ([]*domain.HallReservation, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error
}

// HallInput carries the editable hall fields.
type HallInput struct {
	Name        string
	Description string
	Capacity    int
	PricePerDay float64
	Amenities   []string
}

// CreateReservationInput carries a guest's hall reservation request.
type CreateReservationInput struct {
	HallID    string
	EventType string
	EventDate time.Time
	Attendees int
	Notes     string
}

// HallService manages halls and event reservations.
type HallService interface {
	Create(ctx context.Context, in HallInput) (*domain.Hall, error)
	Get(ctx context.Context, id string) (*domain.Hall, error)
	List(ctx context.Context, p Page) (*ListResult[*domain.Hall], error)
	Update(ctx context.Context, id string, in HallInput) (*domain.Hall, error)
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, id string, files []Upload) (*domain.Hall, error)

	Reserve(ctx context.Context, guest domain.Principal, in CreateReservationInput) (*domain.HallReservation, error)
	GetReservation(ctx context.Context, id string) (*domain.HallReservation, error)
	ListReservations(ctx context.Context, f ReservationFilter) (*ListResult[*domain.HallReservation], error)
	UpdateReservationStatus(ctx context.Context, id string, to domain.ReservationStatus) (*domain.HallReservation, error)
}
