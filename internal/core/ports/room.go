package ports

import (
	"context"
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// RoomFilter narrows room listings.
type RoomFilter struct {
	Status string
	Type   string
	Page   Page
}

// RoomRepository persists rooms.
type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, f RoomFilter) ([]*domain.Room, int64, error)
	Update(ctx context.Context, r *domain.Room) error
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, id string, urls []string) error
	// Reserve flips an Available room to Booked and fails with
	// domain.ErrRoomUnavailable when the room is in any other state.
	Reserve(ctx context.Context, id string) error
	// Release makes a Booked room Available again. It is a no-op for rooms
	// in Maintenance.
	Release(ctx context.Context, id string) error
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	GuestID string
	RoomID  string
	Status  string
	Page    Page
}

// BookingRepository persists room bookings.
type BookingRepository interface {
	PayableStore
	Create(ctx context.Context, b *domain.RoomBooking) error
	FindByID(ctx context.Context, id string) (*domain.RoomBooking, error)
	List(ctx context.Context, f BookingFilter) ([]*domain.RoomBooking, int64, error)
	// UpdateStatus moves a booking from one status to another and fails with
	// domain.ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
}

// RoomInput carries the editable room fields.
type RoomInput struct {
	Number      string
	Type        string
	Description string
	Price       float64
	Capacity    int
	Amenities   []string
	Status      string
}

// RoomService manages the room catalogue.
type RoomService interface {
	Create(ctx context.Context, in RoomInput) (*domain.Room, error)
	Get(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, f RoomFilter) (*ListResult[*domain.Room], error)
	Update(ctx context.Context, id string, in RoomInput) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, id string, files []Upload) (*domain.Room, error)
}

// CreateBookingInput carries a guest's booking request.
type CreateBookingInput struct {
	RoomID         string
	CheckIn        time.Time
	CheckOut       time.Time
	Occupants      int
	SpecialRequest string
}

// BookingService manages room bookings.
type BookingService interface {
	Create(ctx context.Context, guest domain.Principal, in CreateBookingInput) (*domain.RoomBooking, error)
	Get(ctx context.Context, id string) (*domain.RoomBooking, error)
	List(ctx context.Context, f BookingFilter) (*ListResult[*domain.RoomBooking], error)
	UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.RoomBooking, error)
	Cancel(ctx context.Context, guest domain.Principal, id string) (*domain.RoomBooking, error)
}
