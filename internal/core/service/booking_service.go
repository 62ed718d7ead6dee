package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// BookingService runs the room booking lifecycle. Every change that touches
// both a booking and its room runs in one transaction.
type BookingService struct {
	tx       ports.TxRunner
	rooms    ports.RoomRepository
	bookings ports.BookingRepository
	refs     ports.ReferenceGenerator
	notifier ports.Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func NewBookingService(
	tx ports.TxRunner,
	rooms ports.RoomRepository,
	bookings ports.BookingRepository,
	refs ports.ReferenceGenerator,
	notifier ports.Notifier,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		tx:       tx,
		rooms:    rooms,
		bookings: bookings,
		refs:     refs,
		notifier: notifier,
		now:      time.Now,
		log:      log,
	}
}

// Create reserves the room and records a Pending booking atomically.
func (s *BookingService) Create(ctx context.Context, guest domain.Principal, in ports.CreateBookingInput) (*domain.RoomBooking, error) {
	nights := domain.Nights(in.CheckIn, in.CheckOut)
	if nights < 1 {
		return nil, fmt.Errorf("%w: check_out must be at least one night after check_in", domain.ErrInvalidInput)
	}
	if domain.Nights(s.now(), in.CheckIn) < 0 {
		return nil, fmt.Errorf("%w: check_in cannot be in the past", domain.ErrInvalidInput)
	}
	if in.Occupants <= 0 {
		in.Occupants = 1
	}

	var booking *domain.RoomBooking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		room, err := s.rooms.FindByID(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if room.Capacity > 0 && in.Occupants > room.Capacity {
			return fmt.Errorf("%w: room %s sleeps at most %d", domain.ErrInvalidInput, room.Number, room.Capacity)
		}
		if err := s.rooms.Reserve(ctx, room.ID); err != nil {
			return err
		}

		now := s.now().UTC()
		booking = &domain.RoomBooking{
			Reference:      s.refs.Generate("BK"),
			GuestID:        guest.ID,
			GuestName:      guest.Name,
			GuestEmail:     guest.Email,
			RoomID:         room.ID,
			RoomNumber:     room.Number,
			RoomType:       room.Type,
			CheckIn:        in.CheckIn.UTC(),
			CheckOut:       in.CheckOut.UTC(),
			Nights:         nights,
			Occupants:      in.Occupants,
			NightlyRate:    room.Price,
			Amount:         domain.StayAmount(room.Price, nights),
			SpecialRequest: in.SpecialRequest,
			Status:         domain.BookingPending,
			PaymentStatus:  domain.Unpaid,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return s.bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.announce(booking, "booking.created", "Booking received")
	s.log.Info().Str("booking_id", booking.ID).Str("reference", booking.Reference).Str("room_id", booking.RoomID).Msg("booking created")
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.RoomBooking, error) {
	return s.bookings.FindByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, f ports.BookingFilter) (*ports.ListResult[*domain.RoomBooking], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

// UpdateStatus applies a staff transition. Checking out or cancelling
// frees the room in the same transaction.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.RoomBooking, error) {
	var booking *domain.RoomBooking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !b.Status.CanTransitionTo(to) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, b.Status, to)
		}
		if err := s.bookings.UpdateStatus(ctx, id, b.Status, to); err != nil {
			return err
		}
		if to.ReleasesRoom() {
			if err := s.rooms.Release(ctx, b.RoomID); err != nil {
				return fmt.Errorf("release room: %w", err)
			}
		}
		b.Status = to
		b.UpdatedAt = s.now().UTC()
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(booking, "booking.status_changed", "Booking "+string(to))
	s.log.Info().Str("booking_id", id).Str("status", string(to)).Msg("booking status changed")
	return booking, nil
}

// Cancel lets a guest cancel their own Pending or Confirmed booking.
func (s *BookingService) Cancel(ctx context.Context, guest domain.Principal, id string) (*domain.RoomBooking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID != guest.ID {
		return nil, domain.ErrBookingNotFound
	}
	return s.UpdateStatus(ctx, id, domain.BookingCancelled)
}

func (s *BookingService) announce(b *domain.RoomBooking, event, subject string) {
	s.notifier.Notify(ports.Notification{
		Key: b.GuestID,
		Email: statusEmail(b.GuestEmail, b.GuestName, subject, TemplateBookingStatus, map[string]any{
			"Reference": b.Reference,
			"Room":      b.RoomNumber,
			"CheckIn":   b.CheckIn.Format("2006-01-02"),
			"CheckOut":  b.CheckOut.Format("2006-01-02"),
			"Amount":    b.Amount,
			"Status":    string(b.Status),
		}),
		Event: domainEvent(event, b.ID, b),
	})
}
