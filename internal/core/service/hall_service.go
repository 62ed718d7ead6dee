package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type HallService struct {
	halls        ports.HallRepository
	reservations ports.ReservationRepository
	images       ports.ImageStore
	refs         ports.ReferenceGenerator
	notifier     ports.Notifier
	now          func() time.Time
	log          zerolog.Logger
}

func NewHallService(
	halls ports.HallRepository,
	reservations ports.ReservationRepository,
	images ports.ImageStore,
	refs ports.ReferenceGenerator,
	notifier ports.Notifier,
	log zerolog.Logger,
) *HallService {
	return &HallService{
		halls:        halls,
		reservations: reservations,
		images:       images,
		refs:         refs,
		notifier:     notifier,
		now:          time.Now,
		log:          log,
	}
}

func (s *HallService) Create(ctx context.Context, in ports.HallInput) (*domain.Hall, error) {
	if strings.TrimSpace(in.Name) == "" || in.PricePerDay < 0 {
		return nil, fmt.Errorf("%w: name and a non-negative price are required", domain.ErrInvalidInput)
	}
	now := s.now().UTC()
	h := &domain.Hall{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Capacity:    in.Capacity,
		PricePerDay: in.PricePerDay,
		Amenities:   nonNil(in.Amenities),
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.halls.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HallService) Get(ctx context.Context, id string) (*domain.Hall, error) {
	return s.halls.FindByID(ctx, id)
}

func (s *HallService) List(ctx context.Context, p ports.Page) (*ports.ListResult[*domain.Hall], error) {
	p = p.Normalize()
	items, total, err := s.halls.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}
	return ports.NewListResult(items, total, p), nil
}

func (s *HallService) Update(ctx context.Context, id string, in ports.HallInput) (*domain.Hall, error) {
	h, err := s.halls.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		h.Name = strings.TrimSpace(in.Name)
	}
	if in.Description != "" {
		h.Description = in.Description
	}
	if in.Capacity > 0 {
		h.Capacity = in.Capacity
	}
	if in.PricePerDay > 0 {
		h.PricePerDay = in.PricePerDay
	}
	if in.Amenities != nil {
		h.Amenities = in.Amenities
	}
	h.UpdatedAt = s.now().UTC()
	if err := s.halls.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HallService) Delete(ctx context.Context, id string) error {
	h, err := s.halls.FindByID(ctx, id)
	if err != nil {
		return err
	}
	upcoming, _, err := s.reservations.List(ctx, ports.ReservationFilter{
		HallID: id,
		From:   domain.EventDay(s.now()),
		Status: string(domain.ReservationConfirmed),
		Page:   ports.Page{Page: 1, Limit: 1},
	})
	if err != nil {
		return fmt.Errorf("check reservations: %w", err)
	}
	if len(upcoming) > 0 {
		return fmt.Errorf("%w: hall has upcoming confirmed reservations", domain.ErrHallUnavailable)
	}
	if err := s.halls.Delete(ctx, id); err != nil {
		return err
	}
	removeImages(ctx, s.images, h.Images, s.log)
	return nil
}

func (s *HallService) AddImages(ctx context.Context, id string, files []ports.Upload) (*domain.Hall, error) {
	if _, err := s.halls.FindByID(ctx, id); err != nil {
		return nil, err
	}
	urls, err := uploadImages(ctx, s.images, "halls", "hall_"+id, files)
	if err != nil {
		return nil, err
	}
	if err := s.halls.AddImages(ctx, id, urls); err != nil {
		removeImages(ctx, s.images, urls, s.log)
		return nil, err
	}
	return s.halls.FindByID(ctx, id)
}

// Reserve books a hall for one day. A concurrent reservation for the same
// hall and day loses on the store's unique index and gets
// domain.ErrHallUnavailable.
func (s *HallService) Reserve(ctx context.Context, guest domain.Principal, in ports.CreateReservationInput) (*domain.HallReservation, error) {
	day := domain.EventDay(in.EventDate)
	if day.Before(domain.EventDay(s.now())) {
		return nil, fmt.Errorf("%w: event date cannot be in the past", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.EventType) == "" {
		return nil, fmt.Errorf("%w: event type is required", domain.ErrInvalidInput)
	}

	h, err := s.halls.FindByID(ctx, in.HallID)
	if err != nil {
		return nil, err
	}
	if h.Capacity > 0 && in.Attendees > h.Capacity {
		return nil, fmt.Errorf("%w: %s holds at most %d guests", domain.ErrInvalidInput, h.Name, h.Capacity)
	}

	now := s.now().UTC()
	r := &domain.HallReservation{
		Reference:     s.refs.Generate("EV"),
		GuestID:       guest.ID,
		GuestName:     guest.Name,
		GuestEmail:    guest.Email,
		HallID:        h.ID,
		HallName:      h.Name,
		EventType:     strings.TrimSpace(in.EventType),
		EventDate:     day,
		Attendees:     in.Attendees,
		Amount:        h.PricePerDay,
		Notes:         in.Notes,
		Status:        domain.ReservationPending,
		Active:        true,
		PaymentStatus: domain.Unpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, err
	}

	s.announce(r, "reservation.created", "Event reservation received")
	s.log.Info().Str("reservation_id", r.ID).Str("hall_id", h.ID).Time("event_date", day).Msg("hall reserved")
	return r, nil
}

func (s *HallService) GetReservation(ctx context.Context, id string) (*domain.HallReservation, error) {
	return s.reservations.FindByID(ctx, id)
}

func (s *HallService) ListReservations(ctx context.Context, f ports.ReservationFilter) (*ports.ListResult[*domain.HallReservation], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.reservations.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

func (s *HallService) UpdateReservationStatus(ctx context.Context, id string, to domain.ReservationStatus) (*domain.HallReservation, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, r.Status, to)
	}
	if err := s.reservations.UpdateStatus(ctx, id, r.Status, to); err != nil {
		return nil, err
	}
	r.Status = to
	r.Active = to.HoldsDate()
	r.UpdatedAt = s.now().UTC()

	s.announce(r, "reservation.status_changed", "Event reservation "+string(to))
	return r, nil
}

func (s *HallService) announce(r *domain.HallReservation, event, subject string) {
	s.notifier.Notify(ports.Notification{
		Key: r.GuestID,
		Email: statusEmail(r.GuestEmail, r.GuestName, subject, TemplateReservation, map[string]any{
			"Reference": r.Reference,
			"Hall":      r.HallName,
			"EventType": r.EventType,
			"EventDate": r.EventDate.Format("2006-01-02"),
			"Status":    string(r.Status),
		}),
		Event: domainEvent(event, r.ID, r),
	})
}
