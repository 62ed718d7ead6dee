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

type ServiceRequestService struct {
	repo     ports.ServiceRequestRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewServiceRequestService(repo ports.ServiceRequestRepository, notifier ports.Notifier, log zerolog.Logger) *ServiceRequestService {
	return &ServiceRequestService{repo: repo, notifier: notifier, log: log}
}

func (s *ServiceRequestService) Create(ctx context.Context, guest domain.Principal, in ports.CreateServiceRequestInput) (*domain.ServiceRequest, error) {
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: type and description are required", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	r := &domain.ServiceRequest{
		GuestID:     guest.ID,
		GuestName:   guest.Name,
		RoomNumber:  strings.TrimSpace(in.RoomNumber),
		Type:        strings.TrimSpace(in.Type),
		Description: strings.TrimSpace(in.Description),
		Status:      domain.RequestOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.notifier.Notify(ports.Notification{Key: r.GuestID, Event: domainEvent("service_request.created", r.ID, r)})
	return r, nil
}

func (s *ServiceRequestService) Get(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceRequestService) List(ctx context.Context, f ports.ServiceRequestFilter) (*ports.ListResult[*domain.ServiceRequest], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

// UpdateStatus moves a request along its lifecycle. Guests may only cancel
// their own requests; staff record themselves as the handler.
func (s *ServiceRequestService) UpdateStatus(ctx context.Context, actor domain.Principal, id string, to domain.ServiceRequestStatus) (*domain.ServiceRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	handledBy := r.HandledBy
	if actor.Category == domain.CategoryGuest {
		if r.GuestID != actor.ID {
			return nil, domain.ErrServiceRequestNotFound
		}
		if to != domain.RequestCancelled {
			return nil, fmt.Errorf("%w: guests can only cancel requests", domain.ErrForbidden)
		}
	} else {
		handledBy = actor.ID
	}

	if !r.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, r.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, r.Status, to, handledBy); err != nil {
		return nil, err
	}
	r.Status = to
	r.HandledBy = handledBy
	r.UpdatedAt = time.Now().UTC()

	s.notifier.Notify(ports.Notification{Key: r.GuestID, Event: domainEvent("service_request.status_changed", r.ID, r)})
	s.log.Info().Str("request_id", r.ID).Str("status", string(to)).Str("actor", actor.ID).Msg("service request updated")
	return r, nil
}
