package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type stubServiceRequestRepo struct {
	byID map[string]*domain.ServiceRequest
}

func newStubServiceRequestRepo(reqs ...*domain.ServiceRequest) *stubServiceRequestRepo {
	r := &stubServiceRequestRepo{byID: map[string]*domain.ServiceRequest{}}
	for _, req := range reqs {
		r.byID[req.ID] = req
	}
	return r
}

func (r *stubServiceRequestRepo) Create(_ context.Context, req *domain.ServiceRequest) error {
	req.ID = "sr1"
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *stubServiceRequestRepo) FindByID(_ context.Context, id string) (*domain.ServiceRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubServiceRequestRepo) List(_ context.Context, _ ports.ServiceRequestFilter) ([]*domain.ServiceRequest, int64, error) {
	return nil, 0, nil
}

func (r *stubServiceRequestRepo) UpdateStatus(_ context.Context, id string, from, to domain.ServiceRequestStatus, handledBy string) error {
	req, ok := r.byID[id]
	if !ok {
		return domain.ErrServiceRequestNotFound
	}
	if req.Status != from {
		return domain.ErrInvalidTransition
	}
	req.Status = to
	req.HandledBy = handledBy
	return nil
}

var concierge = domain.Principal{ID: "s7", Category: domain.CategoryStaff, Role: domain.RoleStaff, Tasks: []domain.Task{domain.TaskServiceRequest}}

func openRequest(guestID string) *domain.ServiceRequest {
	return &domain.ServiceRequest{ID: "sr1", GuestID: guestID, Type: "Room cleaning", Description: "Fresh towels", Status: domain.RequestOpen}
}

func TestServiceRequestService_Create(t *testing.T) {
	repo := newStubServiceRequestRepo()
	n := &stubNotifier{}
	svc := NewServiceRequestService(repo, n, zerolog.Nop())

	r, err := svc.Create(context.Background(), guestAda, ports.CreateServiceRequestInput{RoomNumber: " 101 ", Type: "Room cleaning", Description: "Fresh towels"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Status != domain.RequestOpen || r.GuestID != guestAda.ID || r.RoomNumber != "101" {
		t.Errorf("unexpected request %+v", r)
	}
	if got := n.events(); len(got) != 1 || got[0] != "service_request.created" {
		t.Errorf("events = %v", got)
	}

	if _, err := svc.Create(context.Background(), guestAda, ports.CreateServiceRequestInput{Type: "Room cleaning"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing description err = %v", err)
	}
}

func TestServiceRequestService_UpdateStatus_GuestCancelsOwn(t *testing.T) {
	repo := newStubServiceRequestRepo(openRequest(guestAda.ID))
	n := &stubNotifier{}
	svc := NewServiceRequestService(repo, n, zerolog.Nop())

	r, err := svc.UpdateStatus(context.Background(), guestAda, "sr1", domain.RequestCancelled)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if r.Status != domain.RequestCancelled || repo.byID["sr1"].Status != domain.RequestCancelled {
		t.Errorf("status = %s, want Cancelled", r.Status)
	}
	if r.HandledBy != "" {
		t.Errorf("guest cancel recorded handler %q", r.HandledBy)
	}
	if got := n.events(); len(got) != 1 || got[0] != "service_request.status_changed" {
		t.Errorf("events = %v", got)
	}
}

func TestServiceRequestService_UpdateStatus_GuestRestrictions(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		to    domain.ServiceRequestStatus
		want  error
	}{
		{"someone else's request", "g2", domain.RequestCancelled, domain.ErrServiceRequestNotFound},
		{"start own request", guestAda.ID, domain.RequestInProgress, domain.ErrForbidden},
		{"resolve own request", guestAda.ID, domain.RequestResolved, domain.ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubServiceRequestRepo(openRequest(tc.owner))
			svc := NewServiceRequestService(repo, &stubNotifier{}, zerolog.Nop())

			if _, err := svc.UpdateStatus(context.Background(), guestAda, "sr1", tc.to); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if repo.byID["sr1"].Status != domain.RequestOpen {
				t.Errorf("status changed to %s", repo.byID["sr1"].Status)
			}
		})
	}
}

func TestServiceRequestService_UpdateStatus_StaffHandles(t *testing.T) {
	repo := newStubServiceRequestRepo(openRequest("g2"))
	svc := NewServiceRequestService(repo, &stubNotifier{}, zerolog.Nop())
	ctx := context.Background()

	r, err := svc.UpdateStatus(ctx, concierge, "sr1", domain.RequestInProgress)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if r.HandledBy != concierge.ID || repo.byID["sr1"].HandledBy != concierge.ID {
		t.Errorf("handled by %q, want %q", r.HandledBy, concierge.ID)
	}

	if _, err := svc.UpdateStatus(ctx, concierge, "sr1", domain.RequestCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancel in progress err = %v, want ErrInvalidTransition", err)
	}

	r, err = svc.UpdateStatus(ctx, concierge, "sr1", domain.RequestResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if r.Status != domain.RequestResolved {
		t.Errorf("status = %s", r.Status)
	}

	if _, err := svc.UpdateStatus(ctx, concierge, "sr1", domain.RequestInProgress); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("reopen resolved err = %v, want ErrInvalidTransition", err)
	}
}
