package ports

import (
	"context"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// ServiceRequestFilter narrows service request listings.
type ServiceRequestFilter struct {
	GuestID string
	Status  string
	Type    string
	Page    Page
}

// ServiceRequestRepository persists guest service requests.
type ServiceRequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) error
	FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, f ServiceRequestFilter) ([]*domain.ServiceRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.ServiceRequestStatus, handledBy string) error
}

// CreateServiceRequestInput carries a guest's request.
type CreateServiceRequestInput struct {
	RoomNumber  string
	Type        string
	Description string
}

// ServiceRequestService manages guest service requests.
type ServiceRequestService interface {
	Create(ctx context.Context, guest domain.Principal, in CreateServiceRequestInput) (*domain.ServiceRequest, error)
	Get(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, f ServiceRequestFilter) (*ListResult[*domain.ServiceRequest], error)
	UpdateStatus(ctx context.Context, actor domain.Principal, id string, to domain.ServiceRequestStatus) (*domain.ServiceRequest, error)
}
