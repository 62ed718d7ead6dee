package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const collectionServiceRequests = "service_requests"

type ServiceRequestRepository struct {
	col *mongo.Collection
}

func NewServiceRequestRepository(db *mongo.Database) *ServiceRequestRepository {
	return &ServiceRequestRepository{col: db.Collection(collectionServiceRequests)}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	req.ID = newID()
	return insert(ctx, r.col, req, domain.ErrDuplicate)
}

func (r *ServiceRequestRepository) FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return findOne[domain.ServiceRequest](ctx, r.col, bson.M{"_id": id}, domain.ErrServiceRequestNotFound)
}

func (r *ServiceRequestRepository) List(ctx context.Context, f ports.ServiceRequestFilter) ([]*domain.ServiceRequest, int64, error) {
	filter := bson.M{}
	if f.GuestID != "" {
		filter["guest_id"] = f.GuestID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = containsFold(f.Type)
	}
	return findPage[domain.ServiceRequest](ctx, r.col, filter, f.Page, nil)
}

func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ServiceRequestStatus, handledBy string) error {
	var extra bson.M
	if handledBy != "" {
		extra = bson.M{"handled_by": handledBy}
	}
	return transition(ctx, r.col, id, string(from), string(to), extra, domain.ErrServiceRequestNotFound)
}
