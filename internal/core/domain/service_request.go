package domain

import "time"

// ServiceRequestStatus is the lifecycle state of a guest service request.
type ServiceRequestStatus string

const (
	RequestOpen       ServiceRequestStatus = "Open"
	RequestInProgress ServiceRequestStatus = "In Progress"
	RequestResolved   ServiceRequestStatus = "Resolved"
	RequestCancelled  ServiceRequestStatus = "Cancelled"
)

var requestTransitions = map[ServiceRequestStatus][]ServiceRequestStatus{
	RequestOpen:       {RequestInProgress, RequestCancelled},
	RequestInProgress: {RequestResolved},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ServiceRequestStatus) CanTransitionTo(next ServiceRequestStatus) bool {
	return canTransition(requestTransitions, s, next)
}

// ServiceRequest is a guest ask such as housekeeping or maintenance.
type ServiceRequest struct {
	ID          string               `json:"id" bson:"_id,omitempty"`
	GuestID     string               `json:"guest_id" bson:"guest_id"`
	GuestName   string               `json:"guest_name" bson:"guest_name"`
	RoomNumber  string               `json:"room_number" bson:"room_number"`
	Type        string               `json:"type" bson:"type"`
	Description string               `json:"description" bson:"description"`
	Status      ServiceRequestStatus `json:"status" bson:"status"`
	HandledBy   string               `json:"handled_by,omitempty" bson:"handled_by,omitempty"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}
