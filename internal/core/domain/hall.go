package domain

import "time"

// Hall is an event venue.
type Hall struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Capacity    int       `json:"capacity" bson:"capacity"`
	PricePerDay float64   `json:"price_per_day" bson:"price_per_day"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Images      []string  `json:"images" bson:"images"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ReservationStatus is the lifecycle state of a hall reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCompleted ReservationStatus = "Completed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return canTransition(reservationTransitions, s, next)
}

// HoldsDate reports whether a reservation in state s blocks its event date.
func (s ReservationStatus) HoldsDate() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// HallReservation books a hall for an event on a single day. Active mirrors
// Status.HoldsDate and backs the unique date index.
type HallReservation struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	Reference     string            `json:"reference" bson:"reference"`
	GuestID       string            `json:"guest_id" bson:"guest_id"`
	GuestName     string            `json:"guest_name" bson:"guest_name"`
	GuestEmail    string            `json:"guest_email" bson:"guest_email"`
	HallID        string            `json:"hall_id" bson:"hall_id"`
	HallName      string            `json:"hall_name" bson:"hall_name"`
	EventType     string            `json:"event_type" bson:"event_type"`
	EventDate     time.Time         `json:"event_date" bson:"event_date"`
	Attendees     int               `json:"attendees" bson:"attendees"`
	Amount        float64           `json:"amount" bson:"amount"`
	Notes         string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Status        ReservationStatus `json:"status" bson:"status"`
	Active        bool              `json:"-" bson:"active"`
	PaymentStatus PaymentStatus     `json:"payment_status" bson:"payment_status"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}

// EventDay normalises an event timestamp to midnight UTC.
func EventDay(t time.Time) time.Time { return truncateDay(t) }
