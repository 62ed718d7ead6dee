package domain

import "time"

// PaymentStatus is the settlement flag carried by payable documents.
type PaymentStatus string

const (
	Unpaid PaymentStatus = "unpaid"
	Paid   PaymentStatus = "paid"
)

// PaymentPurpose names the kind of document a payment settles.
type PaymentPurpose string

const (
	PurposeRoomBooking     PaymentPurpose = "room_booking"
	PurposeHallReservation PaymentPurpose = "hall_reservation"
	PurposeLaundryOrder    PaymentPurpose = "laundry_order"
	PurposeDishOrder       PaymentPurpose = "dish_order"
)

// Valid reports whether p is a known purpose.
func (p PaymentPurpose) Valid() bool {
	switch p {
	case PurposeRoomBooking, PurposeHallReservation, PurposeLaundryOrder, PurposeDishOrder:
		return true
	}
	return false
}

// PaymentState is the lifecycle state of a gateway transaction.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentSuccess   PaymentState = "success"
	PaymentFailed    PaymentState = "failed"
	PaymentAbandoned PaymentState = "abandoned"
)

var paymentTransitions = map[PaymentState][]PaymentState{
	PaymentPending:   {PaymentSuccess, PaymentFailed, PaymentAbandoned},
	PaymentAbandoned: {PaymentSuccess, PaymentFailed},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s PaymentState) CanTransitionTo(next PaymentState) bool {
	return canTransition(paymentTransitions, s, next)
}

// Payment is a gateway transaction settling one payable document.
type Payment struct {
	ID               string         `json:"id" bson:"_id,omitempty"`
	Reference        string         `json:"reference" bson:"reference"`
	GuestID          string         `json:"guest_id" bson:"guest_id"`
	GuestEmail       string         `json:"guest_email" bson:"guest_email"`
	Purpose          PaymentPurpose `json:"purpose" bson:"purpose"`
	TargetID         string         `json:"target_id" bson:"target_id"`
	Amount           float64        `json:"amount" bson:"amount"`
	Currency         string         `json:"currency" bson:"currency"`
	State            PaymentState   `json:"state" bson:"state"`
	AuthorizationURL string         `json:"authorization_url,omitempty" bson:"authorization_url,omitempty"`
	AccessCode       string         `json:"-" bson:"access_code,omitempty"`
	Channel          string         `json:"channel,omitempty" bson:"channel,omitempty"`
	PaidAt           *time.Time     `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at"`
}

// PaymentEvent is an audit record of a gateway notification.
type PaymentEvent struct {
	Reference     string       `json:"reference" bson:"reference"`
	State         PaymentState `json:"state" bson:"state"`
	GatewayStatus string       `json:"gateway_status" bson:"gateway_status"`
	AmountMinor   int64        `json:"amount_minor" bson:"amount_minor"`
	Source        string       `json:"source" bson:"source"`
	ReceivedAt    time.Time    `json:"received_at" bson:"received_at"`
}
