package domain

import "time"

// LaundryItem is a catalog entry with one price per service variant.
type LaundryItem struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	Name             string    `json:"name" bson:"name"`
	Category         string    `json:"category,omitempty" bson:"category,omitempty"`
	BasePrice        float64   `json:"base_price" bson:"base_price"`
	WashPrice        float64   `json:"wash_price" bson:"wash_price"`
	IronPrice        float64   `json:"iron_price" bson:"iron_price"`
	WashAndIronPrice float64   `json:"wash_and_iron_price" bson:"wash_and_iron_price"`
	ImageURL         string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// LaundryLine is a priced order line. UnitPrice is frozen at order time and
// is never re-read from the catalog unless the lines are replaced.
type LaundryLine struct {
	ItemID      string  `json:"item_id" bson:"item_id"`
	ItemName    string  `json:"item_name" bson:"item_name"`
	ServiceType string  `json:"service_type" bson:"service_type"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	LineTotal   float64 `json:"line_total" bson:"line_total"`
}

// LaundryStatus is the lifecycle state of a laundry order.
type LaundryStatus string

const (
	LaundryPending    LaundryStatus = "Pending"
	LaundryInProgress LaundryStatus = "In Progress"
	LaundryReady      LaundryStatus = "Ready"
	LaundryDelivered  LaundryStatus = "Delivered"
	LaundryCancelled  LaundryStatus = "Cancelled"
)

var laundryTransitions = map[LaundryStatus][]LaundryStatus{
	LaundryPending:    {LaundryInProgress, LaundryCancelled},
	LaundryInProgress: {LaundryReady, LaundryCancelled},
	LaundryReady:      {LaundryDelivered},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s LaundryStatus) CanTransitionTo(next LaundryStatus) bool {
	return canTransition(laundryTransitions, s, next)
}

// Editable reports whether lines and fees may still change.
func (s LaundryStatus) Editable() bool {
	return s == LaundryPending || s == LaundryInProgress
}

// LaundryOrder is a guest's laundry booking.
type LaundryOrder struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	Reference         string        `json:"reference" bson:"reference"`
	GuestID           string        `json:"guest_id" bson:"guest_id"`
	GuestName         string        `json:"guest_name" bson:"guest_name"`
	GuestEmail        string        `json:"guest_email" bson:"guest_email"`
	RoomNumber        string        `json:"room_number,omitempty" bson:"room_number,omitempty"`
	Lines             []LaundryLine `json:"lines" bson:"lines"`
	TotalQuantity     int           `json:"total_quantity" bson:"total_quantity"`
	Subtotal          float64       `json:"subtotal" bson:"subtotal"`
	DiscountRequested bool          `json:"discount_requested" bson:"discount_requested"`
	Discount          float64       `json:"discount" bson:"discount"`
	UrgentFee         float64       `json:"urgent_fee" bson:"urgent_fee"`
	ServiceCharge     float64       `json:"service_charge" bson:"service_charge"`
	Total             float64       `json:"total" bson:"total"`
	Status            LaundryStatus `json:"status" bson:"status"`
	PaymentStatus     PaymentStatus `json:"payment_status" bson:"payment_status"`
	Notes             string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" bson:"updated_at"`
}

// Fees returns the order's current fee settings.
func (o *LaundryOrder) Fees() Fees {
	return Fees{UrgentFee: o.UrgentFee, ServiceCharge: o.ServiceCharge}
}

// ApplyQuote copies a quote's figures onto the order.
func (o *LaundryOrder) ApplyQuote(q Quote) {
	o.Lines = q.Lines
	o.TotalQuantity = q.TotalQuantity
	o.Subtotal = q.Subtotal
	o.Discount = q.Discount
	o.UrgentFee = q.UrgentFee
	o.ServiceCharge = q.ServiceCharge
	o.Total = q.Total
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
