package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dish is a menu entry with a count of portions in stock.
type Dish struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// DishOrderStatus is the lifecycle state of a dish order.
type DishOrderStatus string

const (
	DishOrderPending   DishOrderStatus = "Pending"
	DishOrderPreparing DishOrderStatus = "Preparing"
	DishOrderServed    DishOrderStatus = "Served"
	DishOrderCancelled DishOrderStatus = "Cancelled"
)

var dishOrderTransitions = map[DishOrderStatus][]DishOrderStatus{
	DishOrderPending:   {DishOrderPreparing, DishOrderCancelled},
	DishOrderPreparing: {DishOrderServed, DishOrderCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s DishOrderStatus) CanTransitionTo(next DishOrderStatus) bool {
	return canTransition(dishOrderTransitions, s, next)
}

// DishOrderLine snapshots the dish price at order time.
type DishOrderLine struct {
	DishID    string  `json:"dish_id" bson:"dish_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	LineTotal float64 `json:"line_total" bson:"line_total"`
}

// DishOrder is a guest's food order.
type DishOrder struct {
	ID            string          `json:"id" bson:"_id,omitempty"`
	Reference     string          `json:"reference" bson:"reference"`
	GuestID       string          `json:"guest_id" bson:"guest_id"`
	GuestName     string          `json:"guest_name" bson:"guest_name"`
	GuestEmail    string          `json:"guest_email" bson:"guest_email"`
	RoomNumber    string          `json:"room_number,omitempty" bson:"room_number,omitempty"`
	Lines         []DishOrderLine `json:"lines" bson:"lines"`
	Total         float64         `json:"total" bson:"total"`
	Notes         string          `json:"notes,omitempty" bson:"notes,omitempty"`
	Status        DishOrderStatus `json:"status" bson:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status" bson:"payment_status"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" bson:"updated_at"`
}

// PriceDishLines fills LineTotal on every line and returns the order total.
func PriceDishLines(lines []DishOrderLine) float64 {
	total := decimal.Zero
	for i := range lines {
		lt := decimal.NewFromFloat(lines[i].UnitPrice).Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		lines[i].LineTotal = lt.Round(2).InexactFloat64()
		total = total.Add(lt)
	}
	return total.Round(2).InexactFloat64()
}
