package domain

import "time"

// Supplier provides inventory items.
type Supplier struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	ContactName string    `json:"contact_name,omitempty" bson:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Categories  []string  `json:"categories" bson:"categories"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// InventoryItem is a stocked consumable.
type InventoryItem struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Category     string    `json:"category,omitempty" bson:"category,omitempty"`
	Unit         string    `json:"unit" bson:"unit"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	ReorderLevel int       `json:"reorder_level" bson:"reorder_level"`
	UnitCost     float64   `json:"unit_cost" bson:"unit_cost"`
	SupplierID   string    `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// LowStock reports whether the item is at or below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// StockMovement is an audit record of a stock adjustment.
type StockMovement struct {
	ItemID    string    `json:"item_id" bson:"item_id"`
	Delta     int       `json:"delta" bson:"delta"`
	Balance   int       `json:"balance" bson:"balance"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
