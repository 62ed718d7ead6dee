package handler

import "github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"

type supplierRequest struct {
	Name        string   `json:"name"         validate:"required"`
	ContactName string   `json:"contact_name"`
	Email       string   `json:"email"        validate:"omitempty,email"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Categories  []string `json:"categories"`
}

func (r supplierRequest) toInput() ports.SupplierInput {
	return ports.SupplierInput{
		Name:        r.Name,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Categories:  r.Categories,
	}
}

type inventoryItemRequest struct {
	Name         string  `json:"name"          validate:"required"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"          validate:"required"`
	Quantity     int     `json:"quantity"      validate:"gte=0"`
	ReorderLevel int     `json:"reorder_level" validate:"gte=0"`
	UnitCost     float64 `json:"unit_cost"     validate:"gte=0"`
	SupplierID   string  `json:"supplier_id"`
}

func (r inventoryItemRequest) toInput() ports.InventoryItemInput {
	return ports.InventoryItemInput{
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		UnitCost:     r.UnitCost,
		SupplierID:   r.SupplierID,
	}
}

type inventoryQuery struct {
	PageQuery
	Category   string `query:"category"`
	SupplierID string `query:"supplier_id"`
}

type adjustStockRequest struct {
	Delta int    `json:"delta" validate:"ne=0"`
	Note  string `json:"note"`
}
