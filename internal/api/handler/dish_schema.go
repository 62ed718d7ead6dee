package handler

import "github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"

type dishRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}

func (r dishRequest) toInput() ports.DishInput {
	return ports.DishInput{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

type dishLineRequest struct {
	DishID   string `json:"dish_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type dishOrderRequest struct {
	Items      []dishLineRequest `json:"items"       validate:"required,min=1,dive"`
	RoomNumber string            `json:"room_number"`
	Notes      string            `json:"notes"`
}

func (r dishOrderRequest) toInput() ports.CreateDishOrderInput {
	lines := make([]ports.DishOrderLineInput, len(r.Items))
	for i, it := range r.Items {
		lines[i] = ports.DishOrderLineInput{DishID: it.DishID, Quantity: it.Quantity}
	}
	return ports.CreateDishOrderInput{Lines: lines, RoomNumber: r.RoomNumber, Notes: r.Notes}
}
