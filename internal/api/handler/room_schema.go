package handler

import "github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"

type roomRequest struct {
	Number      string   `json:"number"      validate:"required"`
	Type        string   `json:"type"        validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"gt=0"`
	Capacity    int      `json:"capacity"    validate:"gte=1"`
	Amenities   []string `json:"amenities"`
	Status      string   `json:"status"      validate:"omitempty,oneof=Available Booked Maintenance"`
}

func (r roomRequest) toInput() ports.RoomInput {
	return ports.RoomInput{
		Number:      r.Number,
		Type:        r.Type,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Amenities:   r.Amenities,
		Status:      r.Status,
	}
}

type roomQuery struct {
	PageQuery
	Status string `query:"status"`
	Type   string `query:"type"`
}

type createBookingRequest struct {
	RoomID         string `json:"room_id"   validate:"required"`
	CheckIn        string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut       string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Occupants      int    `json:"occupants" validate:"gte=1"`
	SpecialRequest string `json:"special_request"`
}

func (r createBookingRequest) toInput() ports.CreateBookingInput {
	return ports.CreateBookingInput{
		RoomID:         r.RoomID,
		CheckIn:        parseDate(r.CheckIn),
		CheckOut:       parseDate(r.CheckOut),
		Occupants:      r.Occupants,
		SpecialRequest: r.SpecialRequest,
	}
}

// StatusQuery is shared by order and reservation listings.
type StatusQuery struct {
	PageQuery
	Status string `query:"status"`
}

type bookingQuery struct {
	StatusQuery
	GuestID string `query:"guest_id"`
	RoomID  string `query:"room_id"`
}

// statusRequest is the body of every PATCH .../status route.
type statusRequest struct {
	Status string `json:"status" validate:"required"`
}
