package handler

import (
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type laundryItemRequest struct {
	Name             string  `json:"name"                validate:"required"`
	Category         string  `json:"category"`
	BasePrice        float64 `json:"base_price"          validate:"gte=0"`
	WashPrice        float64 `json:"wash_price"          validate:"gte=0"`
	IronPrice        float64 `json:"iron_price"          validate:"gte=0"`
	WashAndIronPrice float64 `json:"wash_and_iron_price" validate:"gte=0"`
	ImageURL         string  `json:"image_url"           validate:"omitempty,url"`
}

func (r laundryItemRequest) toInput() ports.LaundryItemInput {
	return ports.LaundryItemInput{
		Name:             r.Name,
		Category:         r.Category,
		BasePrice:        r.BasePrice,
		WashPrice:        r.WashPrice,
		IronPrice:        r.IronPrice,
		WashAndIronPrice: r.WashAndIronPrice,
		ImageURL:         r.ImageURL,
	}
}

type catalogQuery struct {
	PageQuery
	Category string `query:"category"`
}

// laundryLineRequest is checked by the pricing engine rather than the
// validator so malformed lines surface as pricing errors.
type laundryLineRequest struct {
	ItemID      string `json:"item_id"`
	ServiceType string `json:"service_type"`
	Quantity    int    `json:"quantity"`
}

func toLineRequests(lines []laundryLineRequest) []domain.LineRequest {
	out := make([]domain.LineRequest, len(lines))
	for i, l := range lines {
		out[i] = domain.LineRequest{ItemID: l.ItemID, ServiceType: l.ServiceType, Quantity: l.Quantity}
	}
	return out
}

type createLaundryOrderRequest struct {
	Items             []laundryLineRequest `json:"items"`
	UrgentFee         float64              `json:"urgent_fee"`
	ServiceCharge     float64              `json:"service_charge"`
	DiscountRequested bool                 `json:"discount_requested"`
	RoomNumber        string               `json:"room_number"`
	Notes             string               `json:"notes"`
}

// updateLaundryOrderRequest replaces the lines when items is present and
// otherwise requotes the stored lines with the new fees.
type updateLaundryOrderRequest struct {
	Items             *[]laundryLineRequest `json:"items"`
	UrgentFee         *float64              `json:"urgent_fee"`
	ServiceCharge     *float64              `json:"service_charge"`
	DiscountRequested *bool                 `json:"discount_requested"`
	Notes             *string               `json:"notes"`
}

func (r updateLaundryOrderRequest) toInput() ports.UpdateLaundryOrderInput {
	in := ports.UpdateLaundryOrderInput{
		UrgentFee:         r.UrgentFee,
		ServiceCharge:     r.ServiceCharge,
		DiscountRequested: r.DiscountRequested,
		Notes:             r.Notes,
	}
	if r.Items != nil {
		lines := toLineRequests(*r.Items)
		in.Lines = &lines
	}
	return in
}

type laundryOrderResponse struct {
	*domain.LaundryOrder
	DroppedItems []string `json:"dropped_items"`
}

func toLaundryOrderResponse(r *ports.LaundryOrderResult) laundryOrderResponse {
	dropped := r.Dropped
	if dropped == nil {
		dropped = []string{}
	}
	return laundryOrderResponse{LaundryOrder: r.Order, DroppedItems: dropped}
}

// GuestOrderQuery narrows an order listing to one guest.
type GuestOrderQuery struct {
	StatusQuery
	GuestID string `query:"guest_id"`
}
