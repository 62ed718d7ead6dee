package handler

import "github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"

type hallRequest struct {
	Name        string   `json:"name"          validate:"required"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"      validate:"gte=1"`
	PricePerDay float64  `json:"price_per_day" validate:"gt=0"`
	Amenities   []string `json:"amenities"`
}

func (r hallRequest) toInput() ports.HallInput {
	return ports.HallInput{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		PricePerDay: r.PricePerDay,
		Amenities:   r.Amenities,
	}
}

type reservationRequest struct {
	HallID    string `json:"hall_id"    validate:"required"`
	EventType string `json:"event_type" validate:"required"`
	EventDate string `json:"event_date" validate:"required,datetime=2006-01-02"`
	Attendees int    `json:"attendees"  validate:"gte=1"`
	Notes     string `json:"notes"`
}

func (r reservationRequest) toInput() ports.CreateReservationInput {
	return ports.CreateReservationInput{
		HallID:    r.HallID,
		EventType: r.EventType,
		EventDate: parseDate(r.EventDate),
		Attendees: r.Attendees,
		Notes:     r.Notes,
	}
}

type reservationQuery struct {
	StatusQuery
	GuestID string `query:"guest_id"`
	HallID  string `query:"hall_id"`
	From    string `query:"from"     validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to"       validate:"omitempty,datetime=2006-01-02"`
}

func (q reservationQuery) toFilter() ports.ReservationFilter {
	f := ports.ReservationFilter{GuestID: q.GuestID, HallID: q.HallID, Status: q.Status, Page: q.toPage()}
	if q.From != "" {
		f.From = parseDate(q.From)
	}
	if q.To != "" {
		f.To = parseDate(q.To)
	}
	return f
}
