package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus is the availability of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomBooked      RoomStatus = "Booked"
	RoomMaintenance RoomStatus = "Maintenance"
)

// Room is a bookable hotel room.
type Room struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Number      string     `json:"number" bson:"number"`
	Type        string     `json:"type" bson:"type"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64    `json:"price" bson:"price"`
	Capacity    int        `json:"capacity" bson:"capacity"`
	Amenities   []string   `json:"amenities" bson:"amenities"`
	Images      []string   `json:"images" bson:"images"`
	Status      RoomStatus `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// BookingStatus is the lifecycle state of a room booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "Checked In"
	BookingCheckedOut BookingStatus = "Checked Out"
	BookingCancelled  BookingStatus = "Cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCheckedOut},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return canTransition(bookingTransitions, s, next)
}

// ReleasesRoom reports whether entering s makes the room available again.
func (s BookingStatus) ReleasesRoom() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// RoomBooking is a guest's reservation of a room for a date range.
type RoomBooking struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	Reference      string        `json:"reference" bson:"reference"`
	GuestID        string        `json:"guest_id" bson:"guest_id"`
	GuestName      string        `json:"guest_name" bson:"guest_name"`
	GuestEmail     string        `json:"guest_email" bson:"guest_email"`
	RoomID         string        `json:"room_id" bson:"room_id"`
	RoomNumber     string        `json:"room_number" bson:"room_number"`
	RoomType       string        `json:"room_type" bson:"room_type"`
	CheckIn        time.Time     `json:"check_in" bson:"check_in"`
	CheckOut       time.Time     `json:"check_out" bson:"check_out"`
	Nights         int           `json:"nights" bson:"nights"`
	Occupants      int           `json:"occupants" bson:"occupants"`
	NightlyRate    float64       `json:"nightly_rate" bson:"nightly_rate"`
	Amount         float64       `json:"amount" bson:"amount"`
	SpecialRequest string        `json:"special_request,omitempty" bson:"special_request,omitempty"`
	Status         BookingStatus `json:"status" bson:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status" bson:"payment_status"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

// Nights counts calendar nights between two dates, ignoring time of day.
func Nights(checkIn, checkOut time.Time) int {
	in := truncateDay(checkIn)
	out := truncateDay(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// StayAmount is rate × nights rounded to cents.
func StayAmount(rate float64, nights int) float64 {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(int64(nights))).Round(2).InexactFloat64()
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
