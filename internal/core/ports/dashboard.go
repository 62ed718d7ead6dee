package ports

import "context"

// DashboardSummary is the owner's at-a-glance view of the hotel.
type DashboardSummary struct {
	Guests               int64              `json:"guests"`
	Staff                int64              `json:"staff"`
	RoomsByStatus        map[string]int64   `json:"rooms_by_status"`
	BookingsByStatus     map[string]int64   `json:"bookings_by_status"`
	PendingLaundryOrders int64              `json:"pending_laundry_orders"`
	UpcomingReservations int64              `json:"upcoming_reservations"`
	OpenServiceRequests  int64              `json:"open_service_requests"`
	LowStockItems        int64              `json:"low_stock_items"`
	Revenue              float64            `json:"revenue"`
	RevenueByPurpose     map[string]float64 `json:"revenue_by_purpose"`
}

// DashboardRepository runs the read-only aggregations behind the summary.
type DashboardRepository interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

// DashboardService exposes the summary.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}
