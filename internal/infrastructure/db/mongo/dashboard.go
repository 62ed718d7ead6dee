package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// DashboardRepository runs read-only counts across every collection.
type DashboardRepository struct {
	db  *mongo.Database
	now func() time.Time
}

func NewDashboardRepository(db *mongo.Database) *DashboardRepository {
	return &DashboardRepository{db: db, now: time.Now}
}

func (r *DashboardRepository) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*queryTimeout)
	defer cancel()

	s := &ports.DashboardSummary{}
	var err error

	if s.Guests, err = r.count(ctx, collectionGuests, bson.M{"is_deleted": bson.M{"$ne": true}}); err != nil {
		return nil, err
	}
	if s.Staff, err = r.count(ctx, collectionStaff, bson.M{"is_deleted": bson.M{"$ne": true}}); err != nil {
		return nil, err
	}
	if s.RoomsByStatus, err = r.countBy(ctx, collectionRooms, "$status"); err != nil {
		return nil, err
	}
	if s.BookingsByStatus, err = r.countBy(ctx, collectionBookings, "$status"); err != nil {
		return nil, err
	}
	if s.PendingLaundryOrders, err = r.count(ctx, collectionLaundryOrders, bson.M{
		"status": bson.M{"$in": bson.A{domain.LaundryPending, domain.LaundryInProgress}},
	}); err != nil {
		return nil, err
	}
	if s.UpcomingReservations, err = r.count(ctx, collectionReservations, bson.M{
		"active":     true,
		"event_date": bson.M{"$gte": domain.EventDay(r.now())},
	}); err != nil {
		return nil, err
	}
	if s.OpenServiceRequests, err = r.count(ctx, collectionServiceRequests, bson.M{
		"status": bson.M{"$in": bson.A{domain.RequestOpen, domain.RequestInProgress}},
	}); err != nil {
		return nil, err
	}
	if s.LowStockItems, err = r.count(ctx, collectionInventory, bson.M{"$expr": lowStockExpr}); err != nil {
		return nil, err
	}
	if s.RevenueByPurpose, s.Revenue, err = r.revenue(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *DashboardRepository) count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	n, err := r.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

type groupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *DashboardRepository) countBy(ctx context.Context, collection, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var rows []groupCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", collection, err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

type groupSum struct {
	Key   string  `bson:"_id"`
	Total float64 `bson:"total"`
}

func (r *DashboardRepository) revenue(ctx context.Context) (map[string]float64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "state", Value: domain.PaymentSuccess}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$purpose"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cursor, err := r.db.Collection(collectionPayments).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []groupSum
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, 0, fmt.Errorf("decode revenue: %w", err)
	}
	byPurpose := make(map[string]float64, len(rows))
	var total float64
	for _, row := range rows {
		byPurpose[row.Key] = row.Total
		total += row.Total
	}
	return byPurpose, total, nil
}
