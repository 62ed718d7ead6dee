package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func keys(fields ...string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		d = append(d, bson.E{Key: f, Value: 1})
	}
	return d
}

func unique(fields ...string) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys(fields...), Options: options.Index().SetUnique(true)}
}

func plain(fields ...string) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys(fields...)}
}

// EnsureIndexes creates the indexes the repositories depend on. The unique
// ones carry business rules: one account per email, one room per number, one
// payment per reference and one active reservation per hall and day.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 6*queryTimeout)
	defer cancel()

	models := map[string][]mongo.IndexModel{
		collectionGuests: {unique("email")},
		collectionStaff:  {unique("email"), plain("role")},
		collectionRooms:  {unique("number"), plain("status", "type")},
		collectionBookings: {
			plain("guest_id", "created_at"),
			plain("room_id", "status"),
			unique("reference"),
		},
		collectionLaundryOrders: {plain("guest_id", "created_at"), plain("status"), unique("reference")},
		collectionReservations: {
			{
				Keys: keys("hall_id", "event_date"),
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"active": true}),
			},
			plain("guest_id", "created_at"),
			unique("reference"),
		},
		collectionDishes:          {plain("category")},
		collectionDishOrders:      {plain("guest_id", "created_at"), plain("status"), unique("reference")},
		collectionInventory:       {plain("supplier_id"), plain("category")},
		collectionStockMovements:  {plain("item_id", "created_at")},
		collectionServiceRequests: {plain("guest_id", "created_at"), plain("status")},
		collectionPayments:        {unique("reference"), plain("guest_id", "created_at"), plain("state", "purpose")},
		collectionPaymentEvents:   {plain("reference", "received_at")},
	}

	for name, idx := range models {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
