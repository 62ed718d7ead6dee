package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// Documents use the hex form of a fresh ObjectID as their string _id, so the
// domain types decode without a separate persistence model.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M, notFound error) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return &out, nil
}

// findPage runs a paginated find and a count on the same filter. Results are
// newest first unless sort says otherwise.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, p ports.Page, sort bson.D) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if sort == nil {
		sort = bson.D{{Key: "created_at", Value: -1}}
	}
	p = p.Normalize()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer cursor.Close(ctx)

	items := make([]*T, 0, p.Limit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return items, total, nil
}

// replaceByID swaps the whole document, failing with notFound when id is gone.
func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("replace %s: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

func insert(ctx context.Context, col *mongo.Collection, doc any, duplicate error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicate
		}
		return fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	return nil
}

// guardedUpdate applies update only when filter (which must include _id)
// still matches. A miss is reported as notFound when the document is gone
// and as conflict otherwise.
func guardedUpdate(ctx context.Context, col *mongo.Collection, id string, filter, update bson.M, notFound, conflict error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", col.Name(), err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return missReason(ctx, col, id, notFound, conflict)
}

func missReason(ctx context.Context, col *mongo.Collection, id string, notFound, conflict error) error {
	n, err := col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count %s: %w", col.Name(), err)
	}
	if n == 0 {
		return notFound
	}
	return conflict
}

// transition moves a document's status field from one value to another.
func transition(ctx context.Context, col *mongo.Collection, id, from, to string, extra bson.M, notFound error) error {
	set := bson.M{"status": to, "updated_at": time.Now().UTC()}
	for k, v := range extra {
		set[k] = v
	}
	return guardedUpdate(ctx, col, id,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		notFound, domain.ErrInvalidTransition)
}

func markPaid(ctx context.Context, col *mongo.Collection, id string, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"payment_status": domain.Paid,
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("mark %s paid: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// payableDoc is the projection read by every FindPayable.
type payableDoc struct {
	ID            string               `bson:"_id"`
	GuestID       string               `bson:"guest_id"`
	Status        string               `bson:"status"`
	PaymentStatus domain.PaymentStatus `bson:"payment_status"`
	Amount        float64              `bson:"amount"`
	Total         float64              `bson:"total"`
}

func findPayable(ctx context.Context, col *mongo.Collection, id string, cancelled string, notFound error) (*ports.Payable, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc payableDoc
	opts := options.FindOne().SetProjection(bson.M{
		"guest_id": 1, "status": 1, "payment_status": 1, "amount": 1, "total": 1,
	})
	if err := col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find payable %s: %w", col.Name(), err)
	}

	amount := doc.Amount
	if amount == 0 {
		amount = doc.Total
	}
	return &ports.Payable{
		ID:            doc.ID,
		GuestID:       doc.GuestID,
		Amount:        amount,
		PaymentStatus: doc.PaymentStatus,
		Closed:        doc.Status == cancelled,
	}, nil
}

// containsFold builds a case-insensitive substring regex.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// dateRange bounds a time field of filter; zero ends are open.
func dateRange(filter bson.M, field string, from, to time.Time) {
	if from.IsZero() && to.IsZero() {
		return
	}
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from
	}
	if !to.IsZero() {
		r["$lte"] = to
	}
	filter[field] = r
}
