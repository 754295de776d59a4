package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/metrics"
)

// BookingRepository handles the bookings collection. The collection carries
// a unique compound index on (userEmail, productName); Insert surfaces a
// violation as ErrDuplicateKey, which is what makes the admission policy
// safe against two concurrent requests for the same pair.
type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(s *Store) *BookingRepository {
	return &BookingRepository{coll: s.Collection(CollBookings)}
}

// Exists reports whether a booking already exists for the pair.
func (r *BookingRepository) Exists(ctx context.Context, userEmail, productName string) (bool, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollBookings, "find", time.Now())

	err := r.coll.FindOne(ctx, bson.M{
		"userEmail":   userEmail,
		"productName": productName,
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bookings: exists: %w", err)
	}
	return true, nil
}

// Insert persists a booking and returns its generated id.
// A concurrent duplicate for the same (userEmail, productName) pair loses
// the unique-index race and gets ErrDuplicateKey.
func (r *BookingRepository) Insert(ctx context.Context, b *models.Booking) (string, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollBookings, "insert", time.Now())

	res, err := r.coll.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateKey
	}
	if err != nil {
		return "", fmt.Errorf("bookings: insert: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// ByID returns one booking. Absence (or a malformed id) is ErrNotFound.
func (r *BookingRepository) ByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollBookings, "find", time.Now())

	var booking models.Booking
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("bookings: find %q: %w", id, err)
	}
	return &booking, nil
}

// ByUserEmail returns all bookings for a buyer, newest first.
func (r *BookingRepository) ByUserEmail(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollBookings, "find", time.Now())

	cur, err := r.coll.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, fmt.Errorf("bookings: by user %q: %w", email, err)
	}

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("bookings: decode: %w", err)
	}
	return bookings, nil
}

// SetPaid marks a booking paid with its transaction id. Update-only: a
// bookingId that resolves to nothing is ErrNotFound rather than a silent
// no-op or an upserted stub.
func (r *BookingRepository) SetPaid(ctx context.Context, id, transactionID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollBookings, "update", time.Now())

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}},
	)
	if err != nil {
		return fmt.Errorf("bookings: set paid %q: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
