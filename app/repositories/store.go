// Package repositories is the document-store layer: one Store holding the
// Mongo client plus one repository per collection. Repositories return
// sentinel errors (ErrNotFound, ErrDuplicateKey) so services and handlers
// can map failures to explicit responses instead of swallowing them.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hometech/server/config"
)

var (
	// ErrNotFound is returned when a filter matches no document.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Collection names in homeTechDB.
const (
	CollCategories = "productCategories"
	CollProducts   = "products"
	CollUsers      = "users"
	CollBookings   = "bookings"
	CollPayments   = "payments"
	CollFailedJobs = "failedJobs"
)

// opTimeout bounds every store round trip so a hung store cannot block a
// request task indefinitely.
const opTimeout = 10 * time.Second

// Store owns the Mongo client and database handles. Construct once at
// startup and pass to each repository; there is no package-level state.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the Mongo connection and verifies it with a ping.
// The caller decides what to do with a failure; this function never
// degrades to a half-connected state.
func Connect(ctx context.Context) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(config.MongoDatabase()),
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Collection returns a raw collection handle.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the indexes the policy layer depends on. The unique
// compound index on bookings is what makes booking admission safe under
// concurrency: two racing inserts for the same (userEmail, productName)
// cannot both commit.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.Collection(CollBookings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userEmail", Value: 1},
			{Key: "productName", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_user_product"),
	})
	if err != nil {
		return fmt.Errorf("store: bookings index: %w", err)
	}

	_, err = s.Collection(CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("store: users index: %w", err)
	}

	return nil
}

// opCtx derives a bounded context for a single store operation.
func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}
