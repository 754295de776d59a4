package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/metrics"
)

// UserRepository handles the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{coll: s.Collection(CollUsers)}
}

// FindByEmail looks up a stored identity. Absence is ErrNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollUsers, "find", time.Now())

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: find %q: %w", email, err)
	}
	return &user, nil
}

// Insert persists a new identity. A duplicate email is ErrDuplicateKey.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (string, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollUsers, "insert", time.Now())

	res, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateKey
	}
	if err != nil {
		return "", fmt.Errorf("users: insert: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// UpsertRole sets the role for an identity keyed by email, creating the
// identity when absent. This is the one intended upsert in the system:
// role changes are idempotent by email.
func (r *UserRepository) UpsertRole(ctx context.Context, email string, role models.Role) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollUsers, "update", time.Now())

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("users: upsert %q: %w", email, err)
	}
	return nil
}

// SetVerified marks a seller verified. Update-only: a missing identity is
// ErrNotFound, never a silently created document.
func (r *UserRepository) SetVerified(ctx context.Context, email string, verified bool) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollUsers, "update", time.Now())

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"verified": verified}},
	)
	if err != nil {
		return fmt.Errorf("users: verify %q: %w", email, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByRole returns all identities with the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollUsers, "find", time.Now())

	cur, err := r.coll.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, fmt.Errorf("users: list role %q: %w", role, err)
	}

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return users, nil
}

// Delete removes an identity by id. A missing identity is ErrNotFound.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollUsers, "delete", time.Now())

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("users: delete %q: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
