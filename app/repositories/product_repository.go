package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/metrics"
)

// ProductRepository handles the products collection.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{coll: s.Collection(CollProducts)}
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollProducts, "find", time.Now())

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("products: find: %w", err)
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

// ByCategory returns available products in a category.
func (r *ProductRepository) ByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	return r.find(ctx, bson.M{
		"categoryId":  categoryID,
		"salesStatus": models.StatusAvailable,
	})
}

// BySeller returns all products owned by the seller email.
func (r *ProductRepository) BySeller(ctx context.Context, email string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"email": email})
}

// Advertised returns advertised products that are still available.
func (r *ProductRepository) Advertised(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{
		"isAdvertise": true,
		"salesStatus": models.StatusAvailable,
	})
}

// Reported returns products flagged by buyers.
func (r *ProductRepository) Reported(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"reported": true})
}

// Insert adds a listing and returns its generated id.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) (string, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollProducts, "insert", time.Now())

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("products: insert: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// SetField applies a single field-set update by product id. Update-only:
// a filter that matches nothing is ErrNotFound, never an implicit insert.
func (r *ProductRepository) SetField(ctx context.Context, id string, field string, value interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollProducts, "update", time.Now())

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("products: set %s on %q: %w", field, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSellerVerified flags every product of a seller as verified.
// Matching nothing is fine here: a fresh seller has no listings yet.
func (r *ProductRepository) MarkSellerVerified(ctx context.Context, email string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollProducts, "update", time.Now())

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"sellerVerified": true}},
	)
	if err != nil {
		return fmt.Errorf("products: verify seller %q: %w", email, err)
	}
	return nil
}

// Delete removes a listing by id.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollProducts, "delete", time.Now())

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("products: delete %q: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
