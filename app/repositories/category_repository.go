package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/metrics"
)

// CategoryRepository handles the productCategories collection.
type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(s *Store) *CategoryRepository {
	return &CategoryRepository{coll: s.Collection(CollCategories)}
}

// All returns every category.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollCategories, "find", time.Now())

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("categories: find: %w", err)
	}

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	return categories, nil
}

// Insert adds a category. Used by the seeder.
func (r *CategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollCategories, "insert", time.Now())

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("categories: insert: %w", err)
	}
	return nil
}
