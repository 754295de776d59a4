package services

import (
	"context"
	"time"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/cache"
)

// CategoryStore is the read side of the category collection.
type CategoryStore interface {
	All(ctx context.Context) ([]models.Category, error)
}

const (
	cacheKeyCategories = "categories"
	cacheTTLCategories = 10 * time.Minute
)

// CategoryService serves the storefront category list. Categories change
// only when reseeded, so they cache aggressively.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// All returns every category.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if cache.Get(ctx, cacheKeyCategories, &categories) {
		return categories, nil
	}

	categories, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	cache.Set(ctx, cacheKeyCategories, categories, cacheTTLCategories) //nolint:errcheck
	return categories, nil
}
