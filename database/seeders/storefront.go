package seeders

import (
	"context"
	"errors"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/config"
)

func init() {
	Register("categories", SeedCategories)
	Register("admin", SeedAdmin)
}

// SeedCategories inserts the storefront categories when the collection is
// empty. Re-running is a no-op.
func SeedCategories(ctx context.Context, store *repositories.Store) error {
	repo := repositories.NewCategoryRepository(store)

	existing, err := repo.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, c := range []models.Category{
		{CategoryID: 1, CategoryName: "Washing Machine"},
		{CategoryID: 2, CategoryName: "Refrigerator"},
		{CategoryID: 3, CategoryName: "Microwave Oven"},
	} {
		c := c
		if err := repo.Insert(ctx, &c); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the dashboard admin from ADMIN_EMAIL, if configured.
func SeedAdmin(ctx context.Context, store *repositories.Store) error {
	email := config.Get("ADMIN_EMAIL", "")
	if email == "" {
		return nil
	}

	repo := repositories.NewUserRepository(store)
	_, err := repo.Insert(ctx, &models.User{
		Name:  config.Get("ADMIN_NAME", "Admin"),
		Email: email,
		Role:  models.RoleAdmin,
	})
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return nil
	}
	return err
}
