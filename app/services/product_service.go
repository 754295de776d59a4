package services

import (
	"context"
	"time"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/cache"
)

// ProductStore is the slice of the product store the listing service needs.
type ProductStore interface {
	ByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	BySeller(ctx context.Context, email string) ([]models.Product, error)
	Advertised(ctx context.Context) ([]models.Product, error)
	Reported(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) (string, error)
	SetField(ctx context.Context, id string, field string, value interface{}) error
	Delete(ctx context.Context, id string) error
}

const (
	cacheKeyAdvertised = "products:advertised"
	cacheTTLAdvertised = 30 * time.Second
)

// ProductService manages second-hand listings.
type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

// Add creates a listing. Fresh listings are always available and carry
// their posting time.
func (s *ProductService) Add(ctx context.Context, p *models.Product) (string, error) {
	if p.PostedAt.IsZero() {
		p.PostedAt = time.Now().UTC()
	}
	p.SalesStatus = models.StatusAvailable
	p.Reported = false
	return s.store.Insert(ctx, p)
}

// ByCategory returns available products in a category.
func (s *ProductService) ByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	return s.store.ByCategory(ctx, categoryID)
}

// BySeller returns a seller's own listings.
func (s *ProductService) BySeller(ctx context.Context, email string) ([]models.Product, error) {
	return s.store.BySeller(ctx, email)
}

// Advertised returns the landing-page listings. The result is cached
// briefly; every write that changes what the landing page shows drops the
// cached copy.
func (s *ProductService) Advertised(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if cache.Get(ctx, cacheKeyAdvertised, &products) {
		return products, nil
	}

	products, err := s.store.Advertised(ctx)
	if err != nil {
		return nil, err
	}
	cache.Set(ctx, cacheKeyAdvertised, products, cacheTTLAdvertised) //nolint:errcheck
	return products, nil
}

// Reported returns buyer-flagged listings, for the admin dashboard.
func (s *ProductService) Reported(ctx context.Context) ([]models.Product, error) {
	return s.store.Reported(ctx)
}

// Advertise promotes a listing onto the landing page.
func (s *ProductService) Advertise(ctx context.Context, id string) error {
	if err := s.store.SetField(ctx, id, "isAdvertise", true); err != nil {
		return err
	}
	cache.Forget(ctx, cacheKeyAdvertised)
	return nil
}

// Report flags a listing for admin review.
func (s *ProductService) Report(ctx context.Context, id string) error {
	return s.store.SetField(ctx, id, "reported", true)
}

// SetSalesStatus moves a listing between available and sold.
func (s *ProductService) SetSalesStatus(ctx context.Context, id string, status models.SalesStatus) error {
	if err := s.store.SetField(ctx, id, "salesStatus", status); err != nil {
		return err
	}
	cache.Forget(ctx, cacheKeyAdvertised)
	return nil
}

// Delete removes a listing.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	cache.Forget(ctx, cacheKeyAdvertised)
	return nil
}
