package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
)

type fakeProductStore struct {
	byID map[string]models.Product
	next int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{byID: map[string]models.Product{}}
}

func (f *fakeProductStore) Insert(_ context.Context, p *models.Product) (string, error) {
	f.next++
	id := "prd" + strconv.Itoa(f.next)
	f.byID[id] = *p
	return id, nil
}

func (f *fakeProductStore) ByCategory(_ context.Context, categoryID int) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.byID {
		if p.CategoryID == categoryID && p.SalesStatus == models.StatusAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) BySeller(_ context.Context, email string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.byID {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Advertised(_ context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.byID {
		if p.IsAdvertise && p.SalesStatus == models.StatusAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Reported(_ context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.byID {
		if p.Reported {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) SetField(_ context.Context, id, field string, value interface{}) error {
	p, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	switch field {
	case "isAdvertise":
		p.IsAdvertise = value.(bool)
	case "reported":
		p.Reported = value.(bool)
	case "salesStatus":
		p.SalesStatus = value.(models.SalesStatus)
	}
	f.byID[id] = p
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestAddListingDefaults(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store)

	id, err := svc.Add(context.Background(), &models.Product{
		CategoryID:  1,
		Name:        "Washer",
		Email:       "seller@x.com",
		ResalePrice: 300,
	})
	require.NoError(t, err)

	p := store.byID[id]
	assert.Equal(t, models.StatusAvailable, p.SalesStatus)
	assert.False(t, p.PostedAt.IsZero())
	assert.False(t, p.Reported)
}

func TestAdvertiseAndSellLifecycle(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store)
	ctx := context.Background()

	id, err := svc.Add(ctx, &models.Product{CategoryID: 1, Name: "Washer", Email: "s@x.com"})
	require.NoError(t, err)

	ads, err := svc.Advertised(ctx)
	require.NoError(t, err)
	assert.Empty(t, ads)

	require.NoError(t, svc.Advertise(ctx, id))

	ads, err = svc.Advertised(ctx)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "Washer", ads[0].Name)

	// A sold product drops off the landing page and category listings.
	require.NoError(t, svc.SetSalesStatus(ctx, id, models.StatusSold))

	ads, err = svc.Advertised(ctx)
	require.NoError(t, err)
	assert.Empty(t, ads)

	inCategory, err := svc.ByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, inCategory)
}

func TestMutationsOnMissingListing(t *testing.T) {
	svc := NewProductService(newFakeProductStore())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Advertise(ctx, "missing"), repositories.ErrNotFound)
	assert.ErrorIs(t, svc.Report(ctx, "missing"), repositories.ErrNotFound)
	assert.ErrorIs(t, svc.SetSalesStatus(ctx, "missing", models.StatusSold), repositories.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), repositories.ErrNotFound)
}
