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

type fakeUserStore struct {
	byEmail map[string]models.User
	next    int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]models.User{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) (string, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return "", repositories.ErrDuplicateKey
	}
	f.next++
	f.byEmail[u.Email] = *u
	return "usr" + strconv.Itoa(f.next), nil
}

func (f *fakeUserStore) UpsertRole(_ context.Context, email string, role models.Role) error {
	u, ok := f.byEmail[email]
	if !ok {
		u = models.User{Email: email}
	}
	u.Role = role
	f.byEmail[email] = u
	return nil
}

func (f *fakeUserStore) SetVerified(_ context.Context, email string, verified bool) error {
	u, ok := f.byEmail[email]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Verified = verified
	f.byEmail[email] = u
	return nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.byEmail {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	for email, u := range f.byEmail {
		if u.ID.Hex() == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeListings struct {
	verified []string
}

func (f *fakeListings) MarkSellerVerified(_ context.Context, email string) error {
	f.verified = append(f.verified, email)
	return nil
}

func seedUser(f *fakeUserStore, email string, role models.Role) {
	f.byEmail[email] = models.User{Name: "Someone", Email: email, Role: role}
}

func TestRolePredicates(t *testing.T) {
	store := newFakeUserStore()
	seedUser(store, "admin@x.com", models.RoleAdmin)
	seedUser(store, "seller@x.com", models.RoleSeller)
	seedUser(store, "buyer@x.com", models.RoleUser)
	svc := NewUserService(store, &fakeListings{})

	ctx := context.Background()

	isAdmin, err := svc.IsAdmin(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(ctx, "seller@x.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isSeller, err := svc.IsSeller(ctx, "seller@x.com")
	require.NoError(t, err)
	assert.True(t, isSeller)

	// No stored identity resolves to false, never an error.
	isAdmin, err = svc.IsAdmin(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isSeller, err = svc.IsSeller(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, isSeller)
}

func TestResolveRole(t *testing.T) {
	store := newFakeUserStore()
	seedUser(store, "admin@x.com", models.RoleAdmin)
	svc := NewUserService(store, &fakeListings{})

	role, ok := svc.ResolveRole(context.Background(), "admin@x.com")
	assert.True(t, ok)
	assert.Equal(t, string(models.RoleAdmin), role)

	_, ok = svc.ResolveRole(context.Background(), "ghost@x.com")
	assert.False(t, ok)
}

func TestRegisterDefaultsRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, &fakeListings{})

	res, err := svc.Register(context.Background(), &models.User{Name: "N", Email: "n@x.com"})
	require.NoError(t, err)

	assert.True(t, res.Acknowledged)
	assert.Equal(t, models.RoleUser, store.byEmail["n@x.com"].Role)
}

func TestRegisterDuplicateNotAcknowledged(t *testing.T) {
	store := newFakeUserStore()
	seedUser(store, "n@x.com", models.RoleUser)
	svc := NewUserService(store, &fakeListings{})

	res, err := svc.Register(context.Background(), &models.User{Name: "N", Email: "n@x.com"})
	require.NoError(t, err)

	assert.False(t, res.Acknowledged)
	assert.Empty(t, res.InsertedID)
}

func TestMakeSellerCreatesWhenAbsent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, &fakeListings{})

	require.NoError(t, svc.MakeSeller(context.Background(), "new@x.com"))
	assert.Equal(t, models.RoleSeller, store.byEmail["new@x.com"].Role)

	// Idempotent on repeat.
	require.NoError(t, svc.MakeSeller(context.Background(), "new@x.com"))
	assert.Equal(t, models.RoleSeller, store.byEmail["new@x.com"].Role)
}

func TestVerifySellerStampsListings(t *testing.T) {
	store := newFakeUserStore()
	seedUser(store, "seller@x.com", models.RoleSeller)
	listings := &fakeListings{}
	svc := NewUserService(store, listings)

	require.NoError(t, svc.VerifySeller(context.Background(), "seller@x.com"))

	assert.True(t, store.byEmail["seller@x.com"].Verified)
	assert.Equal(t, []string{"seller@x.com"}, listings.verified)
}

func TestVerifySellerUnknownIsNotFound(t *testing.T) {
	store := newFakeUserStore()
	listings := &fakeListings{}
	svc := NewUserService(store, listings)

	err := svc.VerifySeller(context.Background(), "ghost@x.com")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, listings.verified)
}
