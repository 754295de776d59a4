package services

import (
	"context"
	"errors"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/pkg/logger"
)

// UserStore is the slice of the user store the identity service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (string, error)
	UpsertRole(ctx context.Context, email string, role models.Role) error
	SetVerified(ctx context.Context, email string, verified bool) error
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}

// SellerListings is the slice of the product store touched when a seller's
// verification state changes.
type SellerListings interface {
	MarkSellerVerified(ctx context.Context, email string) error
}

// UserService manages stored identities and their roles.
type UserService struct {
	users    UserStore
	listings SellerListings
}

func NewUserService(users UserStore, listings SellerListings) *UserService {
	return &UserService{users: users, listings: listings}
}

// Register stores a new identity. A duplicate email is not an error; the
// storefront re-posts the signed-in user on every social login, so the
// result just reports acknowledged=false.
func (s *UserService) Register(ctx context.Context, u *models.User) (*models.AdmissionResult, error) {
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	id, err := s.users.Insert(ctx, u)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return &models.AdmissionResult{Acknowledged: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.AdmissionResult{Acknowledged: true, InsertedID: id}, nil
}

// ByEmail returns a stored identity. Absence is repositories.ErrNotFound.
func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// IsAdmin reports whether email belongs to a stored admin. An email with no
// stored identity is simply not an admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, models.RoleAdmin)
}

// IsSeller reports whether email belongs to a stored seller.
func (s *UserService) IsSeller(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, models.RoleSeller)
}

func (s *UserService) hasRole(ctx context.Context, email string, role models.Role) (bool, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.Role == role, nil
}

// ResolveRole adapts the service to the role middleware. Store failures
// resolve to no role; the request is then refused rather than let through.
func (s *UserService) ResolveRole(ctx context.Context, email string) (string, bool) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Error("resolve role", "email", email, "error", err)
		}
		return "", false
	}
	return string(u.Role), true
}

// MakeSeller promotes an identity to seller by email, creating it when
// absent. Idempotent.
func (s *UserService) MakeSeller(ctx context.Context, email string) error {
	return s.users.UpsertRole(ctx, email, models.RoleSeller)
}

// VerifySeller marks the seller verified and stamps the blue tick onto
// every listing they own.
func (s *UserService) VerifySeller(ctx context.Context, email string) error {
	if err := s.users.SetVerified(ctx, email, true); err != nil {
		return err
	}
	return s.listings.MarkSellerVerified(ctx, email)
}

// Buyers returns all plain-user identities, for the admin dashboard.
func (s *UserService) Buyers(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleUser)
}

// Sellers returns all seller identities.
func (s *UserService) Sellers(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleSeller)
}

// Delete removes an identity by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
