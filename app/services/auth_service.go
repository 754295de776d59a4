package services

import (
	"context"
	"errors"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/pkg/auth"
)

// IdentityStore is the slice of the user store the token issuer needs.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService issues access tokens for stored identities.
type AuthService struct {
	users IdentityStore
}

func NewAuthService(users IdentityStore) *AuthService {
	return &AuthService{users: users}
}

// IssueToken returns a signed token for email, provided an identity with
// that email exists in the store. An unknown email is ErrUnknownUser.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", err
	}
	return auth.GenerateToken(email)
}
