package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/auth"
)

func TestIssueTokenForKnownUser(t *testing.T) {
	store := newFakeUserStore()
	seedUser(store, "buyer@x.com", models.RoleUser)
	svc := NewAuthService(store)

	token, err := svc.IssueToken(context.Background(), "buyer@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@x.com", claims.Email)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	_, err := svc.IssueToken(context.Background(), "ghost@x.com")

	assert.ErrorIs(t, err, ErrUnknownUser)
}
