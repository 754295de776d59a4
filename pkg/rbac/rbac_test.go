package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hometech/server/pkg/middleware"
)

func stubResolver(roles map[string]string) RoleResolver {
	return func(_ context.Context, email string) (string, bool) {
		role, ok := roles[email]
		return role, ok
	}
}

func callRequires(t *testing.T, resolver RoleResolver, identity string, roles ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reached bool
	handler := Requires(resolver, roles...)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if identity != "" {
		req = req.WithContext(middleware.WithEmail(req.Context(), identity))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		assert.False(t, reached, "handler must not run on a refused request")
	}
	return rec
}

func TestRequiresMatchingRolePasses(t *testing.T) {
	resolver := stubResolver(map[string]string{"admin@x.com": "Admin"})

	rec := callRequires(t, resolver, "admin@x.com", "Admin")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequiresWrongRoleIsForbidden(t *testing.T) {
	resolver := stubResolver(map[string]string{"seller@x.com": "Seller"})

	rec := callRequires(t, resolver, "seller@x.com", "Admin")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequiresUnknownIdentityIsForbidden(t *testing.T) {
	// Verified token, but no stored identity behind the email: refused,
	// never an error.
	resolver := stubResolver(map[string]string{})

	rec := callRequires(t, resolver, "ghost@x.com", "Admin")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequiresMissingIdentityIsUnauthorized(t *testing.T) {
	// Wired without the gate in front, the request carries no verified
	// email at all.
	resolver := stubResolver(map[string]string{"admin@x.com": "Admin"})

	rec := callRequires(t, resolver, "", "Admin")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequiresAnyOfListedRoles(t *testing.T) {
	resolver := stubResolver(map[string]string{
		"seller@x.com": "Seller",
		"buyer@x.com":  "User",
	})

	rec := callRequires(t, resolver, "seller@x.com", "Admin", "Seller")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = callRequires(t, resolver, "buyer@x.com", "Admin", "Seller")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
