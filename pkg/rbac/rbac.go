// Package rbac provides conditional-role authorization middleware.
//
// Roles live in the user collection, not in the token, so the check takes a
// resolver that maps a verified email to its stored role. An email with no
// stored identity resolves to no role and is simply forbidden, never an
// error.
package rbac

import (
	"context"
	"net/http"

	"github.com/hometech/server/pkg/middleware"
	"github.com/hometech/server/pkg/response"
)

// RoleResolver maps a verified email to its stored role.
// ok is false when no identity exists for the email.
type RoleResolver func(ctx context.Context, email string) (role string, ok bool)

// Requires returns middleware that allows access only when the verified
// identity's stored role is one of roles. Wire after middleware.Auth.
func Requires(resolve RoleResolver, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := middleware.EmailFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			role, ok := resolve(r.Context(), email)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
