package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hometech/server/pkg/auth"
	"github.com/hometech/server/pkg/response"
)

// identityKey is the unexported context key for the verified email.
type identityKey struct{}

// EmailFromCtx returns the verified email attached by Auth.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityKey{}).(string)
	return email, ok && email != ""
}

// WithEmail attaches a verified email to ctx. Exposed for handler tests.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityKey{}, email)
}

// Auth is the authorization gate. A missing credential is 401; a present but
// malformed, signature-invalid, or expired credential is 403. On success the
// verified email is attached to the request context. The gate never touches
// the store: verification is purely cryptographic.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			// Header present but not a bearer credential.
			response.Forbidden(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Forbidden(w)
			return
		}

		ctx := WithEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnsEmail enforces the ownership check for handlers that take a
// resource-owner email as a query parameter: the verified identity must
// equal the claimed email exactly (no case folding, no alias resolution).
// Wire after Auth.
func OwnsEmail(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verified, ok := EmailFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			claimed := r.URL.Query().Get(param)
			if verified != claimed {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
