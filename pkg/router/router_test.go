package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAreRecorded(t *testing.T) {
	r := New()
	r.Get("/categories", "categories.list", ok)
	r.Post("/bookings", "bookings.create", ok)
	r.Patch("/products/{id}", "products.patch", ok)
	r.Get("/internal", "", ok) // unnamed routes stay out of the table

	infos := r.Routes()
	require.Len(t, infos, 3)

	path, found := r.Path("bookings.create")
	assert.True(t, found)
	assert.Equal(t, "/bookings", path)

	_, found = r.Path("nope")
	assert.False(t, found)
}

func TestURLSubstitutesParams(t *testing.T) {
	r := New()
	r.Put("/users/seller/verify/{email}", "users.verifySeller", ok)

	url, err := r.URL("users.verifySeller", map[string]string{"email": "seller@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "/users/seller/verify/seller@x.com", url)

	_, err = r.URL("users.verifySeller", nil)
	assert.Error(t, err, "unfilled params must not produce a half-built URL")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestPatchRouteIsServed(t *testing.T) {
	r := New()
	r.Patch("/products/{id}", "products.patch", ok)

	req := httptest.NewRequest(http.MethodPatch, "/products/abc", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/admin", tag("outer"))
	g.Get("/users", "admin.users", ok, tag("inner"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)

	path, found := r.Path("admin.users")
	assert.True(t, found)
	assert.Equal(t, "/admin/users", path)
}
