// Package routes declares the HTTP surface.
package routes

import (
	"net/http"

	"github.com/hometech/server/app/controllers"
	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/metrics"
	"github.com/hometech/server/pkg/middleware"
	"github.com/hometech/server/pkg/rbac"
	"github.com/hometech/server/pkg/reqid"
	"github.com/hometech/server/pkg/router"
)

// Controllers bundles everything the route table dispatches to.
type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Product  *controllers.ProductController
	User     *controllers.UserController
	Booking  *controllers.BookingController
	Payment  *controllers.PaymentController

	// Roles resolves a verified email to its stored role, for the
	// admin/seller route groups.
	Roles rbac.RoleResolver
}

// Register wires the full route table onto r.
func Register(r *router.Router, c Controllers) {
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("HomeTech server is running")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// Public storefront reads.
	r.Get("/jwt", "auth.token", c.Auth.Token)
	r.Get("/categories", "categories.list", c.Category.List)
	r.Get("/categories/{id}", "categories.products", c.Category.Products)
	r.Get("/products/advertised", "products.advertised", c.Product.Advertised)
	r.Post("/users", "users.register", c.User.Register)
	r.Get("/users/admin/{email}", "users.isAdmin", c.User.IsAdmin)
	r.Get("/users/seller/{email}", "users.isSeller", c.User.IsSeller)

	// Authenticated.
	authed := r.Group("/", middleware.Auth)
	authed.Post("/bookings", "bookings.create", c.Booking.Create)
	authed.Get("/bookings/{id}", "bookings.show", c.Booking.Show)
	authed.Get("/orders", "bookings.orders", c.Booking.Orders, middleware.OwnsEmail("email"))
	authed.Get("/products", "products.bySeller", c.Product.BySeller, middleware.OwnsEmail("email"))
	authed.Put("/products/report/{id}", "products.report", c.Product.Report)
	authed.Post("/payments/intent", "payments.intent", c.Payment.CreateIntent)
	authed.Post("/payments", "payments.record", c.Payment.Record)

	// Sellers.
	seller := r.Group("/", middleware.Auth, rbac.Requires(c.Roles, string(models.RoleSeller)))
	seller.Post("/products", "products.add", c.Product.Add)
	seller.Post("/products/images", "products.uploadImage", c.Product.UploadImage)
	seller.Put("/products/advertise/{id}", "products.advertise", c.Product.Advertise)
	seller.Put("/products/status/{id}", "products.setStatus", c.Product.SetStatus)

	// Admin dashboard.
	admin := r.Group("/", middleware.Auth, rbac.Requires(c.Roles, string(models.RoleAdmin)))
	admin.Get("/users", "users.listByRole", c.User.ListByRole)
	admin.Put("/users/seller/{email}", "users.makeSeller", c.User.MakeSeller)
	admin.Put("/users/seller/verify/{email}", "users.verifySeller", c.User.VerifySeller)
	admin.Delete("/users/{id}", "users.delete", c.User.Delete)
	admin.Get("/products/reported", "products.reported", c.Product.Reported)
	admin.Delete("/products/{id}", "products.delete", c.Product.Delete)
}
