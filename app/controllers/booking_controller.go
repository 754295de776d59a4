package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/bind"
	"github.com/hometech/server/pkg/middleware"
	"github.com/hometech/server/pkg/response"
)

// BookingController exposes the booking admission policy and the buyer's
// order list.
type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

type bookingInput struct {
	UserName        string `json:"userName" validate:"nullable,max=100"`
	UserEmail       string `json:"userEmail" validate:"required,email"`
	ProductID       string `json:"productId" validate:"nullable,max=64"`
	ProductName     string `json:"productName" validate:"required,max=200"`
	Price           int    `json:"price" validate:"gte=0"`
	Phone           string `json:"phone" validate:"nullable,max=30"`
	MeetingLocation string `json:"meetingLocation" validate:"nullable,max=200"`
}

// Create handles POST /bookings. The claimed userEmail must equal the
// verified identity exactly; booking on someone else's behalf is forbidden.
// A duplicate pair is a 200 with acknowledged=false, which the storefront
// shows as a toast.
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var in bookingInput
	if errs, err := bind.JSON(r, &in); err != nil || errs != nil {
		bindError(w, errs, err)
		return
	}

	verified, _ := middleware.EmailFromCtx(r.Context())
	if in.UserEmail != verified {
		response.Forbidden(w)
		return
	}

	res, err := c.bookings.Admit(r.Context(), &models.Booking{
		UserName:        in.UserName,
		UserEmail:       in.UserEmail,
		ProductID:       in.ProductID,
		ProductName:     in.ProductName,
		Price:           in.Price,
		Phone:           in.Phone,
		MeetingLocation: in.MeetingLocation,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, res)
}

// Orders handles GET /orders?email=. Ownership is enforced by the route
// middleware.
func (c *BookingController) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.bookings.Orders(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Show handles GET /bookings/{id}, the checkout page's booking lookup.
func (c *BookingController) Show(w http.ResponseWriter, r *http.Request) {
	booking, err := c.bookings.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, booking)
}
