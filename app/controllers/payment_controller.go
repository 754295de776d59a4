package controllers

import (
	"net/http"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/bind"
	"github.com/hometech/server/pkg/response"
)

// PaymentController drives the two checkout steps.
type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type intentInput struct {
	Price int `json:"price" validate:"required,gte=1"`
}

// CreateIntent handles POST /payments/intent: registers an intent with the
// processor and returns the client secret the card form confirms with.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var in intentInput
	if errs, err := bind.JSON(r, &in); err != nil || errs != nil {
		bindError(w, errs, err)
		return
	}

	secret, err := c.payments.CreateIntent(r.Context(), in.Price)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"clientSecret": secret})
}

type paymentInput struct {
	BookingID     string `json:"bookingId" validate:"required,max=64"`
	Price         int    `json:"price" validate:"gte=0"`
	TransactionID string `json:"transactionId" validate:"required,max=128"`
}

// Record handles POST /payments: persists the confirmed payment and marks
// its booking paid. An unknown bookingId is a 404 and writes nothing.
func (c *PaymentController) Record(w http.ResponseWriter, r *http.Request) {
	var in paymentInput
	if errs, err := bind.JSON(r, &in); err != nil || errs != nil {
		bindError(w, errs, err)
		return
	}

	id, err := c.payments.Record(r.Context(), &models.Payment{
		BookingID:     in.BookingID,
		Price:         in.Price,
		TransactionID: in.TransactionID,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true, InsertedID: id})
}
