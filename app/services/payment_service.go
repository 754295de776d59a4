package services

import (
	"context"
	"time"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/payment"
)

// PaymentStore is the slice of the payment store the checkout needs.
type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) (string, error)
}

// PaymentService drives the two checkout steps: intent creation with the
// processor, then recording the confirmed payment against its booking.
type PaymentService struct {
	payments PaymentStore
	bookings BookingStore
	gateway  payment.Gateway
	notify   Notifier
}

func NewPaymentService(payments PaymentStore, bookings BookingStore, gateway payment.Gateway, notify Notifier) *PaymentService {
	return &PaymentService{payments: payments, bookings: bookings, gateway: gateway, notify: notify}
}

// CreateIntent registers a payment intent for a price in whole currency
// units and returns the client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price int) (string, error) {
	return s.gateway.CreateIntent(ctx, int64(price)*100)
}

// Record persists a confirmed payment and marks its booking paid.
//
// The booking is resolved first: a bookingId that matches nothing is
// repositories.ErrNotFound and no payment record is written, so the
// payments collection never holds orphans.
func (s *PaymentService) Record(ctx context.Context, p *models.Payment) (string, error) {
	b, err := s.bookings.ByID(ctx, p.BookingID)
	if err != nil {
		return "", err
	}

	p.UserEmail = b.UserEmail
	p.ProductName = b.ProductName
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	id, err := s.payments.Insert(ctx, p)
	if err != nil {
		return "", err
	}

	if err := s.bookings.SetPaid(ctx, p.BookingID, p.TransactionID); err != nil {
		return "", err
	}

	if s.notify != nil {
		s.notify.PaymentRecorded(*p)
	}
	return id, nil
}
