package services

import (
	"context"
	"errors"
	"time"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/pkg/metrics"
)

// DuplicateBookingMessage is the rejection text the storefront shows when a
// buyer tries to book the same product twice. Existing frontend code
// matches on it, so it must not change.
const DuplicateBookingMessage = "You have already booked this product."

// BookingStore is the slice of the booking store the admission policy needs.
type BookingStore interface {
	Exists(ctx context.Context, userEmail, productName string) (bool, error)
	Insert(ctx context.Context, b *models.Booking) (string, error)
	ByUserEmail(ctx context.Context, email string) ([]models.Booking, error)
	ByID(ctx context.Context, id string) (*models.Booking, error)
	SetPaid(ctx context.Context, id, transactionID string) error
}

// Notifier receives domain events for out-of-band delivery (mail jobs).
// A nil Notifier disables notifications.
type Notifier interface {
	BookingConfirmed(b models.Booking)
	PaymentRecorded(p models.Payment)
}

// BookingService implements the booking admission policy: at most one
// booking per (userEmail, productName) pair.
type BookingService struct {
	store  BookingStore
	notify Notifier
}

func NewBookingService(store BookingStore, notify Notifier) *BookingService {
	return &BookingService{store: store, notify: notify}
}

// Admit applies the admission policy to a booking request.
//
// The Exists pre-check gives the common sequential duplicate a friendly
// rejection without an insert attempt. It is not what makes the policy
// safe: two concurrent requests can both pass it, and the loser of the
// subsequent insert race is caught by the store's unique index and mapped
// to the same rejection. Exactly one booking per pair survives either way.
//
// A rejection is a normal result, not an error: callers must inspect
// Acknowledged.
func (s *BookingService) Admit(ctx context.Context, b *models.Booking) (*models.AdmissionResult, error) {
	taken, err := s.store.Exists(ctx, b.UserEmail, b.ProductName)
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.BookingsRejected.Inc()
		return &models.AdmissionResult{
			Acknowledged: false,
			Message:      DuplicateBookingMessage,
		}, nil
	}

	if b.BookedAt.IsZero() {
		b.BookedAt = time.Now().UTC()
	}
	b.Paid = false
	b.TransactionID = ""

	id, err := s.store.Insert(ctx, b)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		// Lost the race against a concurrent booking for the same pair.
		metrics.BookingsRejected.Inc()
		return &models.AdmissionResult{
			Acknowledged: false,
			Message:      DuplicateBookingMessage,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.BookingsAdmitted.Inc()
	if s.notify != nil {
		s.notify.BookingConfirmed(*b)
	}

	return &models.AdmissionResult{
		Acknowledged: true,
		InsertedID:   id,
	}, nil
}

// Orders returns the buyer's bookings.
func (s *BookingService) Orders(ctx context.Context, email string) ([]models.Booking, error) {
	return s.store.ByUserEmail(ctx, email)
}

// ByID returns a single booking, for the checkout page.
func (s *BookingService) ByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.store.ByID(ctx, id)
}
