package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/services"
)

type stubPaymentStore struct {
	payments []models.Payment
}

func (s *stubPaymentStore) Insert(_ context.Context, p *models.Payment) (string, error) {
	s.payments = append(s.payments, *p)
	return "pay1", nil
}

type stubGateway struct{}

func (stubGateway) CreateIntent(_ context.Context, _ int64) (string, error) {
	return "secret_test", nil
}

func postPayment(t *testing.T, ctrl *PaymentController, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	ctrl.Record(rec, req)
	return rec
}

func TestRecordFreeProductPayment(t *testing.T) {
	// A giveaway checkout records a zero-price payment; the bound is
	// price >= 0, not price present.
	bookings := newStubBookingStore()
	id, err := bookings.Insert(context.Background(), &models.Booking{
		UserEmail:   "buyer@x.com",
		ProductName: "Old Blender",
	})
	require.NoError(t, err)

	payments := &stubPaymentStore{}
	ctrl := NewPaymentController(services.NewPaymentService(payments, bookings, stubGateway{}, nil))

	rec := postPayment(t, ctrl, `{
		"bookingId": "`+id+`",
		"price": 0,
		"transactionId": "txn_free"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AdmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Acknowledged)

	require.Len(t, payments.payments, 1)
	assert.Equal(t, "buyer@x.com", payments.payments[0].UserEmail)

	b, err := bookings.ByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, b.Paid)
	assert.Equal(t, "txn_free", b.TransactionID)
}

func TestRecordUnknownBookingIsNotFound(t *testing.T) {
	payments := &stubPaymentStore{}
	ctrl := NewPaymentController(services.NewPaymentService(payments, newStubBookingStore(), stubGateway{}, nil))

	rec := postPayment(t, ctrl, `{
		"bookingId": "missing",
		"price": 300,
		"transactionId": "txn_1"
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, payments.payments)
}
