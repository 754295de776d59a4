package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/middleware"
)

type stubBookingStore struct {
	byPair map[string]models.Booking
	byID   map[string]models.Booking
	next   int
}

func newStubBookingStore() *stubBookingStore {
	return &stubBookingStore{
		byPair: map[string]models.Booking{},
		byID:   map[string]models.Booking{},
	}
}

func (s *stubBookingStore) Exists(_ context.Context, email, product string) (bool, error) {
	_, ok := s.byPair[email+"|"+product]
	return ok, nil
}

func (s *stubBookingStore) Insert(_ context.Context, b *models.Booking) (string, error) {
	key := b.UserEmail + "|" + b.ProductName
	if _, ok := s.byPair[key]; ok {
		return "", repositories.ErrDuplicateKey
	}
	s.next++
	id := "bk" + strconv.Itoa(s.next)
	s.byPair[key] = *b
	s.byID[id] = *b
	return id, nil
}

func (s *stubBookingStore) ByUserEmail(_ context.Context, email string) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range s.byPair {
		if b.UserEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingStore) ByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (s *stubBookingStore) SetPaid(_ context.Context, id, txn string) error {
	b, ok := s.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	b.Paid = true
	b.TransactionID = txn
	s.byID[id] = b
	return nil
}

func postBooking(t *testing.T, ctrl *BookingController, identity, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithEmail(req.Context(), identity))

	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)
	return rec
}

const bookingBody = `{
	"userName": "Buyer",
	"userEmail": "buyer@x.com",
	"productName": "Washer",
	"price": 300,
	"phone": "0170000000"
}`

func TestCreateBooking(t *testing.T) {
	ctrl := NewBookingController(services.NewBookingService(newStubBookingStore(), nil))

	rec := postBooking(t, ctrl, "buyer@x.com", bookingBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AdmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Acknowledged)
	assert.Equal(t, "bk1", res.InsertedID)
}

func TestCreateBookingFreeProduct(t *testing.T) {
	// A giveaway listing has price 0; the bound is price >= 0, not
	// price present.
	ctrl := NewBookingController(services.NewBookingService(newStubBookingStore(), nil))

	rec := postBooking(t, ctrl, "buyer@x.com", `{
		"userEmail": "buyer@x.com",
		"productName": "Old Blender",
		"price": 0
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AdmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Acknowledged)
}

func TestCreateBookingDuplicateNotAcknowledged(t *testing.T) {
	ctrl := NewBookingController(services.NewBookingService(newStubBookingStore(), nil))

	first := postBooking(t, ctrl, "buyer@x.com", bookingBody)
	require.Equal(t, http.StatusOK, first.Code)

	second := postBooking(t, ctrl, "buyer@x.com", bookingBody)
	require.Equal(t, http.StatusOK, second.Code)

	var res models.AdmissionResult
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &res))
	assert.False(t, res.Acknowledged)
	assert.Empty(t, res.InsertedID)
	assert.Equal(t, services.DuplicateBookingMessage, res.Message)
}

func TestCreateBookingForSomeoneElseIsForbidden(t *testing.T) {
	store := newStubBookingStore()
	ctrl := NewBookingController(services.NewBookingService(store, nil))

	rec := postBooking(t, ctrl, "other@x.com", bookingBody)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, store.byPair)
}

func TestCreateBookingValidatesBody(t *testing.T) {
	ctrl := NewBookingController(services.NewBookingService(newStubBookingStore(), nil))

	rec := postBooking(t, ctrl, "buyer@x.com", `{"userEmail": "not-an-email"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors")
}

func TestShowUnknownBookingIsNotFound(t *testing.T) {
	ctrl := NewBookingController(services.NewBookingService(newStubBookingStore(), nil))

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	rec := httptest.NewRecorder()
	ctrl.Show(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
