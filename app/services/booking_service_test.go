package services

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
)

// fakeBookingStore enforces pair uniqueness atomically under a mutex, the
// way the real collection's unique index does.
type fakeBookingStore struct {
	mu sync.Mutex

	byPair map[string]string // userEmail|productName → id
	byID   map[string]models.Booking
	next   int

	// blindExists makes Exists always miss, forcing the admission policy
	// to rely on Insert's uniqueness guarantee alone.
	blindExists bool
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		byPair: map[string]string{},
		byID:   map[string]models.Booking{},
	}
}

func pairKey(email, product string) string { return email + "|" + product }

func (f *fakeBookingStore) Exists(_ context.Context, email, product string) (bool, error) {
	if f.blindExists {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byPair[pairKey(email, product)]
	return ok, nil
}

func (f *fakeBookingStore) Insert(_ context.Context, b *models.Booking) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey(b.UserEmail, b.ProductName)
	if _, ok := f.byPair[key]; ok {
		return "", repositories.ErrDuplicateKey
	}

	f.next++
	id := "bk" + strconv.Itoa(f.next)
	f.byPair[key] = id
	f.byID[id] = *b
	return id, nil
}

func (f *fakeBookingStore) ByUserEmail(_ context.Context, email string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Booking{}
	for _, b := range f.byID {
		if b.UserEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBookingStore) SetPaid(_ context.Context, id, txn string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	b.Paid = true
	b.TransactionID = txn
	f.byID[id] = b
	return nil
}

func (f *fakeBookingStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type recordingNotifier struct {
	mu       sync.Mutex
	bookings []models.Booking
	payments []models.Payment
}

func (n *recordingNotifier) BookingConfirmed(b models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bookings = append(n.bookings, b)
}

func (n *recordingNotifier) PaymentRecorded(p models.Payment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payments = append(n.payments, p)
}

func testBooking(email, product string) *models.Booking {
	return &models.Booking{
		UserName:    "Buyer",
		UserEmail:   email,
		ProductName: product,
		Price:       300,
		Phone:       "0170000000",
	}
}

func TestAdmitStoresBooking(t *testing.T) {
	store := newFakeBookingStore()
	notify := &recordingNotifier{}
	svc := NewBookingService(store, notify)

	res, err := svc.Admit(context.Background(), testBooking("a@x.com", "Washer"))
	require.NoError(t, err)

	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)
	assert.Empty(t, res.Message)
	assert.Equal(t, 1, store.count())

	stored, err := store.ByID(context.Background(), res.InsertedID)
	require.NoError(t, err)
	assert.False(t, stored.BookedAt.IsZero())
	assert.False(t, stored.Paid)
	assert.Empty(t, stored.TransactionID)

	assert.Len(t, notify.bookings, 1)
}

func TestAdmitRejectsDuplicatePair(t *testing.T) {
	store := newFakeBookingStore()
	notify := &recordingNotifier{}
	svc := NewBookingService(store, notify)

	first, err := svc.Admit(context.Background(), testBooking("a@x.com", "Washer"))
	require.NoError(t, err)
	require.True(t, first.Acknowledged)

	second, err := svc.Admit(context.Background(), testBooking("a@x.com", "Washer"))
	require.NoError(t, err)

	assert.False(t, second.Acknowledged)
	assert.Empty(t, second.InsertedID)
	assert.Equal(t, DuplicateBookingMessage, second.Message)
	assert.Equal(t, 1, store.count())
	assert.Len(t, notify.bookings, 1)
}

func TestAdmitRejectsWhenPrecheckMisses(t *testing.T) {
	// Simulates the window between the existence check and the insert: the
	// pre-check sees nothing, the store's uniqueness guarantee still holds.
	store := newFakeBookingStore()
	store.blindExists = true
	svc := NewBookingService(store, nil)

	first, err := svc.Admit(context.Background(), testBooking("a@x.com", "Washer"))
	require.NoError(t, err)
	require.True(t, first.Acknowledged)

	second, err := svc.Admit(context.Background(), testBooking("a@x.com", "Washer"))
	require.NoError(t, err)

	assert.False(t, second.Acknowledged)
	assert.Equal(t, DuplicateBookingMessage, second.Message)
	assert.Equal(t, 1, store.count())
}

func TestAdmitConcurrentSamePair(t *testing.T) {
	store := newFakeBookingStore()
	svc := NewBookingService(store, nil)

	const attempts = 32
	results := make(chan *models.AdmissionResult, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Admit(context.Background(), testBooking("race@x.com", "Fridge"))
			if assert.NoError(t, err) {
				results <- res
			}
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for res := range results {
		if res.Acknowledged {
			admitted++
		} else {
			assert.Equal(t, DuplicateBookingMessage, res.Message)
		}
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, store.count())
}

func TestAdmitDistinctPairs(t *testing.T) {
	store := newFakeBookingStore()
	svc := NewBookingService(store, nil)

	for _, b := range []*models.Booking{
		testBooking("a@x.com", "Washer"),
		testBooking("a@x.com", "Fridge"),
		testBooking("b@x.com", "Washer"),
	} {
		res, err := svc.Admit(context.Background(), b)
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
	}

	assert.Equal(t, 3, store.count())
}

func TestOrdersReturnsOnlyOwn(t *testing.T) {
	store := newFakeBookingStore()
	svc := NewBookingService(store, nil)

	_, err := svc.Admit(context.Background(), testBooking("a@x.com", "Washer"))
	require.NoError(t, err)
	_, err = svc.Admit(context.Background(), testBooking("b@x.com", "Fridge"))
	require.NoError(t, err)

	orders, err := svc.Orders(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Washer", orders[0].ProductName)
}
