package booking

import (
	"context"
	"strconv"
	"sync"
	"time"

	bookingRepo "horizon/database/repository/booking"
	"horizon/models"

	"go.uber.org/zap"
)

// fakeTotals mirrors the analytics counters document; mutated only inside the
// fake's commit methods, like the real `$inc` updates.
type fakeTotals struct {
	totalRevenue      float64
	totalBookings     int64
	cancelledBookings int64
	bookingsByType    map[models.BookingType]int64
	revenueByType     map[models.BookingType]float64
}

// fakeBookingRepo is an in-memory BookingRepository. failCommits counts down:
// while positive, CommitBooking and UpdateStatus fail with failErr.
type fakeBookingRepo struct {
	mu sync.Mutex

	bookings map[string]*models.Booking
	trips    map[string][]models.TripIndexEntry
	totals   fakeTotals

	failCommits int
	failErr     error

	commitCalls int
	statusCalls int

	events chan struct{}
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		trips:    make(map[string][]models.TripIndexEntry),
		totals: fakeTotals{
			bookingsByType: make(map[models.BookingType]int64),
			revenueByType:  make(map[models.BookingType]float64),
		},
		events: make(chan struct{}, 1),
	}
}

func (r *fakeBookingRepo) snapshotTotals() fakeTotals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totals
}

func (r *fakeBookingRepo) CommitBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitCalls++

	if r.failCommits != 0 {
		if r.failCommits > 0 {
			r.failCommits--
		}
		return r.failErr
	}

	// Same contract as the Mongo implementation: the store assigns timestamps
	// and every document in the commit carries the same instant.
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	r.bookings[b.ID] = &cp
	r.trips[b.UserID] = append([]models.TripIndexEntry{models.TripIndexEntryFor(b)}, r.trips[b.UserID]...)
	r.totals.totalBookings++
	r.totals.totalRevenue += b.TotalAmount
	r.totals.bookingsByType[b.Type]++
	r.totals.revenueByType[b.Type] += b.TotalAmount
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCalls++

	if r.failCommits != 0 {
		if r.failCommits > 0 {
			r.failCommits--
		}
		return r.failErr
	}

	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	for i := range r.trips[b.UserID] {
		if r.trips[b.UserID][i].BookingID == bookingID {
			r.trips[b.UserID][i].Status = status
		}
	}
	if status == models.BookingStatusCancelled {
		r.totals.cancelledBookings++
	}
	return nil
}

func (r *fakeBookingRepo) SetVoucherURL(ctx context.Context, bookingID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.VoucherURL = url
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListTripsByUser(ctx context.Context, userID string, limit int64) ([]models.TripIndexEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.TripIndexEntry(nil), r.trips[userID]...), nil
}

func (r *fakeBookingRepo) WatchUserBookings(ctx context.Context, userID string) (<-chan struct{}, error) {
	return r.events, nil
}

func (r *fakeBookingRepo) signalChange() {
	select {
	case r.events <- struct{}{}:
	default:
	}
}

// fakePendingRepo is an in-memory PendingRepository.
type fakePendingRepo struct {
	mu      sync.Mutex
	nextID  int
	records map[string]*models.PendingSyncRecord
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{records: make(map[string]*models.PendingSyncRecord)}
}

func (r *fakePendingRepo) Create(ctx context.Context, rec models.PendingSyncRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = "pending-" + strconv.Itoa(r.nextID)
	r.records[rec.ID] = &rec
	return rec.ID, nil
}

func (r *fakePendingRepo) GetByID(ctx context.Context, id string) (*models.PendingSyncRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakePendingRepo) ListByState(ctx context.Context, state models.SyncState) ([]models.PendingSyncRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PendingSyncRecord
	for _, rec := range r.records {
		if rec.State == state {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakePendingRepo) MarkState(ctx context.Context, id string, state models.SyncState, attempts int, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	rec.State = state
	rec.Attempts = attempts
	rec.LastError = lastError
	return nil
}

// fakeEnqueuer records replay enqueues.
type fakeEnqueuer struct {
	mu  sync.Mutex
	ids []string
}

func (e *fakeEnqueuer) EnqueueReplay(recordID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ids = append(e.ids, recordID)
	return nil
}

func (e *fakeEnqueuer) enqueued() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.ids...)
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		Type:          models.BookingTypeTour,
		ItemID:        "tour-serengeti-5d",
		ItemTitle:     "Serengeti Classic Safari",
		CustomerName:  "Asha Mwangi",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "+254700000001",
		StartDate:     "2026-09-14",
		EndDate:       "2026-09-19",
		Participants:  2,
		PaymentID:     "pay_Nf29xkQ8XaY1",
		TotalAmount:   1840.50,
	}
}

func newTestService(repo *fakeBookingRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:   repo,
		Cache:  NewTripCache(0),
		Logger: testLogger(),
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
