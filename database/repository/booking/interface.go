package bookingRepo

import (
	"context"
	"errors"

	"horizon/models"
)

// ErrTxnConflict marks a commit attempt aborted by a concurrent conflicting
// transaction. Callers may retry the whole commit.
var ErrTxnConflict = errors.New("transaction conflict")

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("booking not found")

// BookingRepository persists bookings together with their per-user trip index
// entries and the shared analytics counters.
type BookingRepository interface {
	// CommitBooking performs one transactional commit attempt: the booking
	// document, its trip index entry, and the analytics increments become
	// visible together or not at all.
	CommitBooking(ctx context.Context, b *models.Booking) error

	// UpdateStatus transitions the booking and its trip index entry to the new
	// status in a single transaction. A cancellation also bumps the cancelled
	// counter.
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error

	// SetVoucherURL attaches a generated voucher document URL to the booking.
	SetVoucherURL(ctx context.Context, bookingID, url string) error

	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error)
	ListTripsByUser(ctx context.Context, userID string, limit int64) ([]models.TripIndexEntry, error)

	// WatchUserBookings streams a signal for every change to the user's
	// bookings until ctx is cancelled. The channel coalesces bursts.
	WatchUserBookings(ctx context.Context, userID string) (<-chan struct{}, error)
}
