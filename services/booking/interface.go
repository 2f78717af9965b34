package booking

import (
	"context"
	"time"

	bookingRepo "horizon/database/repository/booking"
	pendingRepo "horizon/database/repository/pending"
	"horizon/models"
	"horizon/services/notification"

	"go.uber.org/zap"
)

// DefaultPageSize caps "my trips" listings and live subscriptions.
const DefaultPageSize = 50

// BookingService is the commit coordinator plus its read surface.
type BookingService interface {
	CreateBooking(ctx context.Context, callerUID string, req models.BookingRequest) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, callerUID, bookingID string, status models.BookingStatus) error
	GetBookingByID(ctx context.Context, callerUID, bookingID string) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID string) ([]models.TripIndexEntry, error)
	SubscribeToUserBookings(ctx context.Context, userID string, fn func([]models.Booking)) (func(), error)
	ReplayPending(ctx context.Context, recordID string) error
}

// PendingEnqueuer schedules a captured booking for background replay.
type PendingEnqueuer interface {
	EnqueueReplay(recordID string) error
}

type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	PendingRepo pendingRepo.PendingRepository
	Notifier    notification.NotificationService
	Enqueuer    PendingEnqueuer
	Cache       *TripCache

	// MaxAttempts bounds commit retries; zero means the default of 5.
	MaxAttempts int
	// Throttle is the minimum interval between live-subscription deliveries;
	// zero means one second.
	Throttle time.Duration

	Logger *zap.Logger
}

func (s *DefaultBookingService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return 5
}

func (s *DefaultBookingService) throttleInterval() time.Duration {
	if s.Throttle > 0 {
		return s.Throttle
	}
	return time.Second
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
