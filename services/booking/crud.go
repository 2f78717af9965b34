package booking

import (
	"context"
	"errors"

	bookingRepo "horizon/database/repository/booking"
	"horizon/models"
)

// GetBookingByID returns the booking, or ErrNotFound. Lookups never reveal the
// existence of another user's booking.
func (s *DefaultBookingService) GetBookingByID(ctx context.Context, callerUID, bookingID string) (*models.Booking, error) {
	if callerUID == "" {
		return nil, ErrUnauthenticated
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != callerUID {
		return nil, ErrNotFound
	}
	return b, nil
}

// GetUserBookings returns the user's trip index entries through the TTL cache.
// The cache may be briefly stale for other readers; the owner's own commits
// invalidate it immediately.
func (s *DefaultBookingService) GetUserBookings(ctx context.Context, userID string) ([]models.TripIndexEntry, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if trips, ok := s.Cache.Get(userID); ok {
		return trips, nil
	}

	trips, err := s.Repo.ListTripsByUser(ctx, userID, DefaultPageSize)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(userID, trips)
	return trips, nil
}
