package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "horizon/database/repository/booking"
	"horizon/models"

	"go.uber.org/zap"
)

// allowedTransitions is the lifecycle table. Cancelled and completed are
// terminal; cancellation is a status change, never a delete.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCancelled, models.BookingStatusCompleted},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateBookingStatus transitions the booking and its trip index entry in one
// transaction, so the denormalized status can never drift from the booking.
func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, callerUID, bookingID string, status models.BookingStatus) error {
	if callerUID == "" {
		return ErrUnauthenticated
	}
	if !models.ValidBookingStatus(status) {
		return fmt.Errorf("unknown booking status %q", status)
	}

	b, err := s.GetBookingByID(ctx, callerUID, bookingID)
	if err != nil {
		return err
	}
	if !transitionAllowed(b.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, status)
	}

	err = s.commitWithRetries(ctx, func(attemptCtx context.Context) error {
		return s.Repo.UpdateStatus(attemptCtx, bookingID, status)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		s.logger().Error("status update failed",
			zap.String("bookingId", bookingID), zap.Error(err))
		return err
	}

	s.Cache.Invalidate(callerUID)
	s.logger().Info("booking status updated",
		zap.String("bookingId", bookingID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(status)))
	return nil
}
