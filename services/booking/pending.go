package booking

import (
	"context"
	"errors"
	"fmt"

	"horizon/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxReplayAttempts bounds background replays before a capture is marked Failed.
const maxReplayAttempts = 10

// capturePending records a payload whose commit exhausted its retries and
// schedules it for background replay. The capture lives in its own collection:
// it contributes nothing to analytics and is invisible to trip listings until a
// replay commits it for real. Returns the capture id, or "" when capture itself
// failed.
func (s *DefaultBookingService) capturePending(ctx context.Context, bookingID, userID string, req models.BookingRequest, cause error) string {
	if s.PendingRepo == nil {
		return ""
	}

	rec := models.PendingSyncRecord{
		BookingID: bookingID,
		UserID:    userID,
		Payload:   req,
		State:     models.SyncStatePendingSync,
		Attempts:  0,
		LastError: cause.Error(),
	}

	id, err := s.PendingRepo.Create(ctx, rec)
	if err != nil {
		s.logger().Error("failed to capture pending booking",
			zap.String("bookingId", bookingID), zap.Error(err))
		return ""
	}

	if s.Enqueuer != nil {
		if err := s.Enqueuer.EnqueueReplay(id); err != nil {
			s.logger().Error("failed to enqueue pending replay",
				zap.String("pendingId", id), zap.Error(err))
		}
	}

	s.logger().Info("booking captured for background replay",
		zap.String("bookingId", bookingID), zap.String("pendingId", id))
	return id
}

// ReplayPending pushes a captured booking through the normal transactional
// commit path. A duplicate-key rejection means an earlier attempt actually
// committed (the commit outcome was unknown at capture time), which counts as
// success.
func (s *DefaultBookingService) ReplayPending(ctx context.Context, recordID string) error {
	rec, err := s.PendingRepo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if rec.State != models.SyncStatePendingSync {
		return nil
	}

	b := buildBooking(rec.UserID, rec.Payload)
	b.ID = rec.BookingID

	err = s.commitWithRetries(ctx, func(attemptCtx context.Context) error {
		return s.Repo.CommitBooking(attemptCtx, b)
	})
	if err != nil && !isAlreadyCommitted(err) {
		attempts := rec.Attempts + 1
		state := models.SyncStatePendingSync
		if attempts >= maxReplayAttempts {
			state = models.SyncStateFailed
		}
		if markErr := s.PendingRepo.MarkState(ctx, recordID, state, attempts, err.Error()); markErr != nil {
			s.logger().Error("failed to record replay outcome",
				zap.String("pendingId", recordID), zap.Error(markErr))
		}
		if state == models.SyncStateFailed {
			s.logger().Error("pending booking gave up after max replays",
				zap.String("pendingId", recordID), zap.String("bookingId", rec.BookingID))
			return nil
		}
		return fmt.Errorf("replay of pending booking %s: %w", recordID, err)
	}

	if markErr := s.PendingRepo.MarkState(ctx, recordID, models.SyncStateCommitted, rec.Attempts+1, ""); markErr != nil {
		s.logger().Error("failed to mark pending record committed",
			zap.String("pendingId", recordID), zap.Error(markErr))
	}
	s.Cache.Invalidate(rec.UserID)
	s.notifyConfirmed(b)
	s.logger().Info("pending booking replayed",
		zap.String("pendingId", recordID), zap.String("bookingId", rec.BookingID))
	return nil
}

func isAlreadyCommitted(err error) bool {
	var cf *CommitFailedError
	if errors.As(err, &cf) {
		err = cf.Err
	}
	return mongo.IsDuplicateKeyError(err)
}
