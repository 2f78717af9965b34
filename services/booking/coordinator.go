package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	bookingRepo "horizon/database/repository/booking"
	"horizon/models"

	"go.uber.org/zap"
)

const defaultCurrency = "INR"

// CreateBooking commits a booking atomically: the booking document, its trip
// index entry, and the analytics increments land together or not at all. A
// transient store conflict retries the whole transaction a bounded number of
// times; exhaustion surfaces as CommitFailedError and, where possible, captures
// the payload for background replay. There is no non-atomic fallback path.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, callerUID string, req models.BookingRequest) (*models.Booking, error) {
	if callerUID == "" {
		return nil, ErrUnauthenticated
	}
	if req.UserID != "" && req.UserID != callerUID {
		s.logger().Warn("booking payload claims a different owner",
			zap.String("caller", callerUID), zap.String("claimed", req.UserID))
		return nil, ErrIdentityMismatch
	}
	if !models.ValidBookingType(req.Type) {
		return nil, fmt.Errorf("unknown booking type %q", req.Type)
	}
	if req.TotalAmount <= 0 {
		return nil, fmt.Errorf("invalid booking amount %.2f", req.TotalAmount)
	}

	b := buildBooking(callerUID, req)
	b.ID = NewBookingID(req.Type)

	err := s.commitWithRetries(ctx, func(attemptCtx context.Context) error {
		return s.Repo.CommitBooking(attemptCtx, b)
	})
	if err == nil {
		s.Cache.Invalidate(callerUID)
		s.notifyConfirmed(b)
		s.logger().Info("booking committed",
			zap.String("bookingId", b.ID),
			zap.String("userId", b.UserID),
			zap.Float64("amount", b.TotalAmount))
		return b, nil
	}

	var cf *CommitFailedError
	if errors.As(err, &cf) {
		cf.PendingRef = s.capturePending(ctx, b.ID, callerUID, req, cf.Err)
	}
	s.logger().Error("booking commit failed",
		zap.String("bookingId", b.ID), zap.Error(err))
	return nil, err
}

// commitWithRetries runs one transactional attempt at a time, retrying whole
// transactions on conflict with jittered backoff. Non-transient errors abort
// immediately.
func (s *DefaultBookingService) commitWithRetries(ctx context.Context, attempt func(context.Context) error) error {
	maxTries := s.maxAttempts()
	var lastErr error

	for i := 1; i <= maxTries; i++ {
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !errors.Is(err, bookingRepo.ErrTxnConflict) {
			return &CommitFailedError{Attempts: i, Err: err}
		}
		if i == maxTries {
			break
		}

		s.logger().Debug("transaction conflict, retrying",
			zap.Int("attempt", i), zap.Error(err))
		select {
		case <-ctx.Done():
			return &CommitFailedError{Attempts: i, Err: ctx.Err()}
		case <-time.After(backoff(i)):
		}
	}

	return &CommitFailedError{Attempts: maxTries, Err: lastErr}
}

// backoff returns an exponentially growing delay with jitter: 50ms base, doubled
// per attempt, plus up to 50% random spread.
func backoff(attempt int) time.Duration {
	base := 50 * time.Millisecond << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

func buildBooking(callerUID string, req models.BookingRequest) *models.Booking {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "paid"
	}

	return &models.Booking{
		UserID:           callerUID,
		Type:             req.Type,
		ItemID:           req.ItemID,
		ItemTitle:        req.ItemTitle,
		ItemImage:        req.ItemImage,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Participants:     req.Participants,
		ParticipantList:  req.ParticipantList,
		EmergencyContact: req.EmergencyContact,
		SpecialRequests:  req.SpecialRequests,
		PaymentID:        req.PaymentID,
		TotalAmount:      req.TotalAmount,
		Currency:         currency,
		PaymentStatus:    paymentStatus,
		Status:           models.BookingStatusConfirmed,
	}
}

func (s *DefaultBookingService) notifyConfirmed(b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		title := "Booking confirmed"
		body := fmt.Sprintf("Your booking for %s is confirmed.", b.ItemTitle)
		data := map[string]string{"bookingId": b.ID, "type": string(b.Type)}
		if err := s.Notifier.SendBookingPush(ctx, b.UserID, title, body, data); err != nil {
			s.logger().Warn("confirmation push failed",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}()
}
