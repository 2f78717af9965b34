package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"horizon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// isTransient reports whether the store flagged the error as safe to retry as a
// whole new transaction.
func isTransient(err error) bool {
	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.HasErrorLabel("TransientTransactionError") ||
			srvErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}

func wrapTxnErr(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrTxnConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CommitBooking writes the booking, its trip index entry, and the analytics
// increments as one transaction. Timestamps are assigned here, on the store side
// of the API, so every document in the commit carries the same instant.
func (repo *MongoBookingRepo) CommitBooking(ctx context.Context, b *models.Booking) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	entry := models.TripIndexEntryFor(b)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.bookingColl.InsertOne(sc, b); err != nil {
			return wrapTxnErr("insert booking", err)
		}

		if _, err := repo.tripColl.InsertOne(sc, entry); err != nil {
			return wrapTxnErr("insert trip index entry", err)
		}

		update := bson.M{
			"$inc": bson.M{
				"totalRevenue":                     b.TotalAmount,
				"totalBookings":                    1,
				"bookingsByType." + string(b.Type): 1,
				"revenueByType." + string(b.Type):  b.TotalAmount,
			},
			"$currentDate": bson.M{"updatedAt": true},
		}
		if _, err := repo.analyticsColl.UpdateOne(sc, bson.M{"id": models.AnalyticsTotalsID}, update); err != nil {
			return wrapTxnErr("increment analytics counters", err)
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return wrapTxnErr("start transaction", err)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return wrapTxnErr("commit transaction", err)
		}
		return nil
	}); err != nil {
		return err
	}

	return nil
}

// UpdateStatus transitions the booking and its trip index entry together. There
// is deliberately no single-document variant of this update.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	update := bson.M{
		"$set":         bson.M{"status": status},
		"$currentDate": bson.M{"updatedAt": true},
	}

	txnFn := func(sc mongo.SessionContext) error {
		res, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": bookingID}, update)
		if err != nil {
			return wrapTxnErr("update booking status", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}

		res, err = repo.tripColl.UpdateOne(sc, bson.M{"bookingId": bookingID}, update)
		if err != nil {
			return wrapTxnErr("update trip index status", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("trip index entry missing for booking %s", bookingID)
		}

		if status == models.BookingStatusCancelled {
			counters := bson.M{
				"$inc":         bson.M{"cancelledBookings": 1},
				"$currentDate": bson.M{"updatedAt": true},
			}
			if _, err := repo.analyticsColl.UpdateOne(sc, bson.M{"id": models.AnalyticsTotalsID}, counters); err != nil {
				return wrapTxnErr("increment cancelled counter", err)
			}
		}

		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return wrapTxnErr("start transaction", err)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return wrapTxnErr("commit transaction", err)
		}
		return nil
	})
}
