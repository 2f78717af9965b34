package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"horizon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID returns a booking by its id, or ErrNotFound.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch booking %s: %w", bookingID, err)
	}
	return &b, nil
}

// ListByUser returns the user's bookings, newest first.
func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := repo.bookingColl.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// ListTripsByUser returns the denormalized trip index entries, newest first.
func (repo *MongoBookingRepo) ListTripsByUser(ctx context.Context, userID string, limit int64) ([]models.TripIndexEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := repo.tripColl.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trips for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var trips []models.TripIndexEntry
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode trips for user %s: %w", userID, err)
	}
	return trips, nil
}

// SetVoucherURL attaches the rendered voucher URL to the booking. VoucherURL is
// one of the few fields allowed to change after commit.
func (repo *MongoBookingRepo) SetVoucherURL(ctx context.Context, bookingID, url string) error {
	update := bson.M{
		"$set":         bson.M{"voucherUrl": url},
		"$currentDate": bson.M{"updatedAt": true},
	}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("set voucher url on %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
