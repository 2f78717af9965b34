package bookingRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WatchUserBookings opens a change stream over the user's bookings and returns a
// signal channel. The channel has capacity one and drops signals while a
// previous one is unconsumed, so a burst of writes collapses into a single wake.
func (repo *MongoBookingRepo) WatchUserBookings(ctx context.Context, userID string) (<-chan struct{}, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "fullDocument.userId", Value: userID}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := repo.bookingColl.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("watch bookings for user %s: %w", userID, err)
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}()

	return events, nil
}
