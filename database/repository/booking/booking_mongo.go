package bookingRepo

import (
	"horizon/database"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	bookingCollection   = "bookings"
	tripIndexCollection = "user_trips"
	analyticsCollection = "analytics"
)

// MongoBookingRepo is the MongoDB-backed implementation of BookingRepository.
type MongoBookingRepo struct {
	bookingColl   *mongo.Collection
	tripColl      *mongo.Collection
	analyticsColl *mongo.Collection
}

// NewMongoBookingRepo builds the repository over the shared Mongo client.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.DB()
	repo := &MongoBookingRepo{
		bookingColl:   db.Collection(bookingCollection),
		tripColl:      db.Collection(tripIndexCollection),
		analyticsColl: db.Collection(analyticsCollection),
	}
	repo.ensureIndexes()
	return repo
}
