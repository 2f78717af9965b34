package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"horizon/database"
	"horizon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAnalyticsRepo struct {
	coll *mongo.Collection
}

func NewMongoAnalyticsRepo() *MongoAnalyticsRepo {
	return &MongoAnalyticsRepo{coll: database.DB().Collection("analytics")}
}

// EnsureTotals creates the counters document if it does not exist yet. The
// $setOnInsert keeps an existing document untouched, so running this on every
// startup is safe.
func (r *MongoAnalyticsRepo) EnsureTotals(ctx context.Context) error {
	zero := models.AnalyticsTotals{
		ID:             models.AnalyticsTotalsID,
		BookingsByType: map[models.BookingType]int64{},
		RevenueByType:  map[models.BookingType]float64{},
		UpdatedAt:      time.Now().UTC(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": models.AnalyticsTotalsID},
		bson.M{"$setOnInsert": zero},
		opts,
	)
	if err != nil {
		return fmt.Errorf("ensure analytics totals: %w", err)
	}
	return nil
}

// GetTotals returns the current aggregate counters.
func (r *MongoAnalyticsRepo) GetTotals(ctx context.Context) (*models.AnalyticsTotals, error) {
	var totals models.AnalyticsTotals
	if err := r.coll.FindOne(ctx, bson.M{"id": models.AnalyticsTotalsID}).Decode(&totals); err != nil {
		return nil, fmt.Errorf("fetch analytics totals: %w", err)
	}
	return &totals, nil
}
