package pendingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"horizon/database"
	"horizon/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoPendingRepo struct {
	coll *mongo.Collection
}

func NewMongoPendingRepo() *MongoPendingRepo {
	return &MongoPendingRepo{coll: database.DB().Collection("pending_bookings")}
}

// Create inserts a new pending capture and returns its ID.
func (r *MongoPendingRepo) Create(ctx context.Context, rec models.PendingSyncRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.CapturedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CapturedAt

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert pending record: %w", err)
	}
	return rec.ID, nil
}

// GetByID returns a pending record by its ID.
func (r *MongoPendingRepo) GetByID(ctx context.Context, id string) (*models.PendingSyncRecord, error) {
	var rec models.PendingSyncRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pending record %s not found", id)
		}
		return nil, err
	}
	return &rec, nil
}

// ListByState fetches all records currently in the given sync state.
func (r *MongoPendingRepo) ListByState(ctx context.Context, state models.SyncState) ([]models.PendingSyncRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"state": state})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.PendingSyncRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkState advances a record through the Committed | PendingSync | Failed
// state machine.
func (r *MongoPendingRepo) MarkState(ctx context.Context, id string, state models.SyncState, attempts int, lastError string) error {
	update := bson.M{
		"$set": bson.M{
			"state":     state,
			"attempts":  attempts,
			"lastError": lastError,
			"updatedAt": time.Now().UTC(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("mark pending record %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pending record %s not found", id)
	}
	return nil
}
