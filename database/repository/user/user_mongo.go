package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"horizon/database"
	"horizon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo() *MongoUserRepo {
	repo := &MongoUserRepo{coll: database.DB().Collection("users")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return repo
}

// Upsert writes the profile mirror, creating it on first sign-in.
func (r *MongoUserRepo) Upsert(ctx context.Context, u models.User) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":      u.Name,
			"email":     u.Email,
			"phone":     u.Phone,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"uid":       u.UID,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"uid": u.UID}, update, opts); err != nil {
		return fmt.Errorf("upsert user %s: %w", u.UID, err)
	}
	return nil
}

// GetByUID returns a user profile, or ErrNotFound.
func (r *MongoUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch user %s: %w", uid, err)
	}
	return &u, nil
}

// SetFCMToken stores the device token used for booking push notifications.
func (r *MongoUserRepo) SetFCMToken(ctx context.Context, uid, token string) error {
	update := bson.M{
		"$set": bson.M{
			"fcmToken":  token,
			"updatedAt": time.Now().UTC(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, update)
	if err != nil {
		return fmt.Errorf("set fcm token for %s: %w", uid, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
