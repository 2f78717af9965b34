package userRepo

import (
	"context"
	"errors"

	"horizon/models"
)

var ErrNotFound = errors.New("user not found")

// UserRepository persists the local profile mirror of Firebase identities.
type UserRepository interface {
	Upsert(ctx context.Context, u models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	SetFCMToken(ctx context.Context, uid, token string) error
}
