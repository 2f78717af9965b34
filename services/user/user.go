package user

import (
	"context"

	userRepo "horizon/database/repository/user"
	"horizon/models"
)

// UserService maintains the local profile mirror of Firebase identities.
type UserService interface {
	SyncProfile(ctx context.Context, u models.User) error
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, uid, token string) error
}

type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// SyncProfile upserts the caller's profile after sign-in.
func (s *DefaultUserService) SyncProfile(ctx context.Context, u models.User) error {
	return s.Repo.Upsert(ctx, u)
}

func (s *DefaultUserService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.Repo.GetByUID(ctx, uid)
}

// UpdateFCMToken stores the device token used for booking push notifications.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, uid, token string) error {
	return s.Repo.SetFCMToken(ctx, uid, token)
}
