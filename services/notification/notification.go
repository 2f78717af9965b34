package notification

import (
	"context"
	"fmt"

	userRepo "horizon/database/repository/user"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService delivers push notifications to booking owners.
type NotificationService interface {
	SendBookingPush(ctx context.Context, uid, title, body string, data map[string]string) error
}

type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	FCM    *messaging.Client
	Logger *zap.Logger
}

// SendBookingPush sends an FCM message to the user's registered device. Users
// without a registered token are skipped silently; push is best-effort.
func (s *DefaultNotificationService) SendBookingPush(ctx context.Context, uid, title, body string, data map[string]string) error {
	usr, err := s.Users.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("lookup push target %s: %w", uid, err)
	}
	if usr.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: usr.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.FCM.Send(ctx, msg); err != nil {
		return fmt.Errorf("send push to %s: %w", uid, err)
	}

	s.Logger.Debug("push delivered", zap.String("uid", uid), zap.String("title", title))
	return nil
}
