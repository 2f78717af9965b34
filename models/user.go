package models

import "time"

// User is the local profile mirror of a Firebase identity. It supplies contact
// defaults for bookings and the push-notification target.
type User struct {
	UID       string    `bson:"uid" json:"uid"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
