package handlers

import (
	firebaseAuth "firebase.google.com/go/v4/auth"
)

// HandlerBundle aggregates all HTTP handlers plus the Firebase auth client
// the route middleware needs, so main.go can wire routes in one call.
type HandlerBundle struct {
	Booking   *BookingHandler
	Payment   *PaymentHandler
	Analytics *AnalyticsHandler
	User      *UserHandler

	AuthClient *firebaseAuth.Client
}
