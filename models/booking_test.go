package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTripIndexEntryForMirrorsBooking(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	b := &Booking{
		ID:          "HR-BV-LZ3K9QX2-7A4FQ",
		UserID:      "user-1",
		Type:        BookingTypeVehicle,
		ItemTitle:   "Land Cruiser 4x4",
		ItemImage:   "https://cdn.example.com/lc.jpg",
		StartDate:   "2026-09-14",
		EndDate:     "2026-09-19",
		Status:      BookingStatusConfirmed,
		TotalAmount: 420,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	e := TripIndexEntryFor(b)

	assert.Equal(t, b.ID, e.BookingID)
	assert.Equal(t, b.UserID, e.UserID)
	assert.Equal(t, b.Type, e.Type)
	assert.Equal(t, b.ItemTitle, e.ItemTitle)
	assert.Equal(t, b.StartDate, e.StartDate)
	assert.Equal(t, b.Status, e.Status)
	assert.Equal(t, b.TotalAmount, e.TotalAmount)
	assert.Equal(t, b.CreatedAt, e.CreatedAt)
}

func TestValidBookingType(t *testing.T) {
	for _, typ := range []BookingType{BookingTypeTour, BookingTypeVehicle, BookingTypeCurated, BookingTypeExperience} {
		assert.True(t, ValidBookingType(typ))
	}
	assert.False(t, ValidBookingType("cruise"))
	assert.False(t, ValidBookingType(""))
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted} {
		assert.True(t, ValidBookingStatus(s))
	}
	assert.False(t, ValidBookingStatus("archived"))
}
