package models

import "time"

// BookingType enumerates the kinds of purchasable items.
type BookingType string

const (
	BookingTypeTour       BookingType = "tour"
	BookingTypeVehicle    BookingType = "vehicle"
	BookingTypeCurated    BookingType = "curated"
	BookingTypeExperience BookingType = "experience"
)

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Participant is one traveller on a booking.
type Participant struct {
	Name     string `bson:"name" json:"name"`
	Age      int    `bson:"age" json:"age"`
	IDNumber string `bson:"idNumber,omitempty" json:"idNumber,omitempty"`
}

// EmergencyContact is the person to reach if something goes wrong on a trip.
type EmergencyContact struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

// Booking is the durable record of a purchase. ID, UserID, Type, PaymentID and
// TotalAmount are immutable once committed; Status, UpdatedAt and VoucherURL may
// change afterwards.
type Booking struct {
	ID               string           `bson:"id" json:"id"`
	UserID           string           `bson:"userId" json:"userId"`
	Type             BookingType      `bson:"type" json:"type"`
	ItemID           string           `bson:"itemId" json:"itemId"`
	ItemTitle        string           `bson:"itemTitle" json:"itemTitle"`
	ItemImage        string           `bson:"itemImage,omitempty" json:"itemImage,omitempty"`
	CustomerName     string           `bson:"customerName" json:"customerName"`
	CustomerEmail    string           `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone    string           `bson:"customerPhone" json:"customerPhone"`
	StartDate        string           `bson:"startDate" json:"startDate"` // "YYYY-MM-DD"
	EndDate          string           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Participants     int              `bson:"participants" json:"participants"`
	ParticipantList  []Participant    `bson:"participantList,omitempty" json:"participantList,omitempty"`
	EmergencyContact EmergencyContact `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	SpecialRequests  string           `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	PaymentID        string           `bson:"paymentId" json:"paymentId"`
	TotalAmount      float64          `bson:"totalAmount" json:"totalAmount"`
	Currency         string           `bson:"currency" json:"currency"`
	PaymentStatus    string           `bson:"paymentStatus" json:"paymentStatus"`
	Status           BookingStatus    `bson:"status" json:"status"`
	VoucherURL       string           `bson:"voucherUrl,omitempty" json:"voucherUrl,omitempty"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// TripIndexEntry is the denormalized per-user projection of a Booking, kept for
// fast "my trips" listing. It is written in the same transaction as the Booking
// and always carries the same status.
type TripIndexEntry struct {
	BookingID   string        `bson:"bookingId" json:"bookingId"`
	UserID      string        `bson:"userId" json:"userId"`
	Type        BookingType   `bson:"type" json:"type"`
	ItemTitle   string        `bson:"itemTitle" json:"itemTitle"`
	ItemImage   string        `bson:"itemImage,omitempty" json:"itemImage,omitempty"`
	StartDate   string        `bson:"startDate" json:"startDate"`
	EndDate     string        `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status      BookingStatus `bson:"status" json:"status"`
	TotalAmount float64       `bson:"totalAmount" json:"totalAmount"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// TripIndexEntryFor derives the index projection from a booking. The projection is
// computed from the in-memory booking being written, never re-read from the store.
func TripIndexEntryFor(b *Booking) TripIndexEntry {
	return TripIndexEntry{
		BookingID:   b.ID,
		UserID:      b.UserID,
		Type:        b.Type,
		ItemTitle:   b.ItemTitle,
		ItemImage:   b.ItemImage,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Status:      b.Status,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ValidBookingType reports whether t is one of the known booking types.
func ValidBookingType(t BookingType) bool {
	switch t {
	case BookingTypeTour, BookingTypeVehicle, BookingTypeCurated, BookingTypeExperience:
		return true
	}
	return false
}

// ValidBookingStatus reports whether s is one of the known lifecycle states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}
