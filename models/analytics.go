package models

import "time"

// AnalyticsTotalsID is the fixed id of the shared counters document.
const AnalyticsTotalsID = "totals"

// AnalyticsTotals holds the running aggregate counters. The document is mutated
// exclusively through atomic increments; TotalRevenue never decreases. Cancelled
// bookings bump CancelledBookings without touching the revenue sums.
type AnalyticsTotals struct {
	ID                string                  `bson:"id" json:"id"`
	TotalRevenue      float64                 `bson:"totalRevenue" json:"totalRevenue"`
	TotalBookings     int64                   `bson:"totalBookings" json:"totalBookings"`
	BookingsByType    map[BookingType]int64   `bson:"bookingsByType" json:"bookingsByType"`
	RevenueByType     map[BookingType]float64 `bson:"revenueByType" json:"revenueByType"`
	CancelledBookings int64                   `bson:"cancelledBookings" json:"cancelledBookings"`
	UpdatedAt         time.Time               `bson:"updatedAt" json:"updatedAt"`
}
