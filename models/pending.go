package models

import "time"

// SyncState is the degraded-mode lifecycle of a booking that could not be
// committed on the first pass.
type SyncState string

const (
	SyncStateCommitted   SyncState = "Committed"
	SyncStatePendingSync SyncState = "PendingSync"
	SyncStateFailed      SyncState = "Failed"
)

// PendingSyncRecord captures a booking payload whose commit exhausted its retries.
// A background worker replays PendingSync records through the normal transactional
// path; until that succeeds the record is never visible as a committed booking and
// never contributes to analytics.
type PendingSyncRecord struct {
	ID         string         `bson:"id" json:"id"`
	BookingID  string         `bson:"bookingId" json:"bookingId"`
	UserID     string         `bson:"userId" json:"userId"`
	Payload    BookingRequest `bson:"payload" json:"payload"`
	State      SyncState      `bson:"state" json:"state"`
	Attempts   int            `bson:"attempts" json:"attempts"`
	LastError  string         `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CapturedAt time.Time      `bson:"capturedAt" json:"capturedAt"`
	UpdatedAt  time.Time      `bson:"updatedAt" json:"updatedAt"`
}
