package models

// BookingRequest is the caller-supplied payload for creating a booking. UserID is
// optional; when present it must match the authenticated caller.
type BookingRequest struct {
	UserID           string           `json:"userId,omitempty"`
	Type             BookingType      `json:"type" binding:"required"`
	ItemID           string           `json:"itemId" binding:"required"`
	ItemTitle        string           `json:"itemTitle" binding:"required"`
	ItemImage        string           `json:"itemImage,omitempty"`
	CustomerName     string           `json:"customerName" binding:"required"`
	CustomerEmail    string           `json:"customerEmail" binding:"required,email"`
	CustomerPhone    string           `json:"customerPhone" binding:"required"`
	StartDate        string           `json:"startDate" binding:"required"`
	EndDate          string           `json:"endDate,omitempty"`
	Participants     int              `json:"participants" binding:"required,min=1"`
	ParticipantList  []Participant    `json:"participantList,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact,omitempty"`
	SpecialRequests  string           `json:"specialRequests,omitempty"`
	PaymentID        string           `json:"paymentId" binding:"required"`
	TotalAmount      float64          `json:"totalAmount" binding:"required,gt=0"`
	Currency         string           `json:"currency,omitempty"`
	PaymentStatus    string           `json:"paymentStatus,omitempty"`
}

// StatusUpdateRequest carries a requested lifecycle transition.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
