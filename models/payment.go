package models

// PaymentOrderRequest asks the gateway for a new checkout order.
type PaymentOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency,omitempty"`
	Receipt  string  `json:"receipt,omitempty"`
}

// PaymentOrder is the gateway order handed back to the client checkout flow.
type PaymentOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt,omitempty"`
	KeyID    string  `json:"keyId"`
}

// PaymentVerification carries the checkout result for signature verification.
type PaymentVerification struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
