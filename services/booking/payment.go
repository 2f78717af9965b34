package booking

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"horizon/models"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// ErrBadSignature rejects a checkout result whose signature does not match.
var ErrBadSignature = errors.New("payment signature verification failed")

// PaymentService fronts the payment gateway. The coordinator itself never talks
// to the gateway; it consumes the verified payment id as an opaque token.
type PaymentService interface {
	CreateOrder(ctx context.Context, req models.PaymentOrderRequest) (*models.PaymentOrder, error)
	VerifySignature(v models.PaymentVerification) error
}

// RazorpayService is the Razorpay-backed PaymentService.
type RazorpayService struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	logger    *zap.Logger
}

func NewRazorpayService(keyID, keySecret string, logger *zap.Logger) *RazorpayService {
	return &RazorpayService{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger,
	}
}

// CreateOrder opens a gateway order for the client checkout flow. Razorpay
// wants amounts in currency subunits.
func (s *RazorpayService) CreateOrder(ctx context.Context, req models.PaymentOrderRequest) (*models.PaymentOrder, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = "rcpt-" + uuid.New().String()
	}

	data := map[string]interface{}{
		"amount":   amountSubunits(req.Amount),
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, errors.New("gateway returned no order id")
	}

	s.logger.Info("payment order created",
		zap.String("orderId", orderID), zap.Float64("amount", req.Amount))

	return &models.PaymentOrder{
		OrderID:  orderID,
		Amount:   req.Amount,
		Currency: currency,
		Receipt:  receipt,
		KeyID:    s.keyID,
	}, nil
}

// VerifySignature checks the checkout result against the gateway's documented
// scheme: hex(HMAC-SHA256(orderID + "|" + paymentID, keySecret)).
func (s *RazorpayService) VerifySignature(v models.PaymentVerification) error {
	expected := paymentSignature(v.OrderID, v.PaymentID, s.keySecret)
	if !hmac.Equal([]byte(expected), []byte(v.Signature)) {
		s.logger.Warn("payment signature rejected", zap.String("orderId", v.OrderID))
		return ErrBadSignature
	}
	return nil
}

// amountSubunits converts a major-unit amount to gateway subunits. Rounding,
// not truncation: most decimal amounts have no exact float representation and
// plain conversion would undercharge (19.99 -> 1998).
func amountSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func paymentSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
