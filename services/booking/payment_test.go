package booking

import (
	"testing"

	"horizon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignatureAcceptsValidSignature(t *testing.T) {
	svc := NewRazorpayService("rzp_test_key", "secret", testLogger())

	v := models.PaymentVerification{
		OrderID:   "order_Nf29abc",
		PaymentID: "pay_Nf29xyz",
	}
	v.Signature = paymentSignature(v.OrderID, v.PaymentID, "secret")

	require.NoError(t, svc.VerifySignature(v))
}

func TestAmountSubunitsRoundsInsteadOfTruncating(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{19.99, 1999},
		{4.35, 435},
		{1840.50, 184050},
		{0.01, 1},
		{100, 10000},
		{0.005, 1},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, amountSubunits(tc.amount), "amount %.4f", tc.amount)
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	svc := NewRazorpayService("rzp_test_key", "secret", testLogger())

	v := models.PaymentVerification{
		OrderID:   "order_Nf29abc",
		PaymentID: "pay_Nf29xyz",
	}
	v.Signature = paymentSignature(v.OrderID, v.PaymentID, "secret")

	tampered := v
	tampered.PaymentID = "pay_other"
	assert.ErrorIs(t, svc.VerifySignature(tampered), ErrBadSignature)

	wrongSecret := v
	wrongSecret.Signature = paymentSignature(v.OrderID, v.PaymentID, "not-the-secret")
	assert.ErrorIs(t, svc.VerifySignature(wrongSecret), ErrBadSignature)

	empty := v
	empty.Signature = ""
	assert.ErrorIs(t, svc.VerifySignature(empty), ErrBadSignature)
}
