package handlers

import (
	"errors"
	"net/http"

	"horizon/models"
	"horizon/services/booking"
	"horizon/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Service booking.PaymentService
	Logger  *zap.Logger
}

func NewPaymentHandler(svc booking.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

// CreateOrder opens a gateway order for the client checkout flow.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.PaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid order payload", err.Error())
		return
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("payment order failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to create payment order", "Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// VerifyPayment checks the checkout result signature before the client submits
// the booking.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.PaymentVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid verification payload", err.Error())
		return
	}

	if err := h.Service.VerifySignature(req); err != nil {
		if errors.Is(err, booking.ErrBadSignature) {
			c.JSON(http.StatusUnauthorized, gin.H{"verified": false})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "verification failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true, "paymentId": req.PaymentID})
}
