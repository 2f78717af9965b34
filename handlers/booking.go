package handlers

import (
	"errors"
	"io"
	"net/http"

	"horizon/middleware"
	"horizon/models"
	"horizon/services/booking"
	"horizon/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
	Voucher booking.VoucherService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, voucher booking.VoucherService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Voucher: voucher, Logger: logger}
}

// CreateBooking commits a new booking for the authenticated caller.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	uid := middleware.CallerUID(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), uid, req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GetBooking returns one of the caller's bookings by id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	uid := middleware.CallerUID(c)
	bookingID := c.Param("id")

	b, err := h.Service.GetBookingByID(c.Request.Context(), uid, bookingID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListMyTrips returns the caller's trip listing (cached read).
func (h *BookingHandler) ListMyTrips(c *gin.Context) {
	uid := middleware.CallerUID(c)

	trips, err := h.Service.GetUserBookings(c.Request.Context(), uid)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	if trips == nil {
		trips = []models.TripIndexEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// UpdateStatus transitions a booking's lifecycle status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	uid := middleware.CallerUID(c)
	bookingID := c.Param("id")

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status payload", err.Error())
		return
	}

	if err := h.Service.UpdateBookingStatus(c.Request.Context(), uid, bookingID, req.Status); err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": bookingID, "status": req.Status})
}

// GenerateVoucher renders and attaches the PDF voucher for a booking.
func (h *BookingHandler) GenerateVoucher(c *gin.Context) {
	uid := middleware.CallerUID(c)
	bookingID := c.Param("id")

	b, err := h.Service.GetBookingByID(c.Request.Context(), uid, bookingID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	url, err := h.Voucher.GenerateAndAttach(c.Request.Context(), b)
	if err != nil {
		h.Logger.Error("voucher generation failed",
			zap.String("bookingId", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate voucher", "Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": bookingID, "voucherUrl": url})
}

// StreamBookings pushes the caller's live booking list over SSE. Bursts of
// changes are throttled service-side, so clients see at most one event per
// throttle interval.
func (h *BookingHandler) StreamBookings(c *gin.Context) {
	uid := middleware.CallerUID(c)

	updates := make(chan []models.Booking, 8)
	unsubscribe, err := h.Service.SubscribeToUserBookings(c.Request.Context(), uid, func(bookings []models.Booking) {
		offerLatest(updates, bookings)
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case bookings := <-updates:
			c.SSEvent("bookings", bookings)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// offerLatest queues a snapshot for the SSE writer, evicting the oldest queued
// snapshot when the buffer is full. A slow client skips intermediate states but
// always ends on the newest one.
func offerLatest(updates chan []models.Booking, bookings []models.Booking) {
	for {
		select {
		case updates <- bookings:
			return
		default:
			select {
			case <-updates:
			default:
			}
		}
	}
}

// respondBookingError maps the service error taxonomy onto HTTP statuses. Every
// failure is distinguishable as "fix your input" or "try again".
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var cf *booking.CommitFailedError
	switch {
	case errors.Is(err, booking.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in required", "retryable": false})
	case errors.Is(err, booking.ErrIdentityMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "booking owner does not match authenticated user", "retryable": false})
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found", "retryable": false})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": false})
	case errors.As(err, &cf):
		resp := gin.H{"error": "could not commit booking, please try again", "retryable": true}
		if cf.PendingRef != "" {
			resp["state"] = string(models.SyncStatePendingSync)
			resp["pendingRef"] = cf.PendingRef
		}
		c.JSON(http.StatusServiceUnavailable, resp)
	default:
		h.Logger.Error("booking request failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "retryable": false})
	}
}
