package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"horizon/models"
	"horizon/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned results per method.
type stubBookingService struct {
	createBooking *models.Booking
	createErr     error
	getBooking    *models.Booking
	getErr        error
	trips         []models.TripIndexEntry
	tripsErr      error
	statusErr     error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, callerUID string, req models.BookingRequest) (*models.Booking, error) {
	return s.createBooking, s.createErr
}

func (s *stubBookingService) UpdateBookingStatus(ctx context.Context, callerUID, bookingID string, status models.BookingStatus) error {
	return s.statusErr
}

func (s *stubBookingService) GetBookingByID(ctx context.Context, callerUID, bookingID string) (*models.Booking, error) {
	return s.getBooking, s.getErr
}

func (s *stubBookingService) GetUserBookings(ctx context.Context, userID string) ([]models.TripIndexEntry, error) {
	return s.trips, s.tripsErr
}

func (s *stubBookingService) SubscribeToUserBookings(ctx context.Context, userID string, fn func([]models.Booking)) (func(), error) {
	return func() {}, nil
}

func (s *stubBookingService) ReplayPending(ctx context.Context, recordID string) error {
	return nil
}

func bookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, nil, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "user-1") })
	r.POST("/api/bookings", h.CreateBooking)
	r.GET("/api/bookings", h.ListMyTrips)
	r.GET("/api/bookings/:id", h.GetBooking)
	r.PATCH("/api/bookings/:id/status", h.UpdateStatus)
	return r
}

func validCreateBody() string {
	return `{
		"type": "tour",
		"itemId": "tour-serengeti-5d",
		"itemTitle": "Serengeti Classic Safari",
		"customerName": "Asha Mwangi",
		"customerEmail": "asha@example.com",
		"customerPhone": "+254700000001",
		"startDate": "2026-09-14",
		"participants": 2,
		"paymentId": "pay_Nf29xkQ8XaY1",
		"totalAmount": 1840.50
	}`
}

func TestCreateBookingEndpointSuccess(t *testing.T) {
	svc := &stubBookingService{
		createBooking: &models.Booking{ID: "HR-BT-X-AAAAA", UserID: "user-1", Status: models.BookingStatusConfirmed},
	}
	r := bookingRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "HR-BT-X-AAAAA", body.Booking.ID)
}

func TestCreateBookingEndpointRejectsBadPayload(t *testing.T) {
	r := bookingRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"type":"tour"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthenticated", booking.ErrUnauthenticated, http.StatusUnauthorized},
		{"identity mismatch", booking.ErrIdentityMismatch, http.StatusForbidden},
		{"not found", booking.ErrNotFound, http.StatusNotFound},
		{"commit exhausted", &booking.CommitFailedError{Attempts: 5}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := bookingRouter(&stubBookingService{createErr: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validCreateBody()))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestCommitFailureExposesPendingRef(t *testing.T) {
	err := &booking.CommitFailedError{Attempts: 5, PendingRef: "pending-1"}
	r := bookingRouter(&stubBookingService{createErr: err})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["retryable"])
	assert.Equal(t, "pending-1", body["pendingRef"])
	assert.Equal(t, string(models.SyncStatePendingSync), body["state"])
}

func TestUpdateStatusEndpointMapsInvalidTransition(t *testing.T) {
	r := bookingRouter(&stubBookingService{statusErr: booking.ErrInvalidTransition})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/HR-BT-X-AAAAA/status",
		strings.NewReader(`{"status":"cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOfferLatestEvictsOldestWhenFull(t *testing.T) {
	updates := make(chan []models.Booking, 2)

	offerLatest(updates, []models.Booking{{ID: "stale-1"}})
	offerLatest(updates, []models.Booking{{ID: "stale-2"}})
	offerLatest(updates, []models.Booking{{ID: "stale-3"}})
	offerLatest(updates, []models.Booking{{ID: "newest"}})

	// Drain: a full buffer must still end on the most recent snapshot.
	var last []models.Booking
	for {
		select {
		case last = <-updates:
			continue
		default:
		}
		break
	}
	require.NotNil(t, last)
	assert.Equal(t, "newest", last[0].ID)
}

func TestListMyTripsReturnsEmptyArrayNotNull(t *testing.T) {
	r := bookingRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"trips":[]`)
}
