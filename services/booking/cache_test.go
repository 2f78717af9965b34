package booking

import (
	"testing"
	"time"

	"horizon/models"

	"github.com/stretchr/testify/assert"
)

func TestTripCacheHitAndMiss(t *testing.T) {
	c := NewTripCache(time.Minute)

	_, ok := c.Get("user-1")
	assert.False(t, ok)

	trips := []models.TripIndexEntry{{BookingID: "HR-BT-A-AAAAA", UserID: "user-1"}}
	c.Set("user-1", trips)

	got, ok := c.Get("user-1")
	assert.True(t, ok)
	assert.Equal(t, trips, got)

	_, ok = c.Get("user-2")
	assert.False(t, ok)
}

func TestTripCacheExpiry(t *testing.T) {
	c := NewTripCache(10 * time.Millisecond)
	c.Set("user-1", []models.TripIndexEntry{{BookingID: "HR-BT-A-AAAAA"}})

	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("user-1")
	assert.False(t, ok)
}

func TestTripCacheInvalidate(t *testing.T) {
	c := NewTripCache(time.Minute)
	c.Set("user-1", []models.TripIndexEntry{{BookingID: "a"}})
	c.Set("user-2", []models.TripIndexEntry{{BookingID: "b"}})

	c.Invalidate("user-1")
	_, ok := c.Get("user-1")
	assert.False(t, ok)
	_, ok = c.Get("user-2")
	assert.True(t, ok)

	c.InvalidateAll()
	_, ok = c.Get("user-2")
	assert.False(t, ok)
}

func TestTripCacheNilSafe(t *testing.T) {
	var c *TripCache

	_, ok := c.Get("user-1")
	assert.False(t, ok)
	c.Set("user-1", nil)
	c.Invalidate("user-1")
	c.InvalidateAll()
}
