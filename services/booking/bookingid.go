package booking

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"horizon/models"
)

const idPrefix = "HR"

const randSuffixLen = 5

var typeCodes = map[models.BookingType]string{
	models.BookingTypeTour:       "BT",
	models.BookingTypeVehicle:    "BV",
	models.BookingTypeCurated:    "BC",
	models.BookingTypeExperience: "BE",
}

// NewBookingID generates a human-legible booking identifier of the form
// HR-{type}-{time}-{random}, e.g. HR-BT-LZ3K9QX2-7A4FQ. The millisecond time
// component plus a 5-character base-36 suffix makes collisions negligible
// without a round trip to the store.
func NewBookingID(t models.BookingType) string {
	code, ok := typeCodes[t]
	if !ok {
		code = "BX"
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s-%s", idPrefix, code, ts, randBase36(randSuffixLen))
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; a time-derived
		// suffix still keeps the id unique enough to not block the booking.
		seed := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(seed >> (8 * (i % 8)))
		}
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out)
}
