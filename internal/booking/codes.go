// Package booking holds the pure parts of the booking lifecycle: code
// generation and the derived views (attendance monitor, notification
// surfacing, grouping).  Everything here is computed from a slice of
// bookings and an instant; nothing talks to the database.
package booking

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lithammer/shortuuid/v3"
)

// bookingCodeLen is the length of the customer-facing reference code
// printed on the booking confirmation screen.
const bookingCodeLen = 6

// NewBookingCode returns a short uppercase reference code for a new
// booking.  The code is derived from a shortuuid so it stays unique
// without a round trip to the database.
func NewBookingCode() string {
	s := strings.ToUpper(shortuuid.New())
	return s[:bookingCodeLen]
}

// NewReviewCode returns the 4-digit code handed to the customer when
// their attendance is confirmed, redeemable for a verified review.
// Uniform over 1000..9999; no collision check, since codes are only
// ever compared against the single booking they were minted for.
func NewReviewCode() string {
	return fmt.Sprintf("%04d", 1000+rand.Intn(9000))
}
