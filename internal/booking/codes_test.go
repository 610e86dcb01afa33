package booking_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/booking"
)

func TestNewBookingCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := booking.NewBookingCode()
		require.Len(t, code, 6)
		require.Equal(t, strings.ToUpper(code), code)
	}
}

func TestNewReviewCode(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := booking.NewReviewCode()
		require.Len(t, code, 4)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}
