package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/handler"
)

// CreateBooking rejects malformed input before touching any
// repository, so these cases run against an empty handler.
func TestCreateBookingValidation(t *testing.T) {
	e := echo.New()
	h := &handler.CustomerHandler{}

	post := func(t *testing.T, body string, authenticated bool) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if authenticated {
			c.Set("user_id", uint64(1))
		}
		require.NoError(t, h.CreateBooking(c))
		return rec
	}

	t.Run("zero people rejected", func(t *testing.T) {
		rec := post(t, `{"restaurant_id":1,"date":"2026-09-01T19:00:00Z","people":0}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "people")
	})

	t.Run("negative people rejected", func(t *testing.T) {
		rec := post(t, `{"restaurant_id":1,"date":"2026-09-01T19:00:00Z","people":-3}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "people")
	})

	t.Run("unparseable date rejected", func(t *testing.T) {
		rec := post(t, `{"restaurant_id":1,"date":"tonight at eight","people":2}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "date")
	})

	t.Run("missing restaurant rejected", func(t *testing.T) {
		rec := post(t, `{"date":"2026-09-01T19:00:00Z","people":2}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "restaurant_id")
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		rec := post(t, `{"restaurant_id":1,"date":"2026-09-01T19:00:00Z","people":2}`, false)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// SubmitReview boundary checks also run before any repository call.
func TestSubmitReviewValidation(t *testing.T) {
	e := echo.New()
	h := &handler.CustomerHandler{}

	post := func(t *testing.T, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/v1/reviews", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", uint64(1))
		require.NoError(t, h.SubmitReview(c))
		return rec
	}

	t.Run("rating out of range", func(t *testing.T) {
		for _, rating := range []string{"0", "6", "-1"} {
			rec := post(t, `{"restaurant_id":1,"rating":`+rating+`}`)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), "rating")
		}
	})

	t.Run("missing restaurant rejected", func(t *testing.T) {
		rec := post(t, `{"rating":5}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "restaurant_id")
	})
}
