package router

import (
	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/handler"
	"github.com/glutenfreeeats/booking-api/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1. All
// routes require a valid JWT and the CUSTOMER role. Customers can
// create bookings, list and inspect their own, cancel pending ones,
// look a booking up by its short code and submit reviews.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.ListMyBookings)
	// Register the code lookup before the numeric id route so "code"
	// is never parsed as an id.
	g.GET("/bookings/code/:code", h.GetBookingByCode)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)

	// Reviews; verified when redeemed with the code minted on
	// attendance confirmation.
	g.POST("/reviews", h.SubmitReview)
}
