package router

// This file registers owner routes for managing bookings. The routes
// defined here let owners work the booking lifecycle (confirm, cancel,
// attendance) and read the dashboard views derived from it. They are
// separate from the generic owner routes to keep concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/handler"
	"github.com/glutenfreeeats/booking-api/internal/middleware"
)

// RegisterOwnerBookings registers routes that allow owners to manage
// bookings. All routes are mounted under /v1 and require a JWT token
// as well as the OWNER role.
func RegisterOwnerBookings(e *echo.Echo, h *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)
	// Booking feed for one restaurant, creation order.
	g.GET("/restaurants/:id/bookings", h.ListRestaurantBookings)
	// Grouped-by-day read model for the calendar view.
	g.GET("/restaurants/:id/bookings/by-date", h.ListBookingsByDate)
	// Attendance worklists: today's undecided visits plus the overdue advisory.
	g.GET("/restaurants/:id/bookings/attendance", h.ListAttendanceDue)
	// Pending bookings not yet surfaced to this owner.
	g.GET("/restaurants/:id/notifications", h.ListNotifications)
	g.POST("/restaurants/:id/notifications/read", h.MarkNotificationsRead)

	// Lifecycle transitions.
	g.POST("/bookings/:id/confirm", h.ConfirmBooking)
	g.POST("/bookings/:id/cancel", h.CancelBooking)
	g.POST("/bookings/:id/attendance", h.RecordAttendance)
}
