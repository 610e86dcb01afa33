package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/booking"
	"github.com/glutenfreeeats/booking-api/internal/model"
	"github.com/glutenfreeeats/booking-api/internal/queue"
	"github.com/glutenfreeeats/booking-api/internal/repository"
	queue_publisher "github.com/glutenfreeeats/booking-api/internal/service"
)

// ownedRestaurant parses the :id path parameter and verifies that the
// restaurant belongs to the caller. It writes the error response itself
// and returns a nil restaurant when the check fails.
func (h *OwnerHandler) ownedRestaurant(c echo.Context) (*model.Restaurant, uint64, bool) {
	ownerID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, 0, false
	}
	rst, err := h.RestaurantRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrRestaurantNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return nil, 0, false
	}
	return rst, ownerID, true
}

// ListRestaurantBookings handles GET /v1/restaurants/:id/bookings. The
// result preserves creation order, matching how the dashboard renders
// its booking feed.
func (h *OwnerHandler) ListRestaurantBookings(c echo.Context) error {
	rst, _, ok := h.ownedRestaurant(c)
	if !ok {
		return nil
	}
	items, err := h.BookingRepo.ListByRestaurant(c.Request().Context(), rst.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListBookingsByDate handles GET /v1/restaurants/:id/bookings/by-date.
// Bookings are grouped per calendar day; days come back sorted
// ascending and bookings keep creation order within each day.
func (h *OwnerHandler) ListBookingsByDate(c echo.Context) error {
	rst, _, ok := h.ownedRestaurant(c)
	if !ok {
		return nil
	}
	items, err := h.BookingRepo.ListByRestaurant(c.Request().Context(), rst.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	days, groups := booking.ByDate(items)
	out := make([]echo.Map, 0, len(days))
	for _, day := range days {
		out = append(out, echo.Map{"date": day, "bookings": groups[day]})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListAttendanceDue handles GET /v1/restaurants/:id/bookings/attendance.
// "today" lists confirmed bookings dated on the current calendar day
// still awaiting an attendance decision; "overdue" is the advisory list
// of confirmed bookings whose time passed more than an hour ago. Both
// lists are derived on every request, never stored.
func (h *OwnerHandler) ListAttendanceDue(c echo.Context) error {
	rst, _, ok := h.ownedRestaurant(c)
	if !ok {
		return nil
	}
	items, err := h.BookingRepo.ListByRestaurant(c.Request().Context(), rst.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	now := time.Now()
	return c.JSON(http.StatusOK, echo.Map{
		"today":   booking.NeedsAttendanceToday(items, now),
		"overdue": booking.NeedsAttendanceCheck(items, now),
	})
}

// ListNotifications handles GET /v1/restaurants/:id/notifications. It
// returns pending bookings the owner has not yet been shown in this
// process lifetime; the seen set is ephemeral and resets on restart so
// every session surfaces pending bookings once.
func (h *OwnerHandler) ListNotifications(c echo.Context) error {
	rst, ownerID, ok := h.ownedRestaurant(c)
	if !ok {
		return nil
	}
	items, err := h.BookingRepo.ListByRestaurant(c.Request().Context(), rst.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	unread := booking.UnreadPending(items, h.Tracker.Seen(ownerID))
	return c.JSON(http.StatusOK, echo.Map{"items": unread})
}

// MarkNotificationsRead handles POST /v1/restaurants/:id/notifications/read.
// The body carries the booking ids that were surfaced; marking an
// already-seen id is a no-op.
func (h *OwnerHandler) MarkNotificationsRead(c echo.Context) error {
	_, ownerID, ok := h.ownedRestaurant(c)
	if !ok {
		return nil
	}
	var body struct {
		BookingIDs []uint64 `json:"booking_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.BookingIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_ids is required"})
	}
	h.Tracker.MarkSeen(ownerID, body.BookingIDs...)
	return c.NoContent(http.StatusNoContent)
}

// ownedBooking loads a booking after verifying the caller owns the
// restaurant it belongs to, writing the error response on failure.
func (h *OwnerHandler) ownedBooking(c echo.Context) (*model.Booking, bool) {
	ownerID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
		return nil, false
	}
	b, err := h.BookingRepo.GetForOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
		}
		return nil, false
	}
	return b, true
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm, moving a
// pending booking to confirmed. 409 when the lifecycle forbids it.
func (h *OwnerHandler) ConfirmBooking(c echo.Context) error {
	return h.transitionBooking(c, model.StatusConfirmed)
}

// CancelBooking handles POST /v1/bookings/:id/cancel, moving a pending
// booking to cancelled. Cancelled is terminal; the record is kept.
func (h *OwnerHandler) CancelBooking(c echo.Context) error {
	return h.transitionBooking(c, model.StatusCancelled)
}

func (h *OwnerHandler) transitionBooking(c echo.Context, to model.BookingStatus) error {
	b, ok := h.ownedBooking(c)
	if !ok {
		return nil
	}
	if err := b.ApplyStatus(to); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid booking transition"})
	}
	updated, err := h.BookingRepo.Update(c.Request().Context(), b.ID, repository.BookingUpdate{Status: &to})
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// RecordAttendance handles POST /v1/bookings/:id/attendance with body
// {"present": bool}. The outcome is recorded exactly once on a
// confirmed booking: a repeat of the same outcome is a no-op answered
// with the current record, switching outcomes is a 409, and bookings
// that are not confirmed (including cancelled ones) are rejected. When
// the guest showed up a 4-digit review code is minted with the same
// update and returned so the restaurant can hand it to the guest.
func (h *OwnerHandler) RecordAttendance(c echo.Context) error {
	b, ok := h.ownedBooking(c)
	if !ok {
		return nil
	}
	var body struct {
		Present *bool `json:"present"`
	}
	if err := c.Bind(&body); err != nil || body.Present == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "present is required"})
	}
	outcome := model.AttendanceNoShow
	if *body.Present {
		outcome = model.AttendanceConfirmed
	}

	recorded, err := b.ApplyAttendance(outcome)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid attendance decision"})
	}
	if !recorded {
		// Idempotent repeat: nothing to persist, the review code
		// minted on the first confirmation stays as it is.
		return c.JSON(http.StatusOK, echo.Map{"item": b})
	}

	upd := repository.BookingUpdate{Attendance: &outcome}
	if b.MintsReviewCode(recorded) {
		code := booking.NewReviewCode()
		upd.RestaurantReviewCode = &code
	}
	updated, err := h.BookingRepo.Update(c.Request().Context(), b.ID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}

	ev := queue.AttendanceConfirmedEvent{
		EventID:        uuid.NewString(),
		BookingID:      updated.ID,
		BookingCode:    updated.BookingCode,
		RestaurantID:   updated.RestaurantID,
		RestaurantName: updated.RestaurantName,
		CustomerID:     updated.CustomerID,
		Outcome:        string(outcome),
		ReviewCode:     updated.RestaurantReviewCode,
		DecidedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishAttendanceConfirmed(pubCtx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}
