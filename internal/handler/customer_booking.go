package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/booking"
	"github.com/glutenfreeeats/booking-api/internal/model"
	"github.com/glutenfreeeats/booking-api/internal/queue"
	"github.com/glutenfreeeats/booking-api/internal/repository"
	queue_publisher "github.com/glutenfreeeats/booking-api/internal/service"

	"github.com/google/uuid"
)

// CustomerHandler groups repositories required to create bookings,
// cancel them and submit reviews on behalf of customers. All methods
// assume that JWT authentication and role validation has already been
// performed by middleware. Methods may return 401 Unauthorized if the
// user ID cannot be extracted from the context.
type CustomerHandler struct {
	BookingRepo    *repository.BookingRepo
	RestaurantRepo *repository.RestaurantRepo
	ReviewRepo     *repository.ReviewRepo
	UserRepo       *repository.UserRepo
}

// NewCustomerHandler constructs a new CustomerHandler with the provided
// repositories. All dependencies must be non-nil.
func NewCustomerHandler(bookingRepo *repository.BookingRepo, restaurantRepo *repository.RestaurantRepo, reviewRepo *repository.ReviewRepo, userRepo *repository.UserRepo) *CustomerHandler {
	if bookingRepo == nil || restaurantRepo == nil || reviewRepo == nil || userRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		BookingRepo:    bookingRepo,
		RestaurantRepo: restaurantRepo,
		ReviewRepo:     reviewRepo,
		UserRepo:       userRepo,
	}
}

type createBookingReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Date         string `json:"date"` // RFC 3339
	People       int    `json:"people"`
	Notes        string `json:"notes"`
	CustomerName string `json:"customer_name"`
	HasGuarantee bool   `json:"has_guarantee"`
}

// CreateBooking handles POST /v1/bookings. A new booking always starts
// pending with no attendance outcome; the customer-facing booking code
// is minted here. Party size must be at least 1 and the date must parse
// as RFC 3339. Returns 201 with the stored record.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
	}
	if req.People < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "people must be at least 1"})
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be RFC 3339"})
	}

	ctx := c.Request().Context()
	if _, err := h.RestaurantRepo.GetByID(ctx, req.RestaurantID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		u, err := h.UserRepo.GetByID(ctx, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
		}
		customerName = u.DisplayName
	}

	b := &model.Booking{
		RestaurantID: req.RestaurantID,
		CustomerID:   userID,
		CustomerName: customerName,
		Date:         date,
		People:       req.People,
		Notes:        strings.TrimSpace(req.Notes),
		Status:       model.StatusPending,
		Attendance:   model.AttendanceNone,
		BookingCode:  booking.NewBookingCode(),
		HasGuarantee: req.HasGuarantee,
	}
	if err := h.BookingRepo.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	// Fire-and-forget: a broker outage must not fail the booking.
	ev := queue.BookingCreatedEvent{
		EventID:        uuid.NewString(),
		BookingID:      b.ID,
		BookingCode:    b.BookingCode,
		RestaurantID:   b.RestaurantID,
		RestaurantName: b.RestaurantName,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		Date:           b.Date.UTC().Format(time.RFC3339),
		People:         b.People,
		HasGuarantee:   b.HasGuarantee,
		CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCreated(pubCtx, ev)
	}()

	return c.JSON(http.StatusCreated, b)
}

// ListMyBookings handles GET /v1/my-bookings. It returns all bookings
// created by the current user, newest first. When no bookings exist, it
// returns an empty array.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.BookingRepo.ListByCustomer(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id. It returns the booking only
// when it belongs to the current user; 404 when missing, 403 when owned
// by another customer.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.BookingRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	if b.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": b})
}

// GetBookingByCode handles GET /v1/bookings/code/:code, the lookup
// customers use when they only have the short reference code.
func (h *CustomerHandler) GetBookingByCode(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}
	b, err := h.BookingRepo.GetByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	if b.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": b})
}

// CancelBooking handles DELETE /v1/bookings/:id. Customers may cancel
// their own bookings while still pending; the record is kept and
// transitioned to cancelled so history stays intact. Returns 200 with
// the updated record, 404 when missing, 403 when not the caller's, and
// 409 when the lifecycle forbids the transition.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	if b.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := b.ApplyStatus(model.StatusCancelled); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking can no longer be cancelled"})
	}
	status := model.StatusCancelled
	updated, err := h.BookingRepo.Update(ctx, id, repository.BookingUpdate{Status: &status})
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

type submitReviewReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	BookingID    uint64 `json:"booking_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	ReviewCode   string `json:"review_code"`
}

// SubmitReview handles POST /v1/reviews. A review is marked verified
// only when the supplied review code matches the code minted on the
// booking's attendance confirmation and the booking belongs to the
// caller. Each booking can back at most one review. The review insert
// and the restaurant rating aggregate update share one transaction.
func (h *CustomerHandler) SubmitReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req submitReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if _, err := h.RestaurantRepo.GetByID(ctx, req.RestaurantID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	verified := false
	reviewCode := strings.TrimSpace(req.ReviewCode)
	if reviewCode != "" {
		if req.BookingID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id is required with review_code"})
		}
		b, err := h.BookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
		}
		if b.CustomerID != userID || b.RestaurantID != req.RestaurantID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		if b.RestaurantReviewCode == "" || b.RestaurantReviewCode != reviewCode {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review code"})
		}
		verified = true
	}

	u, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	tx, err := h.ReviewRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if verified {
		exists, err := h.ReviewRepo.ExistsForBookingTx(ctx, tx, req.BookingID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check reviews"})
		}
		if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "review already submitted for this booking"})
		}
	}

	rev := &model.Review{
		RestaurantID: req.RestaurantID,
		CustomerID:   userID,
		CustomerName: u.DisplayName,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		Verified:     verified,
	}
	if verified {
		rev.BookingID = req.BookingID
	}
	if err := h.ReviewRepo.CreateTx(ctx, tx, rev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	if err := h.RestaurantRepo.ApplyReviewTx(ctx, tx, req.RestaurantID, req.Rating); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update rating"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{"item": rev})
}
