package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/booking"
	"github.com/glutenfreeeats/booking-api/internal/model"
	"github.com/glutenfreeeats/booking-api/internal/repository"
)

// OwnerHandler bundles repositories for restaurant owners to manage
// their venues and the bookings made against them.
type OwnerHandler struct {
	RestaurantRepo *repository.RestaurantRepo
	BookingRepo    *repository.BookingRepo
	ReviewRepo     *repository.ReviewRepo
	Tracker        *booking.Tracker
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(restaurantRepo *repository.RestaurantRepo, bookingRepo *repository.BookingRepo, reviewRepo *repository.ReviewRepo, tracker *booking.Tracker) *OwnerHandler {
	if restaurantRepo == nil || bookingRepo == nil || reviewRepo == nil || tracker == nil {
		panic("nil dependency passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		RestaurantRepo: restaurantRepo,
		BookingRepo:    bookingRepo,
		ReviewRepo:     reviewRepo,
		Tracker:        tracker,
	}
}

type restaurantReq struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	Cuisine    string `json:"cuisine"`
	Address    string `json:"address"`
	GlutenFree bool   `json:"gluten_free"`
}

// CreateRestaurant handles POST /v1/restaurants and creates a new venue
// for the authenticated owner.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body restaurantReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	rst := &model.Restaurant{
		OwnerID:    ownerID,
		Name:       name,
		Image:      strings.TrimSpace(body.Image),
		Cuisine:    strings.TrimSpace(body.Cuisine),
		Address:    strings.TrimSpace(body.Address),
		GlutenFree: body.GlutenFree,
	}
	if err := h.RestaurantRepo.Create(c.Request().Context(), rst); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create restaurant"})
	}
	return c.JSON(http.StatusCreated, rst)
}

// ListMyRestaurants handles GET /v1/my-restaurants and returns the
// venues managed by the authenticated owner.
func (h *OwnerHandler) ListMyRestaurants(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.RestaurantRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateRestaurant handles PUT/PATCH /v1/restaurants/:id and updates
// the catalogue fields of a venue owned by the caller.
func (h *OwnerHandler) UpdateRestaurant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body restaurantReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx := c.Request().Context()
	if _, err := h.RestaurantRepo.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.RestaurantRepo.UpdateFields(ctx, id, ownerID, name,
		strings.TrimSpace(body.Image), strings.TrimSpace(body.Cuisine), strings.TrimSpace(body.Address), body.GlutenFree); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.RestaurantRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteRestaurant handles DELETE /v1/restaurants/:id. Venues with
// booking history cannot be deleted; the endpoint returns 409 so the
// history is never orphaned.
func (h *OwnerHandler) DeleteRestaurant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.RestaurantRepo.Delete(c.Request().Context(), id, ownerID); err != nil {
		switch err {
		case repository.ErrRestaurantNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant has bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRestaurantReviews handles GET /v1/reviews/restaurant/:id for the
// owner dashboard. Unlike the public detail endpoint it requires no
// sanitizing; owners see the same review fields customers do.
func (h *OwnerHandler) ListRestaurantReviews(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.RestaurantRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.ReviewRepo.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
