// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse and search restaurants without requiring
// authentication. Sensitive fields (owner IDs, timestamps) are filtered
// from responses.

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing. It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
	RestaurantRepo *repository.RestaurantRepo
	ReviewRepo     *repository.ReviewRepo
}

// PublicRestaurant represents a restaurant exposed via the public API.
// It contains only safe fields.
type PublicRestaurant struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Address     string  `json:"address,omitempty"`
	GlutenFree  bool    `json:"gluten_free"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// GetRestaurants returns the full restaurant catalogue. Response JSON
// contains an "items" array of PublicRestaurant.
func (h *PublicHandler) GetRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	restaurants, err := h.RestaurantRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, PublicRestaurant{
			ID: r.ID, Name: r.Name, Image: r.Image, Cuisine: r.Cuisine,
			Address: r.Address, GlutenFree: r.GlutenFree,
			Rating: r.Rating, ReviewCount: r.ReviewCount,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRestaurant returns details of a single restaurant, including its
// most recent reviews.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	r, err := h.RestaurantRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.ReviewRepo.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": PublicRestaurant{
			ID: r.ID, Name: r.Name, Image: r.Image, Cuisine: r.Cuisine,
			Address: r.Address, GlutenFree: r.GlutenFree,
			Rating: r.Rating, ReviewCount: r.ReviewCount,
		},
		"reviews": reviews,
	})
}

// SearchRestaurants handles GET /v1/search/restaurants. Supported query
// parameters: q (matches name or cuisine, case-insensitive) and
// gluten_free=true|false. With no parameters it degenerates to the
// full list.
func (h *PublicHandler) SearchRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	query := strings.TrimSpace(c.QueryParam("q"))

	var glutenFree *bool
	if raw := strings.TrimSpace(c.QueryParam("gluten_free")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gluten_free value"})
		}
		glutenFree = &v
	}

	restaurants, err := h.RestaurantRepo.Search(ctx, query, glutenFree)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, PublicRestaurant{
			ID: r.ID, Name: r.Name, Image: r.Image, Cuisine: r.Cuisine,
			Address: r.Address, GlutenFree: r.GlutenFree,
			Rating: r.Rating, ReviewCount: r.ReviewCount,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
