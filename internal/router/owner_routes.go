package router

import (
	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/handler"
	"github.com/glutenfreeeats/booking-api/internal/middleware"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Restaurants ----
	g.POST("/restaurants", o.CreateRestaurant)
	// NOTE: Listing all restaurants is handled by the public browse API.
	// Owners list their own venues via /v1/my-restaurants to avoid route
	// conflicts with the public /v1/restaurants handler.
	g.GET("/my-restaurants", o.ListMyRestaurants)
	g.PUT("/restaurants/:id", o.UpdateRestaurant)
	g.PATCH("/restaurants/:id", o.UpdateRestaurant) // allow partial/semantic updates via PATCH as well
	g.DELETE("/restaurants/:id", o.DeleteRestaurant)

	// ---- Reviews ----
	g.GET("/reviews/restaurant/:id", o.ListRestaurantReviews)
}
