package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/glutenfreeeats/booking-api/internal/booking"
	"github.com/glutenfreeeats/booking-api/internal/config"
	"github.com/glutenfreeeats/booking-api/internal/database"
	"github.com/glutenfreeeats/booking-api/internal/handler"
	"github.com/glutenfreeeats/booking-api/internal/middleware"
	"github.com/glutenfreeeats/booking-api/internal/queue"
	"github.com/glutenfreeeats/booking-api/internal/repository"
	"github.com/glutenfreeeats/booking-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis: unavailable, rate limiting and response cache disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	restaurantRepo := repository.NewRestaurantRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	tracker := booking.NewTracker()

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := &handler.PublicHandler{RestaurantRepo: restaurantRepo, ReviewRepo: reviewRepo}
	customerHandler := handler.NewCustomerHandler(bookingRepo, restaurantRepo, reviewRepo, userRepo)
	ownerHandler := handler.NewOwnerHandler(restaurantRepo, bookingRepo, reviewRepo, tracker)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)
	router.RegisterOwnerBookings(e, ownerHandler, cfg.JWTSecret)

	// Background consumer keeps its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
			log.Printf("booking-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
