package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/booking"
	"github.com/iliyamo/train-station-booking/internal/config"
	"github.com/iliyamo/train-station-booking/internal/database"
	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
	"github.com/iliyamo/train-station-booking/internal/queue"
	"github.com/iliyamo/train-station-booking/internal/repository"
	"github.com/iliyamo/train-station-booking/internal/router"
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

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	trains := repository.NewTrainRepo(db)
	stations := repository.NewStationRepo(db)
	routes := repository.NewRouteRepo(db)
	crew := repository.NewCrewRepo(db)
	journeys := repository.NewJourneyRepo(db)
	orders := repository.NewOrderRepo(db)

	booker := booking.NewBooker(db, journeys, orders)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	adminH := handler.NewAdminHandler(trains, stations, routes, crew, journeys)
	journeyH := handler.NewJourneyHandler(journeys)
	bookingH := handler.NewBookingHandler(booker, orders)

	e := echo.New()

	// Rate limit everything; cache successful GET responses.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterCustomer(e, adminH, journeyH, bookingH, cfg.JWTSecret)

	// Background consumer mirrors committed orders into logs/order.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
