package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/RAJESH7500/reservation-app/internal/config"     // Internal config loader
	"github.com/RAJESH7500/reservation-app/internal/database"   // MySQL pool setup
	"github.com/RAJESH7500/reservation-app/internal/handler"    // HTTP handlers
	"github.com/RAJESH7500/reservation-app/internal/middleware" // Cache and rate limit middleware
	"github.com/RAJESH7500/reservation-app/internal/queue"      // Seating event publisher and consumer
	"github.com/RAJESH7500/reservation-app/internal/repository" // Persistence layer
	"github.com/RAJESH7500/reservation-app/internal/router"     // Route registration
	"github.com/RAJESH7500/reservation-app/internal/service"    // Reservation lifecycle and table assignment
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	reservationRepo := repository.NewReservationRepo(db)
	tableRepo := repository.NewTableRepo(db)

	reservationSvc := service.NewReservationService(reservationRepo)
	tableSvc := service.NewTableService(tableRepo, reservationRepo, queue.NewPublisher())

	// Redis is optional: when unreachable the middleware degrade to
	// pass-through and the API keeps serving.
	rdb := config.NewRedisClient()
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e,
		handler.NewReservationHandler(reservationSvc),
		handler.NewTableHandler(tableSvc),
		cache, limit,
	)

	// Background consumer writes seating activity to logs/seating.log.
	go func() {
		if err := queue.StartSeatingConsumer(); err != nil {
			log.Printf("seating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
