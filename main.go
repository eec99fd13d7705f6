// File: roomly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomly/config"
	"roomly/cron"
	"roomly/database"
	blackoutRepo "roomly/database/repository/blackout"
	reservationRepo "roomly/database/repository/reservation"
	roomRepo "roomly/database/repository/room"
	"roomly/handlers"
	"roomly/middleware"
	"roomly/routes"
	"roomly/services/availability"
	"roomly/services/reservation"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	rooms := roomRepo.NewMongoRoomRepo()
	reservations := reservationRepo.NewMongoReservationRepo()
	blackouts := blackoutRepo.NewMongoBlackoutRepo()

	for name, repo := range map[string]interface{ EnsureIndexes() error }{
		"rooms":        rooms,
		"reservations": reservations,
		"blackouts":    blackouts,
	} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	cache := utils.GetCacheClient()
	availabilityService := &availability.DefaultAvailabilityService{
		RoomRepo:        rooms,
		ReservationRepo: reservations,
		BlackoutRepo:    blackouts,
		Cache:           cache,
		CacheTTL:        time.Duration(config.AppConfig.AvailabilityCacheTTLSeconds) * time.Second,
	}
	reservationService := &reservation.DefaultReservationService{
		RoomRepo:        rooms,
		ReservationRepo: reservations,
		BlackoutRepo:    blackouts,
		Cache:           cache,
		Enqueuer:        cron.NewExpiryEnqueuer(),
		HoldFor:         time.Duration(config.AppConfig.PendingHoldMinutes) * time.Minute,
	}

	// background worker releasing lapsed pending holds.
	cron.InitExpiryWorker(reservationService)

	// handlers and routes.
	hb := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Reservation:  handlers.NewReservationHandler(reservationService),
		Room:         handlers.NewRoomHandler(rooms, cache),
		Blackout:     handlers.NewBlackoutHandler(blackouts, cache),
	}
	routes.RegisterRoutes(router, hb)

	utils.StartHealthMonitor(cache, database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
