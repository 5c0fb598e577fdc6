package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"stayflow/cache"
	"stayflow/config"
	"stayflow/cron"
	"stayflow/database"
	bookingsRepo "stayflow/database/repository/bookings"
	"stayflow/handlers"
	"stayflow/middleware"
	"stayflow/models"
	"stayflow/retry"
	"stayflow/routes"
	"stayflow/services/booking"
	"stayflow/suppliers"
	"stayflow/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitHoldsCache()
	utils.InitQueueCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Supplier pair behind the failover router.
	timeout := config.SupplierTimeout()
	primary := suppliers.NewHTTPClient(config.Primary(), timeout)
	secondary := suppliers.NewHTTPClient(config.Secondary(), timeout)
	supplierRouter := suppliers.NewRouter(primary, secondary, config.AppConfig.FailoverStatuses, logger)

	// Stores and repositories.
	holds := cache.NewRedisStore(utils.GetHoldsClient(), logger)
	sessions := cache.NewRedisSessions(utils.GetHoldsClient())
	bookingRepo := bookingsRepo.NewMongoBookingRepo()

	// Booking service with retry budgets from config.
	bookingService := booking.NewService(
		supplierRouter, holds, sessions, bookingRepo, logger,
		booking.WithRetryConfigs(
			retry.Config{
				MaxAttempts:  config.AppConfig.SearchMaxAttempts,
				InitialDelay: time.Duration(config.AppConfig.RetryInitialDelayMs) * time.Millisecond,
				Multiplier:   2,
			},
			retry.Config{
				MaxAttempts:  config.AppConfig.PreBookMaxAttempts,
				InitialDelay: time.Duration(config.AppConfig.RetryInitialDelayMs) * time.Millisecond,
				Multiplier:   2,
			},
			retry.Config{
				MaxAttempts:  config.AppConfig.BookMaxAttempts,
				InitialDelay: time.Duration(config.AppConfig.BookInitialDelayMs) * time.Millisecond,
				Multiplier:   2,
			},
		),
	)

	// Schedule a refresh check shortly before each hold expires.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	bookingService.OnHoldSaved = func(hold models.ReservationHold) {
		delay := models.HoldTTL - 6*time.Minute
		if err := cron.EnqueueHoldRefresh(queueClient, hold.Code, delay); err != nil {
			logger.Sugar().Warnf("main: failed to enqueue hold refresh for %s: %v", hold.Code, err)
		}
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, bookingRepo)

	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterSystemRoutes(router)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetHoldsClient(), utils.GetQueueClient()},
		database.MongoClient,
	)

	cron.InitHoldWorker(holds, bookingService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	holds.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
