package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horizon/config"
	"horizon/cron"
	"horizon/database"
	analyticsRepo "horizon/database/repository/analytics"
	bookingRepoPkg "horizon/database/repository/booking"
	pendingRepoPkg "horizon/database/repository/pending"
	userRepoPkg "horizon/database/repository/user"
	"horizon/handlers"
	"horizon/middleware"
	"horizon/routes"
	"horizon/services/booking"
	"horizon/services/notification"
	"horizon/services/storage"
	"horizon/services/user"
	"horizon/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	analyticsRepository := analyticsRepo.NewMongoAnalyticsRepo()
	pendingRepo := pendingRepoPkg.NewMongoPendingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// The counters document must exist before the first commit so the
	// transactional path can increment blindly.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := analyticsRepository.EnsureTotals(ctx); err != nil {
			cancel()
			logger.Sugar().Fatalf("main: failed to seed analytics totals: %v", err)
		}
		cancel()
	}

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	notificationService := &notification.DefaultNotificationService{
		Users:  userRepo,
		FCM:    utils.FCMClient,
		Logger: logger,
	}

	scheduler := cron.NewReplayScheduler()
	defer scheduler.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:        bookingRepo,
		PendingRepo: pendingRepo,
		Notifier:    notificationService,
		Enqueuer:    scheduler,
		Cache:       booking.NewTripCache(time.Duration(config.AppConfig.TripsCacheTTLMin) * time.Minute),
		MaxAttempts: config.AppConfig.CommitMaxAttempts,
		Throttle:    time.Duration(config.AppConfig.SubscribeThrottleMS) * time.Millisecond,
		Logger:      logger,
	}

	paymentService := booking.NewRazorpayService(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
		logger,
	)

	voucherService := &booking.DefaultVoucherService{
		Storage: storage.NewStorageService(cld),
		Setter:  bookingRepo,
		Logger:  logger,
	}

	// Background reconciliation of bookings captured during store degradation,
	// plus a sweep for captures whose queued task was lost.
	cron.InitReplayWorker(bookingService)
	cron.StartPendingSweep(pendingRepo, scheduler)

	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), utils.GetAuthCacheClient())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:    handlers.NewBookingHandler(bookingService, voucherService, logger),
		Payment:    handlers.NewPaymentHandler(paymentService, logger),
		Analytics:  handlers.NewAnalyticsHandler(analyticsRepository, logger),
		User:       handlers.NewUserHandler(userService, logger),
		AuthClient: utils.AuthClient,
	}

	routes.RegisterRoutes(router, handlerBundle)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
