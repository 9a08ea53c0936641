package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tidyhive/config"
	"tidyhive/cron"
	"tidyhive/database"
	bookingRepoPkg "tidyhive/database/repository/booking"
	crewRepoPkg "tidyhive/database/repository/crew"
	customerRepoPkg "tidyhive/database/repository/customer"
	payrollRepoPkg "tidyhive/database/repository/payroll"
	timeentryRepoPkg "tidyhive/database/repository/timeentry"
	"tidyhive/handlers"
	"tidyhive/middleware"
	"tidyhive/routes"
	"tidyhive/services/analytics"
	"tidyhive/services/booking"
	"tidyhive/services/crew"
	ai "tidyhive/services/intelligence"
	"tidyhive/services/notification"
	"tidyhive/services/payroll"
	"tidyhive/services/scheduling"
	"tidyhive/services/storage"
	"tidyhive/services/tasks"
	"tidyhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := storage.NewCloudinaryStorageService(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	crewRepo := crewRepoPkg.NewMongoCrewRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	entryRepo := timeentryRepoPkg.NewMongoTimeEntryRepo()
	payrollRunRepo := payrollRepoPkg.NewMongoPayrollRepo()

	// services.
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		CrewRepo:     crewRepo,
		CustomerRepo: customerRepo,
		Reminders:    reminderScheduler,
		Logger:       logger,
	}

	crewService := &crew.DefaultCrewService{
		Repo:        crewRepo,
		BookingRepo: bookingRepo,
		EntryRepo:   entryRepo,
		Logger:      logger,
	}

	conflictOpts := scheduling.DefaultOptions()
	if config.AppConfig.DefaultTravelBufferMin > 0 {
		conflictOpts.DefaultTravelBufferMin = config.AppConfig.DefaultTravelBufferMin
	}
	conflictService := &scheduling.DefaultConflictService{
		BookingRepo: bookingRepo,
		CrewRepo:    crewRepo,
		EntryRepo:   entryRepo,
		BookingSvc:  bookingService,
		Cache:       utils.GetCacheClient(),
		Opts:        conflictOpts,
		Logger:      logger,
	}

	payrollService := &payroll.DefaultPayrollService{
		CrewRepo:  crewRepo,
		EntryRepo: entryRepo,
		RunRepo:   payrollRunRepo,
		Transfers: payroll.StripeTransferClient{},
		Logger:    logger,
	}

	analyticsService := &analytics.DefaultAnalyticsService{
		BookingRepo: bookingRepo,
		CrewRepo:    crewRepo,
		EntryRepo:   entryRepo,
	}

	smsClient := notification.NewHTTPSMSClient(
		config.AppConfig.SMSGatewayURL,
		config.AppConfig.SMSGatewayKey,
		config.AppConfig.SMSSenderID,
	)
	notificationService, err := notification.NewDefaultNotificationService(smsClient, crewService, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	bookingService.Notifier = notificationService

	ctxStore := ai.NewRedisContextStore(utils.GetAIContextCacheClient(), 30*time.Minute)
	assistantService := ai.NewDefaultAssistantService(
		config.AppConfig.GeminiAPIKey,
		ctxStore,
		bookingService,
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:   handlers.NewBookingHandler(bookingService, logger),
		Conflicts: handlers.NewConflictHandler(conflictService, logger),
		Crew:      handlers.NewCrewHandler(crewService, bookingRepo, storageService, logger),
		Customer:  handlers.NewCustomerHandler(customerRepo, logger),
		Payroll:   handlers.NewPayrollHandler(payrollService, logger),
		AI:        handlers.NewAIHandler(assistantService, logger),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker alongside the API server.
	go cron.InitReminderWorker(notificationService)

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
