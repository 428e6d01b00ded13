package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rehab-scheduling/config"
	deliveryHttp "rehab-scheduling/internal/delivery/http"
	"rehab-scheduling/internal/delivery/http/handler"
	"rehab-scheduling/internal/delivery/http/middleware"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/infrastructure/cache"
	"rehab-scheduling/internal/infrastructure/database"
	"rehab-scheduling/internal/repository"
	"rehab-scheduling/internal/service"
	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/jwt"
	"rehab-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Dispatcher  *service.NotificationDispatcher
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db, log); err != nil {
			return nil, err
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := app.initializeServer(cfg, db, redisClient, log)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) (*http.Server, error) {
	hours, err := entity.ParseWorkingHours(cfg.Scheduling.WorkingHoursStart, cfg.Scheduling.WorkingHoursEnd, cfg.Scheduling.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse working hours: %w", err)
	}
	rules := usecase.SchedulingRules{Hours: hours, SlotDuration: cfg.Scheduling.SlotDuration}
	now := time.Now

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	practitionerRepo := repository.NewPractitionerRepository()
	centerRepo := repository.NewCenterRepository()
	centerLinkRepo := repository.NewCenterLinkRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	tokenRepo := cache.NewTokenStore(redisClient)

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	app.Dispatcher = service.NewNotificationDispatcher(
		service.NewRedisPublisher(redisClient),
		cfg.Notification.Channel,
		cfg.Notification.QueueSize,
		cfg.Notification.PublishTimeout,
		log,
	)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientRepo, practitionerRepo, tokenRepo, auditService, jwtService)
	linkageUsecase := usecase.NewLinkageResolverUsecase(db, log, patientRepo, practitionerRepo, centerLinkRepo)
	workloadUsecase := usecase.NewWorkloadUsecase(db, log, practitionerRepo, prescriptionRepo, centerRepo, cfg.Scheduling.WorkloadConcurrency, now)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, practitionerRepo, appointmentRepo, rules, now)
	lifecycleUsecase := usecase.NewAppointmentLifecycleUsecase(db, log, appointmentRepo, auditService, app.Dispatcher, now)
	bookingUsecase := usecase.NewBookingUsecase(db, log, appointmentRepo, practitionerRepo, centerLinkRepo,
		linkageUsecase, lifecycleUsecase, auditService, app.Dispatcher, rules, now)
	centerLinkUsecase := usecase.NewCenterLinkUsecase(db, log, centerRepo, centerLinkRepo, practitionerRepo, patientRepo, auditService, now)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(bookingUsecase, lifecycleUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	practitionerHandler := handler.NewPractitionerHandler(workloadUsecase)
	linkageHandler := handler.NewLinkageHandler(linkageUsecase)
	centerLinkHandler := handler.NewCenterLinkHandler(centerLinkUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenRepo, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		availabilityHandler,
		practitionerHandler,
		linkageHandler,
		centerLinkHandler,
		authMiddleware,
		corsMiddleware,
	)

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close flushes pending notifications, then closes database and redis
func (app *App) Close() {
	// Dispatcher publishes through redis, stop it first
	if app.Dispatcher != nil {
		app.Dispatcher.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
