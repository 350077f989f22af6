package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-system/config"
	deliveryHttp "clinic-booking-system/internal/delivery/http"
	"clinic-booking-system/internal/delivery/http/handler"
	"clinic-booking-system/internal/delivery/http/middleware"
	"clinic-booking-system/internal/infrastructure/cache"
	"clinic-booking-system/internal/infrastructure/database"
	"clinic-booking-system/internal/repository"
	"clinic-booking-system/internal/service"
	"clinic-booking-system/internal/usecase"
	"clinic-booking-system/pkg/jwt"
	"clinic-booking-system/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	DayLock     *service.DoctorDayLock
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg := app.Config
	db := app.DB
	redisClient := app.RedisClient

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	workingHoursRepo := repository.NewDoctorWorkingHoursRepository()
	breakRepo := repository.NewDoctorBreakRepository()
	leaveRepo := repository.NewDoctorLeaveRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	consultationRepo := repository.NewConsultationRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	dayLock := service.NewDoctorDayLock(log)
	app.DayLock = dayLock
	availabilityCache := service.NewAvailabilityCache(redisClient, log, cfg.Scheduling.AvailabilityCacheTTL)
	auditService := service.NewAuditService(log, auditLogRepo)
	reminderService := service.NewReminderService(db, log)

	schedulingOpts := usecase.SchedulingOptions{
		SlotDuration:      cfg.Scheduling.SlotDuration,
		SearchStep:        cfg.Scheduling.SearchStep,
		SearchMaxAttempts: cfg.Scheduling.SearchMaxAttempts,
		EmergencyHorizon:  cfg.Scheduling.EmergencyHorizon,
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, jwtService, redisClient)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, schedulingOpts, appointmentRepo, consultationRepo, workingHoursRepo, breakRepo, leaveRepo, doctorProfileRepo, patientProfileRepo, dayLock, availabilityCache, auditService)
	scheduleUsecase := usecase.NewDoctorScheduleUsecase(db, log, workingHoursRepo, breakRepo, leaveRepo, doctorProfileRepo, appointmentRepo, auditService)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, userRepo, doctorProfileRepo, auditService)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, userRepo, patientProfileRepo, consultationRepo, auditService)
	analyticsUsecase := usecase.NewAnalyticsUsecase(db, log, appointmentRepo, workingHoursRepo, breakRepo, leaveRepo, doctorProfileRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorProfileUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientProfileUsecase, customValidator)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	reminderHandler := handler.NewReminderHandler(reminderService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		scheduleHandler,
		doctorHandler,
		patientHandler,
		analyticsHandler,
		auditLogHandler,
		reminderHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop the day-lock janitor
	if app.DayLock != nil {
		app.DayLock.Stop()
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
