package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beedical/config"
	deliveryHttp "beedical/internal/delivery/http"
	"beedical/internal/delivery/http/handler"
	"beedical/internal/delivery/http/middleware"
	domainRepo "beedical/internal/domain/repository"
	"beedical/internal/infrastructure/cache"
	"beedical/internal/infrastructure/database"
	"beedical/internal/infrastructure/migration"
	"beedical/internal/infrastructure/seed"
	"beedical/internal/repository"
	"beedical/internal/service"
	"beedical/internal/usecase"
	"beedical/pkg/jwt"
	"beedical/pkg/metrics"
	"beedical/pkg/validator"

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
	Server      *http.Server
}

// New loads the configuration and connects to the database. Redis and the
// HTTP layer are only initialized by InitServer so that the migrate and
// seed commands can run without them.
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected successfully")

	return &App{Config: cfg, Log: log, DB: db}, nil
}

// setupLogger configures the standard logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.Warnf("Unknown log level %q, using info", level)
	}
	log.SetLevel(lvl)
	return log
}

// Migrator wraps the schema migrations around the open connection
func (app *App) Migrator() (*migration.Migrator, error) {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return migration.NewMigrator(sqlDB, app.Log)
}

// Seed inserts the reference doctors, cities and specialties
func (app *App) Seed(ctx context.Context) error {
	return seed.NewSeeder(app.DB, app.Log).Run(ctx)
}

// InitServer connects to Redis and wires every layer of the HTTP service
func (app *App) InitServer(ctx context.Context) error {
	cfg := app.Config

	if cfg.DB.AutoMigrate {
		migrator, err := app.Migrator()
		if err != nil {
			return err
		}
		if err := migrator.Up(); err != nil {
			return err
		}
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	availabilityRepo, err := repository.LoadAvailabilityFile(cfg.Booking.AvailabilityFile)
	if err != nil {
		return err
	}
	app.Log.Infof("Availability dataset loaded from %s", cfg.Booking.AvailabilityFile)

	server, err := app.initializeServer(ctx, availabilityRepo)
	if err != nil {
		return err
	}
	app.Server = server
	return nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(ctx context.Context, availabilityRepo domainRepo.AvailabilityRepository) (*http.Server, error) {
	cfg, db, log := app.Config, app.DB, app.Log

	// Shared services
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	appMetrics := metrics.New("beedical")
	store := cache.NewRedisStore(app.RedisClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	doctorRepo := repository.NewDoctorRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	cityRepo := repository.NewCityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	dependentRepo := repository.NewDependentRepository()
	grantRepo := repository.NewManagementGrantRepository()
	preferenceRepo := repository.NewAccountPreferenceRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	denyList := service.NewTokenDenyList(store)
	referenceCache := service.NewReferenceCache(store, cfg.Cache.TTL, log, appMetrics)
	notifier := service.NewNotifier(cfg.Mail, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, denyList)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, specialtyRepo, cityRepo, availabilityRepo, referenceCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(
		db, log, userRepo, profileRepo, doctorRepo, appointmentRepo, availabilityRepo,
		auditService, notifier, referenceCache, appMetrics, cfg.Booking.ConflictCheck,
	)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, profileRepo, auditService)
	dependentUsecase := usecase.NewDependentUsecase(db, log, userRepo, profileRepo, dependentRepo, grantRepo, auditService)
	preferenceUsecase := usecase.NewPreferenceUsecase(db, log, userRepo, preferenceRepo, auditService)
	activityUsecase := usecase.NewActivityUsecase(db, log, userRepo, auditLogRepo)
	verificationUsecase := usecase.NewVerificationUsecase(log, store, notifier, appMetrics, cfg.Verification.CodeTTL)

	if err := doctorUsecase.WarmReferenceCache(ctx); err != nil {
		log.Warnf("Failed to warm reference cache: %v", err)
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return app.RedisClient.Ping(ctx).Err()
		},
	})
	authHandler := handler.NewAuthHandler(authUsecase, log)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator, log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, log)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator, log)
	dependentHandler := handler.NewDependentHandler(dependentUsecase, customValidator, log)
	accountHandler := handler.NewAccountHandler(preferenceUsecase, activityUsecase, customValidator, log)
	verificationHandler := handler.NewVerificationHandler(verificationUsecase, customValidator, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, denyList, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		healthHandler, authHandler, doctorHandler, appointmentHandler, profileHandler,
		dependentHandler, accountHandler, verificationHandler,
		authMiddleware, corsMiddleware, appMetrics,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
