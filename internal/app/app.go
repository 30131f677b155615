package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobboard_backend/database"
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/identity"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/ratelimit"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/routes"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/sms"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/validator"
	"jobboard_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const limiterCleanupInterval = 5 * time.Minute

// Dependencies - внешние зависимости приложения; тесты подставляют свои
type Dependencies struct {
	Storage storage.Storage
	Email   email.Provider
	SMS     sms.Sender              // nil: SMS не настроены
	Google  identity.GoogleVerifier // nil: Google не настроен
	Limiter ratelimit.Limiter
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}

	ginRouter, container := SetupRouter(cfg, gormDB, deps)

	// Фоновые задачи живут до сигнала завершения
	workers.NewTokenCleanupWorker(gormDB, container.TokenService, cfg.TokenCleanupInterval()).Start(ctx)
	if mem, ok := deps.Limiter.(*ratelimit.MemoryLimiter); ok {
		go mem.Run(ctx, limiterCleanupInterval)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}

// BuildDependencies создает внешние клиенты по конфигурации
func BuildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	storageInstance, err := storage.NewStorage(ctx, storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	deps.Storage = storageInstance
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	if cfg.EmailConfigured() {
		smtpProvider, err := email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			Timeout:   30 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("smtp: %w", err)
		}
		deps.Email = smtpProvider
	} else {
		logger.Warn("SMTP is not configured, emails will only be logged")
		deps.Email = email.NewLogProvider(logger.GetLogger())
	}

	if cfg.SMSConfigured() {
		sender, err := sms.NewTwilioSender(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.TwilioPhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("twilio: %w", err)
		}
		deps.SMS = sender
	}

	if cfg.GoogleConfigured() {
		deps.Google = identity.NewGoogleVerifier(cfg.Google.ClientID, cfg.Google.TokenInfoURL)
	}

	deps.Limiter, err = newLimiter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return deps, nil
}

func newLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RateLimit.Disabled {
		logger.Warn("Rate limiting is disabled")
		return ratelimit.Noop{}, nil
	}
	if strings.EqualFold(cfg.RateLimit.Store, "redis") {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("rate limit store: %w", err)
		}
		logger.Info("Rate limiter initialized", "store", "redis")
		return ratelimit.NewRedisLimiter(client, "jobboard:rl"), nil
	}
	logger.Info("Rate limiter initialized", "store", "memory")
	return ratelimit.NewMemoryLimiter(), nil
}

// SetupRouter собирает сервисы, хэндлеры и маршруты
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps *Dependencies) (*gin.Engine, *services.ServiceContainer) {
	serviceContainer := initializeServices(cfg, deps)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	guards := handlers.Guards{
		Auth:    middleware.AuthMiddleware(serviceContainer.TokenService),
		Admin:   middleware.AdminMiddleware(repositories.NewUserRepository()),
		Limiter: deps.Limiter,
	}

	ginRouter := initializeGinRouter(cfg, gormDB)

	opts := routes.Options{EnableSwagger: cfg.Server.EnableSwagger}
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		opts.UploadsDir = cfg.Storage.BasePath
	}
	routes.RegisterRoutes(ginRouter, appHandlers, guards, opts)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, deps *Dependencies) *services.ServiceContainer {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	authTokenRepo := repositories.NewAuthTokenRepository()
	masterRepo := repositories.NewMasterRepository()
	profileRepo := repositories.NewProfileRepository()
	jobRepo := repositories.NewJobRepository()
	trackingRepo := repositories.NewTrackingRepository()

	// --- Сервисы ---
	jwtManager := auth.NewJWTManager(cfg.JWT.AccessSecret, cfg.AccessTTL())
	tokenService := services.NewTokenService(jwtManager, cfg.RefreshTTL(), refreshTokenRepo, authTokenRepo)
	notificationService := services.NewNotificationService(deps.Email, email.NewTemplateManager(), deps.SMS, cfg.FrontendURL)

	enricher := services.NewJobEnricher(jobRepo, masterRepo, trackingRepo)

	return &services.ServiceContainer{
		TokenService:        tokenService,
		NotificationService: notificationService,
		AuthService:         services.NewAuthService(userRepo, tokenService, notificationService, deps.Google, cfg.JWT.AccessTTL),
		MasterService:       services.NewMasterService(masterRepo),
		OnboardingService:   services.NewOnboardingService(profileRepo, masterRepo),
		ProfileService: services.NewProfileService(
			userRepo,
			profileRepo,
			repositories.NewEmploymentRepository(),
			repositories.NewEducationRepository(),
			repositories.NewProjectRepository(),
			repositories.NewItSkillRepository(),
			tokenService,
			notificationService,
			deps.Storage,
			cfg.Upload.MaxResumeSize,
		),
		JobService:      services.NewJobService(jobRepo, profileRepo, enricher),
		TrackingService: services.NewTrackingService(jobRepo, trackingRepo, enricher),
		AdminService:    services.NewAdminService(jobRepo, masterRepo, trackingRepo, enricher),
		Storage:         deps.Storage,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	cookie := handlers.CookieConfig{
		Secure: cfg.IsProduction(),
		MaxAge: cfg.RefreshTTL(),
	}

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, services.AuthService, cookie),
		MasterHandler:     handlers.NewMasterHandler(baseHandler, services.MasterService),
		OnboardingHandler: handlers.NewOnboardingHandler(baseHandler, services.OnboardingService),
		ProfileHandler:    handlers.NewProfileHandler(baseHandler, services.ProfileService, cfg.Upload.MaxResumeSize),
		JobHandler:        handlers.NewJobHandler(baseHandler, services.JobService, services.TrackingService),
		AdminHandler:      handlers.NewAdminHandler(baseHandler, services.AdminService),
		HealthHandler:     handlers.NewHealthHandler(),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxResumeSize + 1<<20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))
	router.Use(middleware.ErrorDebugMiddleware(!cfg.IsProduction()))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает администратора из FIRST_ADMIN_*; существующий email не трогается
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.Admin.Email))
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	userRepo := repositories.NewUserRepository()
	_, err := userRepo.FindByEmail(tx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	newAdmin := &models.User{
		Email:           &adminEmail,
		PasswordHash:    &hash,
		Name:            cfg.Admin.Name,
		Role:            models.UserRoleAdmin,
		Provider:        models.ProviderEmail,
		EmailVerifiedAt: &now,
	}
	if err := userRepo.Create(tx, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
