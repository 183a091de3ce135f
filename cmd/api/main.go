package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Job Board Privacy API
// @version         1.0
// @description     Privacy and data-protection backend for the job board: profile visibility, privacy-aware search, contact consent, GDPR export and erasure.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board privacy backend", "port", cfg.Port)

	// 3. Setup Database
	ctx := context.Background()
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when unavailable)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	verificationRepo := postgres.NewVerificationRepository(dbPool)
	settingsRepo := postgres.NewPrivacySettingsRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	contactRepo := postgres.NewContactRepository(dbPool)
	gdprRepo := postgres.NewGDPRRepository(dbPool)

	// 6. Setup Audit Log (zap event log + hash-chained DB persistence)
	auditRepo := audit.NewRepository(dbPool)
	auditLog := audit.NewLogger("privacy-core")
	auditLog.SetPersistFunc(auditRepo.PersistEvent)
	defer auditLog.Sync()

	// Daily anchoring of the audit chain to WORM storage, when configured.
	if cfg.AnchorBucket != "" {
		anchorCfg := audit.AnchorConfig{
			Provider:        audit.S3Provider(cfg.AnchorProvider),
			AccessKeyID:     cfg.AnchorAccessKey,
			SecretAccessKey: cfg.AnchorSecretKey,
			Region:          cfg.AnchorRegion,
			Bucket:          cfg.AnchorBucket,
			KeyPrefix:       cfg.AnchorKeyPrefix,
			WasabiEndpoint:  cfg.AnchorWasabiEndpoint,
			RetentionYears:  cfg.AnchorRetentionYears,
		}
		s3Client, err := audit.NewS3Client(ctx, anchorCfg)
		if err != nil {
			logger.Log.Warn("Audit anchoring disabled", "error", err)
		} else {
			anchorer := audit.NewAnchorer(auditRepo, s3Client, anchorCfg, auditLog)
			go anchorer.Run(ctx)
		}
	}

	// 7. Setup Email Relay
	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email relay not fully configured - contact delivery will be unavailable")
	}

	// 8. Setup UseCases
	validate := validator.New()
	accessUC := usecase.NewAccessUsecase(settingsRepo, auditLog)
	profileUC := usecase.NewProfileUsecase(profileRepo, settingsRepo, accessUC)
	searchUC := usecase.NewSearchUsecase(profileRepo, settingsRepo, profileUC)
	privacyUC := usecase.NewPrivacyUsecase(settingsRepo, auditLog, validate)
	contactUC := usecase.NewContactUsecase(accessUC, profileRepo, contactRepo, emailService)
	gdprUC := usecase.NewGDPRUsecase(accessUC, profileRepo, settingsRepo, applicationRepo, contactRepo, gdprRepo, auditLog)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	// 9. Setup Principal Resolver (JWKS + local role/verification lookup)
	jwksProvider := auth.NewProvider(cfg.AuthJWKSURL)
	resolver := middleware.NewPrincipalResolver(jwksProvider, cfg, userRepo, verificationRepo)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC: profileUC,
		PrivacyUC: privacyUC,
		SearchUC:  searchUC,
		ContactUC: contactUC,
		GDPRUC:    gdprUC,
		AuditUC:   auditUC,
		Resolver:  resolver,
		Config:    cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
