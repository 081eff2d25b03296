package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-careermatch-backend/config"
	_ "go-careermatch-backend/docs" // Important for Swagger
	"go-careermatch-backend/internal/delivery/http/middleware"
	v1 "go-careermatch-backend/internal/delivery/http/v1"
	"go-careermatch-backend/internal/repository/postgres"
	"go-careermatch-backend/internal/usecase"
	"go-careermatch-backend/pkg/database"
	"go-careermatch-backend/pkg/email"
	"go-careermatch-backend/pkg/logger"
	"go-careermatch-backend/pkg/redis"
	"go-careermatch-backend/pkg/security"
	"go-careermatch-backend/pkg/storage"
	"go-careermatch-backend/pkg/token"
	"go-careermatch-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           CareerMatch Backend API
// @version         1.0
// @description     Recruitment matching backend using Clean Architecture.
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
	logger.Log.Info("Starting careermatch backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; counters and revocations fall back to
	// in-memory stores when absent)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Error("Failed to connect to redis, continuing without it", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Token codec and revocation registry. With Redis the revocation
	// list is shared across replicas; without it each instance keeps its
	// own swept in-memory list.
	codec := token.NewCodec([]byte(cfg.JWTSecret))
	var revoker token.Revoker
	if redisClient != nil {
		revoker = token.NewRedisBlacklist(redisClient)
	} else {
		blacklist := token.NewBlacklist(cfg.BlacklistSweepInterval)
		defer blacklist.Stop()
		revoker = blacklist
	}

	// 6. Security audit logger and login tracker
	secLog, err := security.NewLogger()
	if err != nil {
		logger.Log.Warn("Security audit logger unavailable", "error", err)
		secLog = security.NopLogger()
	}
	defer secLog.Sync()
	trackerCfg := security.DefaultLoginTrackerConfig()
	trackerCfg.MaxAttempts = cfg.FailedLoginMaxAttempts
	trackerCfg.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
	tracker := security.NewLoginTracker(redisClient, trackerCfg, secLog)

	// 7. Object storage
	store, err := storage.NewStore(context.Background(), storage.Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		logger.Log.Error("Failed to configure object storage", "error", err)
		os.Exit(1)
	}
	if cfg.S3Bucket == "" {
		logger.Log.Warn("S3_BUCKET not configured - uploads will fail")
	}

	// 8. Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - welcome and reset emails will be skipped")
	}

	// 9. Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	employerRepo := postgres.NewEmployerRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)

	// 10. UseCases
	identifiers := usecase.NewIdentifierAllocator(userRepo, cfg.MaxIdentifierProbes)
	numbers := usecase.NewEmployerNumberAllocator(employerRepo)

	authUC := usecase.NewAuthUsecase(userRepo, identifiers, codec, revoker, emailService, tracker, secLog, usecase.AuthConfig{
		TokenTTL:             cfg.TokenTTL,
		ResetTokenTTL:        cfg.ResetTokenTTL,
		RecruiterEmailDomain: cfg.RecruiterEmailDomain,
	})
	recruiterUC := usecase.NewRecruiterUsecase(userRepo, employerRepo, numbers)
	candidateUC := usecase.NewCandidateUsecase(userRepo, candidateRepo, store)
	jobUC := usecase.NewJobUsecase(userRepo, employerRepo, jobRepo)
	resumeUC := usecase.NewResumeUsecase(candidateRepo, resumeRepo, store)
	adminUC := usecase.NewAdminUsecase(userRepo, jobRepo)

	// 11. Custom request validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 12. Router
	limiter := middleware.NewRateLimiter(redisClient)
	defer limiter.Stop()
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		RecruiterUC: recruiterUC,
		CandidateUC: candidateUC,
		JobUC:       jobUC,
		ResumeUC:    resumeUC,
		AdminUC:     adminUC,
		Codec:       codec,
		Revoker:     revoker,
		Limiter:     limiter,
		DB:          dbPool,
		Redis:       redisClient,
		Store:       store,
		Config:      cfg,
	})

	// 13. Start Server
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	logger.Log.Info("Server exited")
}
