package v1

import (
	"net/http"
	"time"

	"go-careermatch-backend/config"
	"go-careermatch-backend/internal/delivery/http/middleware"
	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	redisutil "go-careermatch-backend/pkg/redis"
	"go-careermatch-backend/pkg/storage"
	"go-careermatch-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	RecruiterUC domain.RecruiterUsecase
	CandidateUC domain.CandidateUsecase
	JobUC       domain.JobUsecase
	ResumeUC    domain.ResumeUsecase
	AdminUC     domain.AdminUsecase
	Codec       *token.Codec
	Revoker     token.Revoker
	Limiter     *middleware.RateLimiter
	DB          *pgxpool.Pool
	Redis       *goredis.Client
	Store       *storage.Store
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(deps.Redis)
	}
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(limiter.Middleware(middleware.DefaultRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check (object storage is only checked when a bucket is configured)
	store := deps.Store
	if deps.Config.S3Bucket == "" {
		store = nil
	}
	v1.GET("/health", healthHandler(deps.DB, deps.Redis, store))

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Login and password reset take the stricter auth budget.
	authLimited := v1.Group("")
	authLimited.Use(limiter.Middleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Codec, deps.Revoker))
	{
		NewAuthHandler(authLimited, protected, deps.AuthUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewRecruiterHandler(protected, deps.RecruiterUC)
		NewCandidateHandler(protected, deps.CandidateUC)
		NewResumeHandler(protected, deps.ResumeUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}

func healthHandler(db *pgxpool.Pool, redis *goredis.Client, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := map[string]string{"database": "ok"}
		healthy := true

		if err := db.Ping(c.Request.Context()); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		}
		if redis != nil {
			checks["redis"] = "ok"
			if err := redisutil.HealthCheck(c.Request.Context(), redis); err != nil {
				checks["redis"] = "unreachable"
				healthy = false
			}
		}
		if store != nil {
			checks["storage"] = "ok"
			if err := store.HealthCheck(c.Request.Context()); err != nil {
				checks["storage"] = "unreachable"
				healthy = false
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "Degraded", checks)
			return
		}
		response.Success(c, http.StatusOK, "System operational", checks)
	}
}
