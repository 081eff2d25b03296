package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-careermatch-backend/internal/delivery/http/middleware"
	"go-careermatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	os.Exit(m.Run())
}

func newLimitedRouter(limiter *middleware.RateLimiter, limit int) *gin.Engine {
	r := gin.New()
	r.Use(limiter.Middleware(middleware.DefaultRateLimitConfig(limit, time.Minute)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiter(t *testing.T) {
	t.Run("Should reject requests over the limit with 429", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(nil)
		defer limiter.Stop()
		r := newLimitedRouter(limiter, 2)

		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			r.ServeHTTP(last, req)
		}
		assert.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.NotEmpty(t, last.Header().Get("Retry-After"))
	})

	t.Run("Should expose remaining-budget headers under the limit", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(nil)
		defer limiter.Stop()
		r := newLimitedRouter(limiter, 5)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should tolerate repeated Stop calls", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(nil)
		r := newLimitedRouter(limiter, 1)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		limiter.Stop()
		limiter.Stop()
	})
}
