package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(time.Minute, 3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		ok, _ := limiter.allow("1.2.3.4", now.Add(time.Duration(i)*time.Second))
		require.Truef(t, ok, "request %d should be allowed", i+1)
	}

	ok, retryAfter := limiter.allow("1.2.3.4", now.Add(3*time.Second))
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))

	// another client has its own window
	ok, _ = limiter.allow("5.6.7.8", now.Add(3*time.Second))
	assert.True(t, ok)

	// once the oldest hit leaves the window, requests flow again
	ok, _ = limiter.allow("1.2.3.4", now.Add(61*time.Second))
	assert.True(t, ok)
}

func rateLimitRouter(max int) *gin.Engine {
	limiter := NewRateLimiter(time.Minute, max)
	router := gin.New()
	router.GET("/probe", limiter.Middleware("slow down"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	router := rateLimitRouter(1)

	hit := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit("203.0.113.1:5000").Code)

	w := hit("203.0.113.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	assert.Contains(t, w.Body.String(), "slow down")

	// a different client is unaffected
	assert.Equal(t, http.StatusOK, hit("203.0.113.2:5000").Code)
}

func TestRateLimitExemptsLocalhost(t *testing.T) {
	router := rateLimitRouter(1)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.RemoteAddr = "127.0.0.1:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}
