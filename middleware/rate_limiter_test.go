package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(perMin int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(perMin))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return r
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	r := newLimitedRouter(3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestRateLimiterPerClient(t *testing.T) {
	r := newLimitedRouter(1)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", ip+", 172.16.0.1")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, ip)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")
	assert.Equal(t, 2, store.size())

	clock = clock.Add(2 * time.Minute)
	store.getLimiter("10.0.0.2")

	clock = clock.Add(limiterIdleTTL + time.Second)
	store.getLimiter("10.0.0.3")
	assert.Equal(t, 1, store.size(), "both earlier clients idled past the TTL")

	store.getLimiter("10.0.0.3")
	clock = clock.Add(time.Minute)
	store.getLimiter("10.0.0.4")
	assert.Equal(t, 2, store.size(), "no sweep before the interval elapses")
}

func TestRateLimiterKeepsActiveClient(t *testing.T) {
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(1)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	first := store.getLimiter("10.0.0.1")
	for i := 0; i < 4; i++ {
		clock = clock.Add(time.Minute)
		assert.Same(t, first, store.getLimiter("10.0.0.1"))
	}
}
