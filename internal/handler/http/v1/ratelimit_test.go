package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(ctx context.Context, rps float64, burst int, clock clockwork.Clock) *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(ctx, rps, burst, clock, logger))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func requestFrom(router *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware_PerClientBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 0.001, 2, clockwork.NewFakeClock())

	assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, requestFrom(router, "10.0.0.1:1002"))

	// У другого клиента свой лимит
	assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.2:1000"))
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	router := newRateLimitedRouter(context.Background(), 0, 0, clockwork.NewFakeClock())

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1000"))
	}
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    1,
		burst:    1,
		clock:    clock,
	}

	l.getVisitor("10.0.0.1")
	clock.Advance(2 * time.Minute)
	l.getVisitor("10.0.0.2")
	clock.Advance(2 * time.Minute)

	l.evictIdle()

	assert.NotContains(t, l.visitors, "10.0.0.1")
	assert.Contains(t, l.visitors, "10.0.0.2")
}
