package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	router, _, _ := setupTestRouter(t, ServerOptions{})

	w := doGet(router, "/health")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	router, _, _ := setupTestRouter(t, ServerOptions{})

	w := doGet(router, "/news")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/news", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimitExceeded(t *testing.T) {
	router, _, _ := setupTestRouter(t, ServerOptions{RateLimit: 10, RateBurst: 2})

	assert.Equal(t, http.StatusOK, doGet(router, "/health").Code)
	assert.Equal(t, http.StatusOK, doGet(router, "/health").Code)

	w := doGet(router, "/health")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error": "Rate limit exceeded: 10 per 1 second"}`, w.Body.String())
}

func TestRateLimitPerClient(t *testing.T) {
	limiter := newIPRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))
	assert.True(t, limiter.allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, limiter.allow("10.0.0.1"))

	// idle clients are swept
	now = now.Add(10 * time.Minute)
	limiter.allow("10.0.0.3")
	assert.Len(t, limiter.visitors, 1)
}

func TestHTTPSRedirect(t *testing.T) {
	router, _, _ := setupTestRouter(t, ServerOptions{Prod: true})

	req := httptest.NewRequest(http.MethodGet, "http://space.test/news?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://space.test/news?limit=1", w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "http://space.test/news", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNoHTTPSRedirectOutsideProd(t *testing.T) {
	router, _, _ := setupTestRouter(t, ServerOptions{})

	w := doGet(router, "http://space.test/news")
	assert.Equal(t, http.StatusOK, w.Code)
}
