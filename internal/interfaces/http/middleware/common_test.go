package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func frontendCORSConfig() CORSConfig {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://admin.pgnest.in"}
	return cfg
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := newCORSRouter(frontendCORSConfig())

	req := httptest.NewRequest("GET", "/rooms", nil)
	req.Header.Set("Origin", "https://admin.pgnest.in")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://admin.pgnest.in", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-PG-ID")
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	router := newCORSRouter(frontendCORSConfig())

	req := httptest.NewRequest("GET", "/rooms", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Request is served, but without CORS headers the browser blocks it.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyWhitelistByDefault(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig())

	req := httptest.NewRequest("GET", "/rooms", nil)
	req.Header.Set("Origin", "https://admin.pgnest.in")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	t.Run("allowed origin gets headers and 204", func(t *testing.T) {
		router := newCORSRouter(frontendCORSConfig())

		req := httptest.NewRequest("OPTIONS", "/rooms", nil)
		req.Header.Set("Origin", "https://admin.pgnest.in")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://admin.pgnest.in", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("disallowed origin still gets 204 without headers", func(t *testing.T) {
		router := newCORSRouter(frontendCORSConfig())

		req := httptest.NewRequest("OPTIONS", "/rooms", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORS_Wildcard(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}
	router := newCORSRouter(cfg)

	req := httptest.NewRequest("GET", "/rooms", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	// Wildcard must never be combined with credentials.
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_MaxAgeOmittedWhenZero(t *testing.T) {
	cfg := frontendCORSConfig()
	cfg.MaxAge = 0
	router := newCORSRouter(cfg)

	req := httptest.NewRequest("GET", "/rooms", nil)
	req.Header.Set("Origin", "https://admin.pgnest.in")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins, "origins must be opt-in via config")
	assert.Contains(t, cfg.AllowHeaders, "X-PG-ID")
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	t.Run("mints an ID when the caller sends none", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		assert.Equal(t, id, seen)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("propagates the caller's ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "bill-split-trace-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "bill-split-trace-42", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "bill-split-trace-42", seen)
	})

	t.Run("consecutive requests get distinct IDs", func(t *testing.T) {
		ids := make(map[string]bool)
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest("GET", "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			ids[w.Header().Get("X-Request-ID")] = true
		}
		assert.Len(t, ids, 5)
	})
}

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Secure())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", w.Header().Get("Content-Security-Policy"))
}
