package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// serveLogged runs one request through RequestLogging and returns the
// recorded completion entry.
func serveLogged(t *testing.T, method, target string, setup func(*gin.Engine), handler gin.HandlerFunc) (*httptest.ResponseRecorder, *observer.LoggedEntry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.DebugLevel)
	router := gin.New()
	if setup != nil {
		setup(router)
	}
	router.Use(RequestLogging(zap.New(core)))
	router.Handle(method, "/current-bills", handler)
	if target == "" {
		target = "/current-bills"
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)

	for _, entry := range recorded.All() {
		if entry.Message == "request completed" {
			e := entry
			return w, &e
		}
	}
	return w, nil
}

func logField(entry *observer.LoggedEntry, key string) (zapcore.Field, bool) {
	for _, f := range entry.Context {
		if f.Key == key {
			return f, true
		}
	}
	return zapcore.Field{}, false
}

func TestRequestLogging_Levels(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusConflict, zapcore.WarnLevel},
		{"server error logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, entry := serveLogged(t, "GET", "", nil, func(c *gin.Context) {
				c.JSON(tt.status, gin.H{"success": tt.status < 400})
			})

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, entry, "every request must produce a completion entry")
			assert.Equal(t, tt.expected, entry.Level)
		})
	}
}

func TestRequestLogging_Fields(t *testing.T) {
	_, entry := serveLogged(t, "GET", "/current-bills?month=2024-06", nil, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	require.NotNil(t, entry)

	for _, key := range []string{"method", "path", "status", "latency", "client_ip", "body_size"} {
		_, ok := logField(entry, key)
		assert.True(t, ok, "field %s should be logged", key)
	}

	query, ok := logField(entry, "query")
	require.True(t, ok)
	assert.Equal(t, "month=2024-06", query.String)
}

func TestRequestLogging_CarriesRequestID(t *testing.T) {
	setup := func(r *gin.Engine) {
		r.Use(func(c *gin.Context) {
			c.Set("request_id", "req-settle-19")
			c.Next()
		})
	}
	_, entry := serveLogged(t, "GET", "", setup, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	require.NotNil(t, entry)

	field, ok := logField(entry, "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-settle-19", field.String)
}

func TestRequestLogging_CarriesLocationID(t *testing.T) {
	setup := func(r *gin.Engine) {
		// Simulates the location middleware resolving X-PG-ID upstream.
		r.Use(func(c *gin.Context) {
			c.Set("location_id", "pg-koramangala")
			c.Next()
		})
	}
	_, entry := serveLogged(t, "GET", "", setup, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	require.NotNil(t, entry)

	field, ok := logField(entry, "location_id")
	require.True(t, ok)
	assert.Equal(t, "pg-koramangala", field.String)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("nil occupant list")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/panic", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "panic recovered", logs[0].Message)
}

func TestFromContext(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var got *zap.Logger
		_, _ = serveLogged(t, "GET", "", nil, func(c *gin.Context) {
			got = FromGinContext(c)
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		require.NotNil(t, got)
		assert.NotEqual(t, zap.NewNop(), got)
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		var got *zap.Logger
		router := gin.New()
		router.GET("/bare", func(c *gin.Context) {
			got = FromGinContext(c)
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/bare", nil))

		require.NotNil(t, got)
		assert.NotPanics(t, func() {
			got.Info("unreachable stream")
		})
	})
}
