package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubLocationValidator struct {
	err error
}

func (v *stubLocationValidator) ValidateLocation(_ *gin.Context, _ string) error {
	return v.err
}

func newLocationTestRouter(cfg LocationMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LocationMiddlewareWithConfig(cfg))
	router.GET("/api/v1/bills", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"location_id": GetLocationID(c)})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestLocationMiddleware_Header(t *testing.T) {
	router := newLocationTestRouter(DefaultLocationConfig())
	locationID := uuid.New().String()

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	req.Header.Set(LocationHeaderKey, locationID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), locationID)
}

func TestLocationMiddleware_MissingRequired(t *testing.T) {
	router := newLocationTestRouter(DefaultLocationConfig())

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_LOCATION")
}

func TestLocationMiddleware_InvalidFormat(t *testing.T) {
	router := newLocationTestRouter(DefaultLocationConfig())

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	req.Header.Set(LocationHeaderKey, "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestLocationMiddleware_SkipPaths(t *testing.T) {
	router := newLocationTestRouter(DefaultLocationConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLocationMiddleware_JWTClaimWinsOverHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtLocationID := uuid.New().String()
	headerLocationID := uuid.New().String()

	router := gin.New()
	// Simulate the JWT middleware having stored a location-scoped claim
	router.Use(func(c *gin.Context) {
		c.Set(JWTLocationIDKey, jwtLocationID)
		c.Next()
	})
	router.Use(LocationMiddlewareWithConfig(DefaultLocationConfig()))
	router.GET("/api/v1/bills", func(c *gin.Context) {
		c.String(http.StatusOK, GetLocationID(c))
	})

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	req.Header.Set(LocationHeaderKey, headerLocationID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, jwtLocationID, w.Body.String())
}

func TestLocationMiddleware_Validator(t *testing.T) {
	locationID := uuid.New().String()

	t.Run("rejects unknown location", func(t *testing.T) {
		cfg := DefaultLocationConfig()
		cfg.Validator = &stubLocationValidator{err: errors.New("no such location")}
		router := newLocationTestRouter(cfg)

		req := httptest.NewRequest("GET", "/api/v1/bills", nil)
		req.Header.Set(LocationHeaderKey, locationID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("passes known location", func(t *testing.T) {
		cfg := DefaultLocationConfig()
		cfg.Validator = &stubLocationValidator{}
		router := newLocationTestRouter(cfg)

		req := httptest.NewRequest("GET", "/api/v1/bills", nil)
		req.Header.Set(LocationHeaderKey, locationID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOptionalLocationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalLocationMiddleware())
	router.GET("/api/v1/bills", func(c *gin.Context) {
		c.String(http.StatusOK, GetLocationID(c))
	})

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetLocationUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	locationID := uuid.New()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(LocationIDKey, locationID.String())

	got, err := GetLocationUUID(c)
	assert.NoError(t, err)
	assert.Equal(t, locationID, got)

	empty, _ := gin.CreateTestContext(httptest.NewRecorder())
	got, err = GetLocationUUID(empty)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)
}
