package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pgnest/backend/internal/infrastructure/logger"
)

// Location context keys. Every billing and property operation runs in the
// scope of one location (one PG property).
const (
	LocationIDKey     = "location_id"
	LocationHeaderKey = "X-PG-ID"
)

// LocationValidator checks that a location exists and is operational
type LocationValidator interface {
	ValidateLocation(c *gin.Context, locationID string) error
}

// LocationMiddlewareConfig holds configuration for location middleware
type LocationMiddlewareConfig struct {
	// HeaderEnabled enables X-PG-ID header extraction
	HeaderEnabled bool
	// JWTEnabled enables JWT claim extraction (requires JWT middleware to run first)
	JWTEnabled bool
	// SkipPaths are paths that don't require location context (e.g., health check)
	SkipPaths []string
	// Required determines if location context is mandatory
	Required bool
	// Validator is an optional check that the location exists and is active
	Validator LocationValidator
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultLocationConfig returns default location middleware configuration
func DefaultLocationConfig() LocationMiddlewareConfig {
	return LocationMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/refresh",
			"/api/v1/locations",
			"/api/v1/reminders",
			"/api/v1/system",
		},
		Required:  true,
		Validator: nil,
		Logger:    nil,
	}
}

// LocationMiddleware extracts the active location from the request.
// Extraction order: JWT location claim > X-PG-ID header. Managers are
// pinned to their token's location; owners select one per request.
func LocationMiddleware() gin.HandlerFunc {
	return LocationMiddlewareWithConfig(DefaultLocationConfig())
}

// LocationMiddlewareWithConfig returns location middleware with custom configuration
func LocationMiddlewareWithConfig(cfg LocationMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		var locationID string
		var extractionMethod string

		// Priority 1: JWT claims (if JWT middleware has already run)
		if cfg.JWTEnabled {
			if jwtLocationID := GetJWTLocationID(c); jwtLocationID != "" {
				locationID = jwtLocationID
				extractionMethod = "jwt"
			}
		}

		// Priority 2: X-PG-ID header
		if locationID == "" && cfg.HeaderEnabled {
			if headerLocationID := c.GetHeader(LocationHeaderKey); headerLocationID != "" {
				locationID = headerLocationID
				extractionMethod = "header"
			}
		}

		// Validate location ID format if present
		if locationID != "" {
			if _, err := uuid.Parse(locationID); err != nil {
				respondLocationError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid location ID format")
				return
			}
		}

		if locationID == "" && cfg.Required {
			respondLocationError(c, http.StatusBadRequest, "MISSING_LOCATION", "Location identification required, set the X-PG-ID header")
			return
		}

		// Optional: check that the location exists and is active
		if locationID != "" && cfg.Validator != nil {
			if err := cfg.Validator.ValidateLocation(c, locationID); err != nil {
				log := cfg.Logger
				if log == nil {
					log = logger.FromContext(c.Request.Context())
				}
				log.Warn("Location validation failed",
					zap.String("location_id", locationID),
					zap.Error(err),
				)
				respondLocationError(c, http.StatusNotFound, "NOT_FOUND", "Unknown or inactive location")
				return
			}
		}

		if locationID != "" {
			// Set in gin context for easy access in handlers
			c.Set(LocationIDKey, locationID)

			// Set in request context for service layer access
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithLocationID(ctx, log, locationID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Location resolved",
					zap.String("location_id", locationID),
					zap.String("method", extractionMethod),
				)
			}
		}

		c.Next()
	}
}

// respondLocationError sends an aborting error response
func respondLocationError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// GetLocationID retrieves the location ID from gin.Context
func GetLocationID(c *gin.Context) string {
	if locationID, exists := c.Get(LocationIDKey); exists {
		if id, ok := locationID.(string); ok {
			return id
		}
	}
	return ""
}

// GetLocationUUID retrieves the location ID as UUID from gin.Context
func GetLocationUUID(c *gin.Context) (uuid.UUID, error) {
	locationID := GetLocationID(c)
	if locationID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(locationID)
}

// MustGetLocationUUID retrieves the location ID as UUID or panics if not found.
// Use this only in handlers behind the required location middleware.
func MustGetLocationUUID(c *gin.Context) uuid.UUID {
	locationUUID, err := GetLocationUUID(c)
	if err != nil || locationUUID == uuid.Nil {
		panic("valid location_id not found in context")
	}
	return locationUUID
}

// OptionalLocationMiddleware creates middleware that doesn't require a location
func OptionalLocationMiddleware() gin.HandlerFunc {
	cfg := DefaultLocationConfig()
	cfg.Required = false
	return LocationMiddlewareWithConfig(cfg)
}
