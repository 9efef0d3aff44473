package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pgnest/backend/internal/infrastructure/auth"
)

// AuthHandler handles token endpoints. User management lives in an external
// system; this service only validates and refreshes the tokens it issued.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{jwtService: jwtService}
}

// RefreshTokenRequest carries the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pair, err := h.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			h.Unauthorized(c, "Refresh token has expired")
		case errors.Is(err, auth.ErrMaxRefreshExceeded):
			h.Unauthorized(c, "Refresh limit reached, sign in again")
		default:
			h.Unauthorized(c, "Invalid refresh token")
		}
		return
	}

	h.Success(c, pair)
}
