package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgnest/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "pgnest-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	locationID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:     userID,
		Username:   "manager1",
		LocationID: locationID,
		Role:       "manager",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	locationID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:     userID,
		Username:   "manager1",
		LocationID: locationID,
		Role:       "manager",
	})
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "manager1", claims.Username)
		assert.Equal(t, locationID.String(), claims.LocationID)
		assert.Equal(t, "manager", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "completely-different-secret-32-chars",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "pgnest-test",
		})
		otherPair, err := other.GenerateTokenPair(GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "intruder",
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(otherPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "pgnest-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "manager1",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	locationID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:     userID,
		Username:   "manager1",
		LocationID: locationID,
		Role:       "manager",
	})
	require.NoError(t, err)

	t.Run("refresh yields a fresh pair carrying the claims forward", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken)

		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, locationID.String(), claims.LocationID)
		assert.Equal(t, "manager", claims.Role)

		refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestClaimsHelpers(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	t.Run("location-scoped token", func(t *testing.T) {
		locationID := uuid.New()
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{
			UserID:     userID,
			Username:   "manager1",
			LocationID: locationID,
		})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		gotUser, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, gotUser)

		gotLocation, err := claims.GetLocationUUID()
		require.NoError(t, err)
		assert.Equal(t, locationID, gotLocation)

		assert.False(t, claims.GetIssuedAtTime().IsZero())
		assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	})

	t.Run("owner token without a location scope", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{
			UserID:   userID,
			Username: "owner1",
			Role:     "owner",
		})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		gotLocation, err := claims.GetLocationUUID()
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, gotLocation)
	})
}
