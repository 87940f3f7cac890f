package services_test

import (
	"net/http"
	"testing"
	"time"

	"financialamigo/src/config"
	"financialamigo/src/services"
	"financialamigo/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecretKey:             "access-secret",
		JWTRefreshSecretKey:      "refresh-secret",
		JWTAlgorithm:             "HS256",
		AccessTokenExpireMinutes: 15,
		RefreshTokenExpireDays:   7,
	}
}

func TestTokenService(t *testing.T) {
	svc := services.NewTokenService(testAuthConfig())

	t.Run("access token round trip", func(t *testing.T) {
		token, err := svc.CreateToken("ada@example.com", services.AccessToken)
		require.NoError(t, err)

		email, err := svc.VerifyToken(token, services.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("IssueTokens returns a usable pair", func(t *testing.T) {
		pair, err := svc.IssueTokens("ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "bearer", pair.TokenType)

		email, err := svc.VerifyToken(pair.RefreshToken, services.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		token, err := svc.CreateToken("ada@example.com", services.RefreshToken)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token, services.AccessToken)
		assert.True(t, utils.IsStatus(err, http.StatusUnauthorized))
	})

	t.Run("type claim checked with a shared key", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTRefreshSecretKey = ""
		shared := services.NewTokenService(cfg)

		token, err := shared.CreateToken("ada@example.com", services.RefreshToken)
		require.NoError(t, err)

		_, err = shared.VerifyToken(token, services.AccessToken)
		require.Error(t, err)
		assert.Equal(t, "Invalid token type", err.Error())
	})

	t.Run("expired token rejected", func(t *testing.T) {
		past := services.NewTokenService(testAuthConfig()).WithClock(func() time.Time {
			return time.Now().Add(-time.Hour)
		})
		token, err := past.CreateToken("ada@example.com", services.AccessToken)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token, services.AccessToken)
		assert.True(t, utils.IsStatus(err, http.StatusUnauthorized))
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		token, err := svc.CreateToken("ada@example.com", services.AccessToken)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token+"x", services.AccessToken)
		assert.True(t, utils.IsStatus(err, http.StatusUnauthorized))
	})
}
