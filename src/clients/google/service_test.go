package google_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"financialamigo/src/clients/google"
	"financialamigo/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func payload(iat time.Time, claims map[string]interface{}) *idtoken.Payload {
	return &idtoken.Payload{
		Issuer:   "https://accounts.google.com",
		Subject:  "1234567890",
		IssuedAt: iat.Unix(),
		Expires:  iat.Add(time.Hour).Unix(),
		Claims:   claims,
	}
}

func TestIdentityFromPayload(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	claims := map[string]interface{}{
		"email":          "ada@example.com",
		"email_verified": true,
		"name":           "Ada Lovelace",
		"picture":        "https://example.com/ada.png",
	}

	t.Run("maps claims", func(t *testing.T) {
		identity, err := google.IdentityFromPayload(payload(now, claims), now, 5*time.Second)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", identity.Email)
		assert.Equal(t, "Ada Lovelace", identity.Name)
		assert.Equal(t, "https://example.com/ada.png", identity.Picture)
		assert.Equal(t, "1234567890", identity.Subject)
	})

	t.Run("tolerates skew", func(t *testing.T) {
		_, err := google.IdentityFromPayload(payload(now.Add(4*time.Second), claims), now, 5*time.Second)
		assert.NoError(t, err)
	})

	t.Run("rejects tokens from the future", func(t *testing.T) {
		_, err := google.IdentityFromPayload(payload(now.Add(time.Minute), claims), now, 5*time.Second)
		assert.True(t, errors.Is(err, google.ErrClockSkew))
	})

	t.Run("requires email", func(t *testing.T) {
		_, err := google.IdentityFromPayload(payload(now, map[string]interface{}{"name": "No Mail"}), now, 5*time.Second)
		assert.Error(t, err)
	})

	t.Run("rejects unverified email", func(t *testing.T) {
		_, err := google.IdentityFromPayload(payload(now, map[string]interface{}{"email": "x@example.com", "email_verified": false}), now, 5*time.Second)
		assert.Error(t, err)
	})

	t.Run("falls back to email for the name", func(t *testing.T) {
		identity, err := google.IdentityFromPayload(payload(now, map[string]interface{}{"email": "x@example.com"}), now, 5*time.Second)
		require.NoError(t, err)
		assert.Equal(t, "x@example.com", identity.Name)
	})
}

func TestAuthCodeURL(t *testing.T) {
	client := google.NewClient(config.GoogleConfig{
		ClientID:    "client-id",
		RedirectURI: "http://localhost:8000/api/auth/google/callback",
	})

	parsed, err := url.Parse(client.AuthCodeURL("state-123"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "state-123", parsed.Query().Get("state"))
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Contains(t, parsed.Query().Get("scope"), "email")
}

func TestVerifyRejectsGarbage(t *testing.T) {
	client := google.NewClient(config.GoogleConfig{ClientID: "client-id"})
	_, err := client.Verify(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func unsignedToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "RS256", "kid": "test"})
	require.NoError(t, err)
	body, err := json.Marshal(claims)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(body) + "." +
		base64.RawURLEncoding.EncodeToString([]byte("signature"))
}

func TestVerifyExpiredTokens(t *testing.T) {
	client := google.NewClient(config.GoogleConfig{ClientID: "client-id", ClockSkewSeconds: 30})
	expiredAgo := func(d time.Duration) string {
		now := time.Now()
		return unsignedToken(t, map[string]interface{}{
			"aud":   "client-id",
			"sub":   "1234567890",
			"email": "ada@example.com",
			"iat":   now.Add(-time.Hour).Unix(),
			"exp":   now.Add(-d).Unix(),
		})
	}

	t.Run("just expired is a clock problem", func(t *testing.T) {
		_, err := client.Verify(context.Background(), expiredAgo(5*time.Second))
		assert.True(t, errors.Is(err, google.ErrClockSkew), "%v", err)
	})

	t.Run("long expired is invalid", func(t *testing.T) {
		_, err := client.Verify(context.Background(), expiredAgo(10*time.Minute))
		require.Error(t, err)
		assert.False(t, errors.Is(err, google.ErrClockSkew))
	})
}
