package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"financialamigo/src/config"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// ErrClockSkew is returned for identity tokens issued further in the future
// than the configured tolerance, or that expired less than that tolerance ago.
// Either way the server clock is likely off.
var ErrClockSkew = errors.New("identity token issued in the future, check the server clock")

// Identity is what the application keeps from a verified Google identity token.
type Identity struct {
	Subject  string
	Email    string
	Name     string
	Picture  string
	IssuedAt time.Time
}

// Verifier validates Google identity tokens.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type GoogleClientI interface {
	Verifier
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for tokens and verifies the
	// identity token that comes with them.
	Exchange(ctx context.Context, code string) (*Identity, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type GoogleClient struct {
	oauth      *oauth2.Config
	clientID   string
	clockSkew  time.Duration
	httpClient *http.Client
	validate   validateFunc
	now        func() time.Time
}

func NewClient(cfg config.GoogleConfig) *GoogleClient {
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleoauth.Endpoint,
		},
		clientID:   cfg.ClientID,
		clockSkew:  cfg.ClockSkew(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		validate:   idtoken.Validate,
		now:        time.Now,
	}
}

func (c *GoogleClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (c *GoogleClient) Exchange(ctx context.Context, code string) (*Identity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response has no id_token")
	}
	return c.Verify(ctx, rawIDToken)
}

// Verify checks signature, audience and expiry of the token.
func (c *GoogleClient) Verify(ctx context.Context, idToken string) (*Identity, error) {
	payload, err := c.validate(ctx, idToken, c.clientID)
	if err != nil {
		if expiredWithinSkew(idToken, c.now(), c.clockSkew) {
			return nil, ErrClockSkew
		}
		return nil, fmt.Errorf("invalid identity token: %w", err)
	}
	return IdentityFromPayload(payload, c.now(), c.clockSkew)
}

// expiredWithinSkew reports whether the unverified token expired no more than
// skew ago. idtoken checks expiry before the signature, so such tokens are
// still rejected, only reported as a clock problem.
func expiredWithinSkew(idToken string, now time.Time, skew time.Duration) bool {
	payload, err := idtoken.ParsePayload(idToken)
	if err != nil || payload.Expires == 0 {
		return false
	}
	expires := time.Unix(payload.Expires, 0)
	return now.After(expires) && !now.After(expires.Add(skew))
}

// IdentityFromPayload extracts the identity from validated claims, rejecting
// tokens whose issue time is more than skew ahead of now.
func IdentityFromPayload(payload *idtoken.Payload, now time.Time, skew time.Duration) (*Identity, error) {
	issuedAt := time.Unix(payload.IssuedAt, 0)
	if issuedAt.After(now.Add(skew)) {
		return nil, ErrClockSkew
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("identity token has no email claim")
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("google email is not verified")
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}
	picture, _ := payload.Claims["picture"].(string)

	return &Identity{
		Subject:  payload.Subject,
		Email:    email,
		Name:     name,
		Picture:  picture,
		IssuedAt: issuedAt,
	}, nil
}
