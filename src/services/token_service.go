package services

import (
	"time"

	"financialamigo/src/config"
	"financialamigo/src/schemas"
	"financialamigo/src/utils"

	"github.com/go-chi/jwtauth"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	BearerTokenType = "bearer"
)

type TokenServiceI interface {
	IssueTokens(email string) (*schemas.TokenResponse, error)
	CreateToken(email string, kind TokenType) (string, error)
	// VerifyToken checks signature, expiry and token type, and returns the
	// email the token was issued for.
	VerifyToken(tokenString string, kind TokenType) (string, error)
}

type TokenService struct {
	access     *jwtauth.JWTAuth
	refresh    *jwtauth.JWTAuth
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	refreshKey := cfg.JWTRefreshSecretKey
	if refreshKey == "" {
		refreshKey = cfg.JWTSecretKey
	}
	return &TokenService{
		access:     jwtauth.New(cfg.JWTAlgorithm, []byte(cfg.JWTSecretKey), nil),
		refresh:    jwtauth.New(cfg.JWTAlgorithm, []byte(refreshKey), nil),
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		now:        time.Now,
	}
}

// WithClock replaces the clock used to stamp issued tokens.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) signer(kind TokenType) (*jwtauth.JWTAuth, time.Duration) {
	if kind == RefreshToken {
		return s.refresh, s.refreshTTL
	}
	return s.access, s.accessTTL
}

func (s *TokenService) CreateToken(email string, kind TokenType) (string, error) {
	ja, ttl := s.signer(kind)
	now := s.now()

	claims := map[string]interface{}{
		"sub":   email,
		"email": email,
		"type":  string(kind),
	}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, now.Add(ttl))

	_, tokenString, err := ja.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *TokenService) IssueTokens(email string) (*schemas.TokenResponse, error) {
	accessToken, err := s.CreateToken(email, AccessToken)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.CreateToken(email, RefreshToken)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    BearerTokenType,
	}, nil
}

func (s *TokenService) VerifyToken(tokenString string, kind TokenType) (string, error) {
	ja, _ := s.signer(kind)

	token, err := jwtauth.VerifyToken(ja, tokenString)
	if err != nil {
		return "", utils.Unauthorized("Could not validate credentials")
	}

	claimedType, ok := token.Get("type")
	if !ok || claimedType != string(kind) {
		return "", utils.Unauthorized("Invalid token type")
	}

	email := token.Subject()
	if email == "" {
		return "", utils.Unauthorized("Could not validate credentials")
	}
	return email, nil
}
