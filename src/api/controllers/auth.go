package controllers

import (
	"context"
	"errors"

	"financialamigo/src/clients/google"
	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"
	"financialamigo/src/services"
	"financialamigo/src/utils"

	"gorm.io/gorm"
)

type AuthControllerI interface {
	GoogleLoginURL(state string) string
	// GoogleCallback completes the authorization code flow.
	GoogleCallback(ctx context.Context, code string) (*schemas.TokenResponse, error)
	SyncGoogleUser(ctx context.Context, idToken string) (*schemas.SyncUserResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*schemas.TokenResponse, error)
	// Authenticate resolves a bearer access token to its user.
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

func (c *Controller) GoogleLoginURL(state string) string {
	return c.Google.AuthCodeURL(state)
}

func (c *Controller) GoogleCallback(ctx context.Context, code string) (*schemas.TokenResponse, error) {
	identity, err := c.Google.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	user, err := c.upsertUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return c.Tokens.IssueTokens(user.Email)
}

func (c *Controller) SyncGoogleUser(ctx context.Context, idToken string) (*schemas.SyncUserResponse, error) {
	if idToken == "" {
		return nil, utils.BadRequest("id_token is required")
	}
	identity, err := c.Google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, google.ErrClockSkew) {
			return nil, utils.Unauthorized("Token used too early, check the system clock")
		}
		return nil, utils.Unauthorized("Invalid Google token")
	}

	user, err := c.upsertUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	tokens, err := c.Tokens.IssueTokens(user.Email)
	if err != nil {
		return nil, err
	}
	return &schemas.SyncUserResponse{
		Status:        "success",
		Message:       "User synchronized successfully",
		TokenResponse: *tokens,
		User:          schemas.NewUserResponse(user),
	}, nil
}

// upsertUser creates the user on first login and refreshes the profile on
// later ones.
func (c *Controller) upsertUser(ctx context.Context, identity *google.Identity) (*models.User, error) {
	var user *models.User
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		existing, err := c.Users.GetByEmail(ctx, identity.Email, tx)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = &models.User{
				Email:           identity.Email,
				Name:            identity.Name,
				GoogleID:        identity.Subject,
				Provider:        "google",
				DefaultCurrency: models.CurrencyCAD,
			}
			if identity.Picture != "" {
				user.Image = &identity.Picture
			}
			return c.Users.Create(ctx, user, tx)
		case err != nil:
			return err
		}

		user = existing
		user.Name = identity.Name
		user.GoogleID = identity.Subject
		if identity.Picture != "" {
			user.Image = &identity.Picture
		}
		return c.Users.Update(ctx, user, tx)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Controller) RefreshTokens(ctx context.Context, refreshToken string) (*schemas.TokenResponse, error) {
	email, err := c.Tokens.VerifyToken(refreshToken, services.RefreshToken)
	if err != nil {
		return nil, err
	}
	if _, err := c.Users.GetByEmail(ctx, email, nil); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("User not found")
		}
		return nil, err
	}
	return c.Tokens.IssueTokens(email)
}

func (c *Controller) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, utils.Unauthorized("Not authenticated")
	}
	email, err := c.Tokens.VerifyToken(accessToken, services.AccessToken)
	if err != nil {
		return nil, err
	}
	user, err := c.Users.GetByEmail(ctx, email, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("User not found")
		}
		return nil, err
	}
	return user, nil
}
