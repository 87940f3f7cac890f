package controllers

import (
	"context"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"

	"gorm.io/gorm"
)

type UsersControllerI interface {
	UpdateUserSettings(ctx context.Context, user *models.User, req *schemas.UserSettingsUpdate) (*models.User, error)
	// DeleteUser removes the user together with every account they own.
	DeleteUser(ctx context.Context, user *models.User) error
}

func (c *Controller) UpdateUserSettings(ctx context.Context, user *models.User, req *schemas.UserSettingsUpdate) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		user.DefaultCurrency = *req.DefaultCurrency
		return c.Users.Update(ctx, user, tx)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Controller) DeleteUser(ctx context.Context, user *models.User) error {
	return repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		return notFound(c.Users.Delete(ctx, user.ID, tx), "User not found")
	})
}
