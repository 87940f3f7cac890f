package schemas

import (
	"time"

	"financialamigo/src/models"
	"financialamigo/src/utils"
)

type UserResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Image           *string         `json:"image"`
	DefaultCurrency models.Currency `json:"default_currency"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID.String(),
		Email:           u.Email,
		Name:            u.Name,
		Image:           u.Image,
		DefaultCurrency: u.DefaultCurrency,
		CreatedAt:       u.CreatedAt,
	}
}

type UserSettingsUpdate struct {
	DefaultCurrency *models.Currency `json:"default_currency"`
}

func (u *UserSettingsUpdate) Validate() error {
	if u.DefaultCurrency == nil {
		return utils.BadRequest("default_currency is required")
	}
	if !u.DefaultCurrency.Valid() {
		return utils.BadRequest("Invalid currency. Supported currencies: CAD, USD")
	}
	return nil
}
