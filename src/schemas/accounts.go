package schemas

import (
	"strings"
	"time"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/shopspring/decimal"
)

type AccountCreate struct {
	Name          string             `json:"name"`
	Type          models.AccountType `json:"type"`
	Currency      models.Currency    `json:"currency"`
	Description   *string            `json:"description"`
	Broker        *string            `json:"broker"`
	AccountNumber *string            `json:"account_number"`
}

func (a *AccountCreate) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return utils.BadRequest("name is required")
	}
	if !a.Type.Valid() {
		return utils.BadRequest("type must be one of TFSA, RRSP, FHSA, NON_REGISTERED")
	}
	if a.Currency == "" {
		a.Currency = models.CurrencyCAD
	}
	if !a.Currency.Valid() {
		return utils.BadRequest("Invalid currency. Supported currencies: CAD, USD")
	}
	return nil
}

// AccountUpdate is a partial update: nil fields are left untouched.
type AccountUpdate struct {
	Name          *string             `json:"name"`
	Type          *models.AccountType `json:"type"`
	Description   *string             `json:"description"`
	Broker        *string             `json:"broker"`
	AccountNumber *string             `json:"account_number"`
}

func (a *AccountUpdate) Validate() error {
	if a.Name != nil {
		name := strings.TrimSpace(*a.Name)
		if name == "" {
			return utils.BadRequest("name cannot be empty")
		}
		a.Name = &name
	}
	if a.Type != nil && !a.Type.Valid() {
		return utils.BadRequest("type must be one of TFSA, RRSP, FHSA, NON_REGISTERED")
	}
	return nil
}

// Apply copies the present fields onto the account.
func (a *AccountUpdate) Apply(account *models.Account) {
	if a.Name != nil {
		account.Name = *a.Name
	}
	if a.Type != nil {
		account.Type = *a.Type
	}
	if a.Description != nil {
		account.Description = a.Description
	}
	if a.Broker != nil {
		account.Broker = a.Broker
	}
	if a.AccountNumber != nil {
		account.AccountNumber = a.AccountNumber
	}
}

type AccountResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Name            string             `json:"name"`
	Type            models.AccountType `json:"type"`
	Currency        models.Currency    `json:"currency"`
	Description     *string            `json:"description"`
	Broker          *string            `json:"broker"`
	AccountNumber   *string            `json:"account_number"`
	CashBalance     decimal.Decimal    `json:"cash_balance"`
	CashInterestYTD decimal.Decimal    `json:"cash_interest_ytd"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func NewAccountResponse(a *models.Account, interestYTD decimal.Decimal) AccountResponse {
	return AccountResponse{
		ID:              a.ID.String(),
		UserID:          a.UserID.String(),
		Name:            a.Name,
		Type:            a.Type,
		Currency:        a.Currency,
		Description:     a.Description,
		Broker:          a.Broker,
		AccountNumber:   a.AccountNumber,
		CashBalance:     a.CashBalance,
		CashInterestYTD: interestYTD,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
