package schemas

import (
	"strings"
	"time"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate carries no total: it is always derived server side.
type TransactionCreate struct {
	AccountID        uuid.UUID              `json:"account_id"`
	Date             *Date                  `json:"date"`
	Symbol           string                 `json:"symbol"`
	Quantity         decimal.Decimal        `json:"quantity"`
	PriceNative      decimal.Decimal        `json:"price_native"`
	CommissionNative decimal.Decimal        `json:"commission_native"`
	Currency         models.Currency        `json:"currency"`
	Type             models.TransactionType `json:"type"`
	Description      *string                `json:"description"`
}

func (t *TransactionCreate) Validate() error {
	if t.AccountID == uuid.Nil {
		return utils.BadRequest("account_id is required")
	}
	if t.Date == nil {
		return utils.BadRequest("date is required")
	}
	if strings.TrimSpace(t.Symbol) == "" {
		return utils.BadRequest("symbol is required")
	}
	return nil
}

func (t *TransactionCreate) ToModel() *models.Transaction {
	return &models.Transaction{
		AccountID:        t.AccountID,
		Date:             t.Date.ToTime(),
		Symbol:           strings.ToUpper(strings.TrimSpace(t.Symbol)),
		Quantity:         t.Quantity,
		PriceNative:      t.PriceNative,
		CommissionNative: t.CommissionNative,
		Currency:         t.Currency,
		Type:             t.Type,
		Description:      t.Description,
	}
}

// TransactionUpdate is a partial update: nil fields are left untouched.
type TransactionUpdate struct {
	Date             *Date                   `json:"date"`
	Symbol           *string                 `json:"symbol"`
	Quantity         *decimal.Decimal        `json:"quantity"`
	PriceNative      *decimal.Decimal        `json:"price_native"`
	CommissionNative *decimal.Decimal        `json:"commission_native"`
	Currency         *models.Currency        `json:"currency"`
	Type             *models.TransactionType `json:"type"`
	Description      *string                 `json:"description"`
}

func (t *TransactionUpdate) Apply(tx *models.Transaction) {
	if t.Date != nil {
		tx.Date = t.Date.ToTime()
	}
	if t.Symbol != nil {
		tx.Symbol = strings.ToUpper(strings.TrimSpace(*t.Symbol))
	}
	if t.Quantity != nil {
		tx.Quantity = *t.Quantity
	}
	if t.PriceNative != nil {
		tx.PriceNative = *t.PriceNative
	}
	if t.CommissionNative != nil {
		tx.CommissionNative = *t.CommissionNative
	}
	if t.Currency != nil {
		tx.Currency = *t.Currency
	}
	if t.Type != nil {
		tx.Type = *t.Type
	}
	if t.Description != nil {
		tx.Description = t.Description
	}
}

// ValidateTransaction checks the stored shape of a transaction, after a create
// request was converted or a patch applied.
func ValidateTransaction(t *models.Transaction) error {
	switch {
	case t.Symbol == "":
		return utils.BadRequest("symbol is required")
	case !t.Type.Valid():
		return utils.BadRequest("type must be one of BUY, SELL, DIVIDEND")
	case !t.Currency.Valid():
		return utils.BadRequest("Invalid currency. Supported currencies: CAD, USD")
	case t.Quantity.IsNegative():
		return utils.BadRequest("quantity cannot be negative")
	case !t.PriceNative.IsPositive():
		return utils.BadRequest("price_native must be greater than zero")
	case t.CommissionNative.IsNegative():
		return utils.BadRequest("commission_native cannot be negative")
	case t.Type.IsTrade() && !t.Quantity.IsPositive():
		return utils.BadRequest("quantity must be greater than zero for BUY and SELL")
	}
	return nil
}

type TransactionResponse struct {
	ID               string                 `json:"id"`
	AccountID        string                 `json:"account_id"`
	Date             Date                   `json:"date"`
	Symbol           string                 `json:"symbol"`
	Quantity         decimal.Decimal        `json:"quantity"`
	PriceNative      decimal.Decimal        `json:"price_native"`
	CommissionNative decimal.Decimal        `json:"commission_native"`
	Currency         models.Currency        `json:"currency"`
	Type             models.TransactionType `json:"type"`
	Description      *string                `json:"description"`
	TotalNative      decimal.Decimal        `json:"total_native"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID.String(),
		AccountID:        t.AccountID.String(),
		Date:             NewDate(t.Date),
		Symbol:           t.Symbol,
		Quantity:         t.Quantity,
		PriceNative:      t.PriceNative,
		CommissionNative: t.CommissionNative,
		Currency:         t.Currency,
		Type:             t.Type,
		Description:      t.Description,
		TotalNative:      t.TotalNative,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
