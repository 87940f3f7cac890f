package schemas

import (
	"strings"
	"time"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashTransactionCreate struct {
	Type           models.CashTransactionType `json:"type"`
	Date           *Date                      `json:"date"`
	Amount         decimal.Decimal            `json:"amount"`
	Symbol         *string                    `json:"symbol"`
	Description    *string                    `json:"description"`
	SourceCurrency *string                    `json:"source_currency"`
	TargetCurrency *string                    `json:"target_currency"`
	FXRate         decimal.NullDecimal        `json:"fx_rate"`
	// TargetAccountID pairs a TRANSFER_OUT with a TRANSFER_IN on another account
	// of the same user.
	TargetAccountID *uuid.UUID `json:"target_account_id"`
}

func (c *CashTransactionCreate) Validate() error {
	if !c.Type.Valid() {
		return utils.BadRequest("invalid cash transaction type")
	}
	if c.Type == models.CashTransactionTrade {
		return utils.BadRequest("TRADE cash transactions are generated from trades")
	}
	if c.Date == nil {
		return utils.BadRequest("date is required")
	}
	if c.TargetAccountID != nil && c.Type != models.CashTransactionTransferOut {
		return utils.BadRequest("target_account_id is only allowed on TRANSFER_OUT")
	}
	if c.Symbol != nil {
		symbol := strings.ToUpper(strings.TrimSpace(*c.Symbol))
		c.Symbol = &symbol
	}
	if c.FXRate.Valid && !c.FXRate.Decimal.IsPositive() {
		return utils.BadRequest("fx_rate must be greater than zero")
	}
	return validateCashAmount(c.Type, c.Amount)
}

func (c *CashTransactionCreate) ToModel(accountID uuid.UUID) *models.CashTransaction {
	return &models.CashTransaction{
		AccountID:      accountID,
		Type:           c.Type,
		Date:           c.Date.ToTime(),
		Amount:         c.Amount,
		Symbol:         c.Symbol,
		Description:    c.Description,
		SourceCurrency: c.SourceCurrency,
		TargetCurrency: c.TargetCurrency,
		FXRate:         c.FXRate,
	}
}

// validateCashAmount enforces the sign convention: inflows positive, outflows
// negative.
func validateCashAmount(kind models.CashTransactionType, amount decimal.Decimal) error {
	if amount.IsZero() {
		return utils.BadRequest("amount cannot be zero")
	}
	if kind.IsInflow() && amount.IsNegative() {
		return utils.BadRequest("amount must be positive for " + string(kind))
	}
	if kind.IsOutflow() && amount.IsPositive() {
		return utils.BadRequest("amount must be negative for " + string(kind))
	}
	return nil
}

// CashTransactionUpdate is a partial update: nil fields are left untouched.
// The type cannot change.
type CashTransactionUpdate struct {
	Date        *Date            `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

func (c *CashTransactionUpdate) Apply(row *models.CashTransaction) error {
	if c.Date != nil {
		row.Date = c.Date.ToTime()
	}
	if c.Amount != nil {
		if err := validateCashAmount(row.Type, *c.Amount); err != nil {
			return err
		}
		row.Amount = *c.Amount
	}
	if c.Description != nil {
		row.Description = c.Description
	}
	return nil
}

type CashTransactionResponse struct {
	ID                       string                     `json:"id"`
	AccountID                string                     `json:"account_id"`
	Type                     models.CashTransactionType `json:"type"`
	Date                     Date                       `json:"date"`
	Amount                   decimal.Decimal            `json:"amount"`
	Symbol                   *string                    `json:"symbol"`
	Description              *string                    `json:"description"`
	RelatedTransactionID     *uuid.UUID                 `json:"related_transaction_id"`
	RelatedCashTransactionID *uuid.UUID                 `json:"related_cash_transaction_id"`
	SourceCurrency           *string                    `json:"source_currency"`
	TargetCurrency           *string                    `json:"target_currency"`
	FXRate                   decimal.NullDecimal        `json:"fx_rate"`
	CreatedAt                time.Time                  `json:"created_at"`
}

func NewCashTransactionResponse(c *models.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		ID:                       c.ID.String(),
		AccountID:                c.AccountID.String(),
		Type:                     c.Type,
		Date:                     NewDate(c.Date),
		Amount:                   c.Amount,
		Symbol:                   c.Symbol,
		Description:              c.Description,
		RelatedTransactionID:     c.RelatedTransactionID,
		RelatedCashTransactionID: c.RelatedCashTransactionID,
		SourceCurrency:           c.SourceCurrency,
		TargetCurrency:           c.TargetCurrency,
		FXRate:                   c.FXRate,
		CreatedAt:                c.CreatedAt,
	}
}
