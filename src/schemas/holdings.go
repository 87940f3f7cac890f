package schemas

import (
	"financialamigo/src/models"

	"github.com/shopspring/decimal"
)

type HoldingResponse struct {
	ID                 string              `json:"id"`
	AccountID          string              `json:"account_id"`
	Symbol             string              `json:"symbol"`
	Quantity           decimal.Decimal     `json:"quantity"`
	AvgCostNative      decimal.Decimal     `json:"avg_cost_native"`
	BookValueNative    decimal.Decimal     `json:"book_value_native"`
	MarketValueNative  decimal.NullDecimal `json:"market_value_native"`
	UnrealizedPLNative decimal.NullDecimal `json:"unrealized_pl_native"`
}

func NewHoldingResponse(h *models.Holding) HoldingResponse {
	return HoldingResponse{
		ID:                 h.ID.String(),
		AccountID:          h.AccountID.String(),
		Symbol:             h.Symbol,
		Quantity:           h.Quantity,
		AvgCostNative:      h.AvgCostNative,
		BookValueNative:    h.Quantity.Mul(h.AvgCostNative),
		MarketValueNative:  h.MarketValueNative,
		UnrealizedPLNative: h.UnrealizedPLNative,
	}
}
