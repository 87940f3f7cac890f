package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Holding is the current position of one security inside one account. All
// amounts are in the security's currency.
type Holding struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey;column:id"`
	AccountID          uuid.UUID           `gorm:"type:uuid;column:account_id;not null;uniqueIndex:uix_account_security"`
	Account            *Account            `gorm:"constraint:OnDelete:CASCADE"`
	Symbol             string              `gorm:"column:symbol;not null;uniqueIndex:uix_account_security"`
	Quantity           decimal.Decimal     `gorm:"column:quantity;type:numeric(20,6);not null"`
	AvgCostNative      decimal.Decimal     `gorm:"column:avg_cost_native;type:numeric(20,6);not null"`
	MarketValueNative  decimal.NullDecimal `gorm:"column:market_value_native;type:numeric(20,6)"`
	UnrealizedPLNative decimal.NullDecimal `gorm:"column:unrealized_pl_native;type:numeric(20,6)"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Holding) TableName() string {
	return "holdings"
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	assignID(&h.ID)
	return nil
}

// Revalue sets market value and unrealized P/L from the given last price. A
// missing price clears both.
func (h *Holding) Revalue(lastPrice decimal.NullDecimal) {
	if !lastPrice.Valid {
		h.MarketValueNative = decimal.NullDecimal{}
		h.UnrealizedPLNative = decimal.NullDecimal{}
		return
	}
	marketValue := h.Quantity.Mul(lastPrice.Decimal)
	cost := h.Quantity.Mul(h.AvgCostNative)
	h.MarketValueNative = decimal.NewNullDecimal(marketValue)
	h.UnrealizedPLNative = decimal.NewNullDecimal(marketValue.Sub(cost))
}
