package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	AccountID        uuid.UUID       `gorm:"type:uuid;column:account_id;not null;index"`
	Account          *Account        `gorm:"constraint:OnDelete:CASCADE"`
	Date             time.Time       `gorm:"column:date;type:date;not null;index"`
	Symbol           string          `gorm:"column:symbol;not null;index"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:numeric(20,6);not null"`
	PriceNative      decimal.Decimal `gorm:"column:price_native;type:numeric(20,6);not null"`
	CommissionNative decimal.Decimal `gorm:"column:commission_native;type:numeric(20,6);not null"`
	Currency         Currency        `gorm:"column:currency;type:varchar(3);not null;check:currency IN ('CAD','USD')"`
	Type             TransactionType `gorm:"column:type;type:varchar(10);not null;check:type IN ('BUY','SELL','DIVIDEND')"`
	Description      *string         `gorm:"column:description"`
	TotalNative      decimal.Decimal `gorm:"column:total_native;type:numeric(20,6);not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// CalculateTotalNative returns the total in the security's currency: the price
// alone for dividends, quantity times price otherwise, less commission.
func (t *Transaction) CalculateTotalNative() decimal.Decimal {
	base := t.PriceNative
	if t.Type != TransactionTypeDividend {
		base = t.Quantity.Mul(t.PriceNative)
	}
	return base.Sub(t.CommissionNative)
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// BeforeSave keeps total_native derived on every insert and update.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.TotalNative = t.CalculateTotalNative()
	return nil
}

// SettlementAmount is the signed cash movement the transaction causes in an
// account of the same currency.
func (t *Transaction) SettlementAmount() decimal.Decimal {
	gross := t.Quantity.Mul(t.PriceNative)
	switch t.Type {
	case TransactionTypeBuy:
		return gross.Add(t.CommissionNative).Neg()
	case TransactionTypeSell:
		return gross.Sub(t.CommissionNative)
	default:
		return t.PriceNative.Sub(t.CommissionNative)
	}
}

// SettlementType is the cash transaction type recorded for the settlement.
func (t *Transaction) SettlementType() CashTransactionType {
	if t.Type == TransactionTypeDividend {
		return CashTransactionDividend
	}
	return CashTransactionTrade
}
