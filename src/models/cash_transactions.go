package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashTransaction is a non-trade cash movement. Amount is positive for inflows
// and negative for outflows.
type CashTransaction struct {
	ID                       uuid.UUID           `gorm:"type:uuid;primaryKey;column:id"`
	AccountID                uuid.UUID           `gorm:"type:uuid;column:account_id;not null;index"`
	Account                  *Account            `gorm:"constraint:OnDelete:CASCADE"`
	Symbol                   *string             `gorm:"column:symbol"`
	RelatedTransactionID     *uuid.UUID          `gorm:"type:uuid;column:related_transaction_id;index"`
	RelatedTransaction       *Transaction        `gorm:"foreignKey:RelatedTransactionID;constraint:OnDelete:CASCADE"`
	RelatedCashTransactionID *uuid.UUID          `gorm:"type:uuid;column:related_cash_transaction_id"`
	RelatedCashTransaction   *CashTransaction    `gorm:"foreignKey:RelatedCashTransactionID;constraint:OnDelete:SET NULL"`
	Type                     CashTransactionType `gorm:"column:type;type:varchar(20);not null;check:type IN ('CONTRIBUTION','WITHDRAWAL','TRANSFER_IN','TRANSFER_OUT','INTEREST','FEE','DIVIDEND','TRADE')"`
	Date                     time.Time           `gorm:"column:date;not null;index"`
	Amount                   decimal.Decimal     `gorm:"column:amount;type:numeric(20,6);not null"`
	Description              *string             `gorm:"column:description"`
	SourceCurrency           *string             `gorm:"column:source_currency;type:varchar(3)"`
	TargetCurrency           *string             `gorm:"column:target_currency;type:varchar(3)"`
	FXRate                   decimal.NullDecimal `gorm:"column:fx_rate;type:numeric(20,6)"`
	CreatedAt                time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (CashTransaction) TableName() string {
	return "cash_transactions"
}

func (c *CashTransaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
