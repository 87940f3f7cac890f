package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistoricalBalance is an end-of-day snapshot of an account.
type HistoricalBalance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	AccountID   uuid.UUID       `gorm:"type:uuid;column:account_id;not null;uniqueIndex:uix_account_date"`
	Account     *Account        `gorm:"constraint:OnDelete:CASCADE"`
	Date        time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uix_account_date"`
	CashBalance decimal.Decimal `gorm:"column:cash_balance;type:numeric(20,6);not null"`
	MarketValue decimal.Decimal `gorm:"column:market_value;type:numeric(20,6);not null"`
	TotalValue  decimal.Decimal `gorm:"column:total_value;type:numeric(20,6);not null"`
	Deposits    decimal.Decimal `gorm:"column:deposits;type:numeric(20,6);not null"`
	Withdrawals decimal.Decimal `gorm:"column:withdrawals;type:numeric(20,6);not null"`
	Dividends   decimal.Decimal `gorm:"column:dividends;type:numeric(20,6);not null"`
	Interest    decimal.Decimal `gorm:"column:interest;type:numeric(20,6);not null"`
	Fees        decimal.Decimal `gorm:"column:fees;type:numeric(20,6);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (HistoricalBalance) TableName() string {
	return "historical_balances"
}

func (b *HistoricalBalance) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	b.TotalValue = b.CashBalance.Add(b.MarketValue)
	return nil
}
