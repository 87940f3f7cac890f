package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HistoricalPrice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	Symbol        string          `gorm:"column:symbol;not null;uniqueIndex:uix_security_date"`
	Date          time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uix_security_date"`
	Open          decimal.Decimal `gorm:"column:open;type:numeric(20,6);not null"`
	High          decimal.Decimal `gorm:"column:high;type:numeric(20,6);not null"`
	Low           decimal.Decimal `gorm:"column:low;type:numeric(20,6);not null"`
	Close         decimal.Decimal `gorm:"column:close;type:numeric(20,6);not null"`
	Volume        decimal.Decimal `gorm:"column:volume;type:numeric(20,0);not null"`
	AdjustedClose decimal.Decimal `gorm:"column:adjusted_close;type:numeric(20,6);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (HistoricalPrice) TableName() string {
	return "historical_prices"
}

func (p *HistoricalPrice) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// HistoricalFXRate records 1 FromCurrency = Rate ToCurrency on Date.
type HistoricalFXRate struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	FromCurrency string          `gorm:"column:from_currency;type:varchar(3);not null;uniqueIndex:uix_currency_pair_date"`
	ToCurrency   string          `gorm:"column:to_currency;type:varchar(3);not null;uniqueIndex:uix_currency_pair_date"`
	Date         time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uix_currency_pair_date"`
	Rate         decimal.Decimal `gorm:"column:rate;type:numeric(20,6);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (HistoricalFXRate) TableName() string {
	return "historical_fx_rates"
}

func (r *HistoricalFXRate) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}
