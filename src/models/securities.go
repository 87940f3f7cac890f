package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Security is shared reference data keyed by ticker symbol.
type Security struct {
	Symbol           string              `gorm:"primaryKey;column:symbol"`
	Name             string              `gorm:"column:name;not null"`
	Type             string              `gorm:"column:type;not null"`
	Sector           *string             `gorm:"column:sector;index"`
	Industry         *string             `gorm:"column:industry;index"`
	MarketCap        decimal.NullDecimal `gorm:"column:market_cap;type:numeric(20,2)"`
	IsActive         bool                `gorm:"column:is_active;not null"`
	Exchange         string              `gorm:"column:exchange;not null"`
	Currency         string              `gorm:"column:currency;type:varchar(3);not null"`
	LastPrice        decimal.NullDecimal `gorm:"column:last_price;type:numeric(20,6)"`
	LastPriceUpdated *time.Time          `gorm:"column:last_price_updated"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Security) TableName() string {
	return "securities"
}
