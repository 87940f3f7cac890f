package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is an investment account (e.g. "TD TFSA") owned by a single user.
type Account struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	UserID        uuid.UUID       `gorm:"type:uuid;column:user_id;not null;index"`
	User          *User           `gorm:"constraint:OnDelete:CASCADE"`
	Name          string          `gorm:"column:name;not null"`
	Type          AccountType     `gorm:"column:type;type:varchar(20);not null;check:type IN ('TFSA','RRSP','FHSA','NON_REGISTERED')"`
	Currency      Currency        `gorm:"column:currency;type:varchar(3);not null;check:currency IN ('CAD','USD')"`
	Description   *string         `gorm:"column:description"`
	Broker        *string         `gorm:"column:broker"`
	AccountNumber *string         `gorm:"column:account_number"`
	CashBalance   decimal.Decimal `gorm:"column:cash_balance;type:numeric(20,6);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	if a.Currency == "" {
		a.Currency = CurrencyCAD
	}
	return nil
}
