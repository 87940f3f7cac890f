package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Email           string    `gorm:"column:email;uniqueIndex;not null"`
	Name            string    `gorm:"column:name;not null"`
	Image           *string   `gorm:"column:image"`
	Provider        string    `gorm:"column:provider;not null"`
	GoogleID        string    `gorm:"column:google_id;uniqueIndex;not null"`
	DefaultCurrency Currency  `gorm:"column:default_currency;type:varchar(3);not null;check:default_currency IN ('CAD','USD')"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	if u.Provider == "" {
		u.Provider = "google"
	}
	if u.DefaultCurrency == "" {
		u.DefaultCurrency = CurrencyCAD
	}
	return nil
}
