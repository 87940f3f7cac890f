package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Benchmark is an index such as ^GSPC that accounts can be compared against.
type Benchmark struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Symbol      string    `gorm:"column:symbol;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;not null"`
	Currency    string    `gorm:"column:currency;type:varchar(3);not null"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Benchmark) TableName() string {
	return "benchmarks"
}

func (b *Benchmark) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

type BenchmarkValue struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	BenchmarkID uuid.UUID       `gorm:"type:uuid;column:benchmark_id;not null;uniqueIndex:uix_benchmark_date"`
	Benchmark   *Benchmark      `gorm:"constraint:OnDelete:CASCADE"`
	Date        time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uix_benchmark_date"`
	Value       decimal.Decimal `gorm:"column:value;type:numeric(20,6);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (BenchmarkValue) TableName() string {
	return "benchmark_values"
}

func (v *BenchmarkValue) BeforeCreate(tx *gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// PortfolioBenchmark weights a benchmark for an account over a date range. A
// nil EndDate means the link is still active.
type PortfolioBenchmark struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	AccountID   uuid.UUID       `gorm:"type:uuid;column:account_id;not null;uniqueIndex:uix_account_benchmark_start"`
	Account     *Account        `gorm:"constraint:OnDelete:CASCADE"`
	BenchmarkID uuid.UUID       `gorm:"type:uuid;column:benchmark_id;not null;uniqueIndex:uix_account_benchmark_start"`
	Benchmark   *Benchmark      `gorm:"constraint:OnDelete:CASCADE"`
	Weight      decimal.Decimal `gorm:"column:weight;type:numeric(5,2);not null;check:weight >= 0 AND weight <= 100"`
	StartDate   time.Time       `gorm:"column:start_date;type:date;not null;uniqueIndex:uix_account_benchmark_start"`
	EndDate     *time.Time      `gorm:"column:end_date;type:date"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (PortfolioBenchmark) TableName() string {
	return "portfolio_benchmarks"
}

func (p *PortfolioBenchmark) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
