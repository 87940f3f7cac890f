package schemas

import (
	"strings"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BenchmarkCreate struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Currency    string  `json:"currency"`
	Description *string `json:"description"`
}

func (b *BenchmarkCreate) Validate() error {
	b.Symbol = strings.ToUpper(strings.TrimSpace(b.Symbol))
	b.Name = strings.TrimSpace(b.Name)
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	switch {
	case b.Symbol == "":
		return utils.BadRequest("symbol is required")
	case b.Name == "":
		return utils.BadRequest("name is required")
	case !ValidISOCurrency(b.Currency):
		return utils.BadRequest("currency must be an ISO 4217 code")
	}
	return nil
}

func (b *BenchmarkCreate) ToModel() *models.Benchmark {
	return &models.Benchmark{
		Symbol:      b.Symbol,
		Name:        b.Name,
		Currency:    b.Currency,
		Description: b.Description,
	}
}

type BenchmarkResponse struct {
	ID          string  `json:"id"`
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Currency    string  `json:"currency"`
	Description *string `json:"description"`
}

func NewBenchmarkResponse(b *models.Benchmark) BenchmarkResponse {
	return BenchmarkResponse{
		ID:          b.ID.String(),
		Symbol:      b.Symbol,
		Name:        b.Name,
		Currency:    b.Currency,
		Description: b.Description,
	}
}

type BenchmarkValueCreate struct {
	Date  *Date           `json:"date"`
	Value decimal.Decimal `json:"value"`
}

func (v *BenchmarkValueCreate) Validate() error {
	if v.Date == nil {
		return utils.BadRequest("date is required")
	}
	if !v.Value.IsPositive() {
		return utils.BadRequest("value must be greater than zero")
	}
	return nil
}

type BenchmarkValueResponse struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

func NewBenchmarkValueResponse(v *models.BenchmarkValue) BenchmarkValueResponse {
	return BenchmarkValueResponse{Date: NewDate(v.Date), Value: v.Value}
}

type PortfolioBenchmarkCreate struct {
	BenchmarkID uuid.UUID           `json:"benchmark_id"`
	Weight      decimal.NullDecimal `json:"weight"`
	StartDate   *Date               `json:"start_date"`
	EndDate     *Date               `json:"end_date"`
}

var hundred = decimal.NewFromInt(100)

func (p *PortfolioBenchmarkCreate) Validate() error {
	if p.BenchmarkID == uuid.Nil {
		return utils.BadRequest("benchmark_id is required")
	}
	if p.StartDate == nil {
		return utils.BadRequest("start_date is required")
	}
	if p.Weight.Valid && (p.Weight.Decimal.IsNegative() || p.Weight.Decimal.GreaterThan(hundred)) {
		return utils.BadRequest("weight must be between 0 and 100")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate.Time) {
		return utils.BadRequest("end_date cannot be before start_date")
	}
	return nil
}

// ToModel defaults the weight to 100.
func (p *PortfolioBenchmarkCreate) ToModel(accountID uuid.UUID) *models.PortfolioBenchmark {
	weight := hundred
	if p.Weight.Valid {
		weight = p.Weight.Decimal
	}
	link := &models.PortfolioBenchmark{
		AccountID:   accountID,
		BenchmarkID: p.BenchmarkID,
		Weight:      weight,
		StartDate:   p.StartDate.ToTime(),
	}
	if p.EndDate != nil {
		end := p.EndDate.ToTime()
		link.EndDate = &end
	}
	return link
}

type PortfolioBenchmarkResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	BenchmarkID string          `json:"benchmark_id"`
	Weight      decimal.Decimal `json:"weight"`
	StartDate   Date            `json:"start_date"`
	EndDate     *Date           `json:"end_date"`
}

func NewPortfolioBenchmarkResponse(p *models.PortfolioBenchmark) PortfolioBenchmarkResponse {
	return PortfolioBenchmarkResponse{
		ID:          p.ID.String(),
		AccountID:   p.AccountID.String(),
		BenchmarkID: p.BenchmarkID.String(),
		Weight:      p.Weight,
		StartDate:   NewDate(p.StartDate),
		EndDate:     datePtr(p.EndDate),
	}
}
