package schemas

import (
	"strings"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/shopspring/decimal"
)

type HistoricalPriceCreate struct {
	Date          *Date               `json:"date"`
	Open          decimal.Decimal     `json:"open"`
	High          decimal.Decimal     `json:"high"`
	Low           decimal.Decimal     `json:"low"`
	Close         decimal.Decimal     `json:"close"`
	Volume        decimal.Decimal     `json:"volume"`
	AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
}

func (p *HistoricalPriceCreate) Validate() error {
	switch {
	case p.Date == nil:
		return utils.BadRequest("date is required")
	case !p.Close.IsPositive() || !p.Open.IsPositive() || !p.High.IsPositive() || !p.Low.IsPositive():
		return utils.BadRequest("open, high, low and close must be greater than zero")
	case p.High.LessThan(p.Low):
		return utils.BadRequest("high cannot be lower than low")
	case p.Volume.IsNegative():
		return utils.BadRequest("volume cannot be negative")
	}
	return nil
}

// ToModel fills a missing adjusted close with the close.
func (p *HistoricalPriceCreate) ToModel(symbol string) *models.HistoricalPrice {
	adjusted := p.Close
	if p.AdjustedClose.Valid {
		adjusted = p.AdjustedClose.Decimal
	}
	return &models.HistoricalPrice{
		Symbol:        symbol,
		Date:          p.Date.ToTime(),
		Open:          p.Open,
		High:          p.High,
		Low:           p.Low,
		Close:         p.Close,
		Volume:        p.Volume,
		AdjustedClose: adjusted,
	}
}

type HistoricalPriceResponse struct {
	Symbol        string          `json:"symbol"`
	Date          Date            `json:"date"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Close         decimal.Decimal `json:"close"`
	Volume        decimal.Decimal `json:"volume"`
	AdjustedClose decimal.Decimal `json:"adjusted_close"`
}

func NewHistoricalPriceResponse(p *models.HistoricalPrice) HistoricalPriceResponse {
	return HistoricalPriceResponse{
		Symbol:        p.Symbol,
		Date:          NewDate(p.Date),
		Open:          p.Open,
		High:          p.High,
		Low:           p.Low,
		Close:         p.Close,
		Volume:        p.Volume,
		AdjustedClose: p.AdjustedClose,
	}
}

type FXRateCreate struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Date         *Date           `json:"date"`
	Rate         decimal.Decimal `json:"rate"`
}

func (r *FXRateCreate) Validate() error {
	r.FromCurrency = strings.ToUpper(strings.TrimSpace(r.FromCurrency))
	r.ToCurrency = strings.ToUpper(strings.TrimSpace(r.ToCurrency))
	switch {
	case !ValidISOCurrency(r.FromCurrency) || !ValidISOCurrency(r.ToCurrency):
		return utils.BadRequest("from_currency and to_currency must be ISO 4217 codes")
	case r.FromCurrency == r.ToCurrency:
		return utils.BadRequest("from_currency and to_currency must differ")
	case r.Date == nil:
		return utils.BadRequest("date is required")
	case !r.Rate.IsPositive():
		return utils.BadRequest("rate must be greater than zero")
	}
	return nil
}

func (r *FXRateCreate) ToModel() *models.HistoricalFXRate {
	return &models.HistoricalFXRate{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Date:         r.Date.ToTime(),
		Rate:         r.Rate,
	}
}

type FXRateResponse struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Date         Date            `json:"date"`
	Rate         decimal.Decimal `json:"rate"`
}

func NewFXRateResponse(r *models.HistoricalFXRate) FXRateResponse {
	return FXRateResponse{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Date:         NewDate(r.Date),
		Rate:         r.Rate,
	}
}
