package schemas

import (
	"strings"
	"time"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ValidISOCurrency reports whether code is a known ISO 4217 currency.
func ValidISOCurrency(code string) bool {
	return code != "" && money.GetCurrency(code) != nil
}

// SecurityUpsert replaces the reference data of a security.
type SecurityUpsert struct {
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	Sector    *string             `json:"sector"`
	Industry  *string             `json:"industry"`
	MarketCap decimal.NullDecimal `json:"market_cap"`
	IsActive  *bool               `json:"is_active"`
	Exchange  string              `json:"exchange"`
	Currency  string              `json:"currency"`
	LastPrice decimal.NullDecimal `json:"last_price"`
}

func (s *SecurityUpsert) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToUpper(strings.TrimSpace(s.Type))
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	switch {
	case s.Name == "":
		return utils.BadRequest("name is required")
	case s.Type == "":
		return utils.BadRequest("type is required")
	case strings.TrimSpace(s.Exchange) == "":
		return utils.BadRequest("exchange is required")
	case !ValidISOCurrency(s.Currency):
		return utils.BadRequest("currency must be an ISO 4217 code")
	case s.LastPrice.Valid && !s.LastPrice.Decimal.IsPositive():
		return utils.BadRequest("last_price must be greater than zero")
	}
	return nil
}

// Apply copies the request onto security and reports whether the last price
// changed.
func (s *SecurityUpsert) Apply(security *models.Security, now time.Time) bool {
	security.Name = s.Name
	security.Type = s.Type
	security.Sector = s.Sector
	security.Industry = s.Industry
	security.MarketCap = s.MarketCap
	security.IsActive = s.IsActive == nil || *s.IsActive
	security.Exchange = strings.TrimSpace(s.Exchange)
	security.Currency = s.Currency

	changed := s.LastPrice.Valid != security.LastPrice.Valid ||
		(s.LastPrice.Valid && !s.LastPrice.Decimal.Equal(security.LastPrice.Decimal))
	if changed {
		security.LastPrice = s.LastPrice
		if s.LastPrice.Valid {
			security.LastPriceUpdated = &now
		} else {
			security.LastPriceUpdated = nil
		}
	}
	return changed
}

type SecurityResponse struct {
	Symbol           string              `json:"symbol"`
	Name             string              `json:"name"`
	Type             string              `json:"type"`
	Sector           *string             `json:"sector"`
	Industry         *string             `json:"industry"`
	MarketCap        decimal.NullDecimal `json:"market_cap"`
	IsActive         bool                `json:"is_active"`
	Exchange         string              `json:"exchange"`
	Currency         string              `json:"currency"`
	LastPrice        decimal.NullDecimal `json:"last_price"`
	LastPriceUpdated *time.Time          `json:"last_price_updated"`
}

func NewSecurityResponse(s *models.Security) SecurityResponse {
	return SecurityResponse{
		Symbol:           s.Symbol,
		Name:             s.Name,
		Type:             s.Type,
		Sector:           s.Sector,
		Industry:         s.Industry,
		MarketCap:        s.MarketCap,
		IsActive:         s.IsActive,
		Exchange:         s.Exchange,
		Currency:         s.Currency,
		LastPrice:        s.LastPrice,
		LastPriceUpdated: s.LastPriceUpdated,
	}
}
