package controllers

import (
	"context"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"

	"gorm.io/gorm"
)

type MarketDataControllerI interface {
	GetHistoricalPrices(ctx context.Context, symbol string, dates repositories.DateRange) ([]schemas.HistoricalPriceResponse, error)
	AddHistoricalPrice(ctx context.Context, symbol string, req *schemas.HistoricalPriceCreate) (*schemas.HistoricalPriceResponse, error)
	GetFXRates(ctx context.Context, from, to string, dates repositories.DateRange) ([]schemas.FXRateResponse, error)
	AddFXRate(ctx context.Context, req *schemas.FXRateCreate) (*schemas.FXRateResponse, error)
}

func (c *Controller) GetHistoricalPrices(ctx context.Context, symbol string, dates repositories.DateRange) ([]schemas.HistoricalPriceResponse, error) {
	symbol = normalizeSymbol(symbol)
	if _, err := c.Securities.GetBySymbol(ctx, symbol, nil); err != nil {
		return nil, notFound(err, "Security not found")
	}
	prices, err := c.MarketData.ListPrices(ctx, symbol, dates)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.HistoricalPriceResponse, len(prices))
	for i := range prices {
		responses[i] = schemas.NewHistoricalPriceResponse(&prices[i])
	}
	return responses, nil
}

// AddHistoricalPrice stores the price of one day, replacing a previous value
// for the same date.
func (c *Controller) AddHistoricalPrice(ctx context.Context, symbol string, req *schemas.HistoricalPriceCreate) (*schemas.HistoricalPriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	symbol = normalizeSymbol(symbol)

	var price *models.HistoricalPrice
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		if _, err := c.Securities.GetBySymbol(ctx, symbol, tx); err != nil {
			return notFound(err, "Security not found")
		}
		price = req.ToModel(symbol)
		return c.MarketData.UpsertPrice(ctx, price, tx)
	})
	if err != nil {
		return nil, err
	}

	response := schemas.NewHistoricalPriceResponse(price)
	return &response, nil
}

func (c *Controller) GetFXRates(ctx context.Context, from, to string, dates repositories.DateRange) ([]schemas.FXRateResponse, error) {
	rates, err := c.MarketData.ListFXRates(ctx, normalizeSymbol(from), normalizeSymbol(to), dates)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.FXRateResponse, len(rates))
	for i := range rates {
		responses[i] = schemas.NewFXRateResponse(&rates[i])
	}
	return responses, nil
}

func (c *Controller) AddFXRate(ctx context.Context, req *schemas.FXRateCreate) (*schemas.FXRateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rate := req.ToModel()
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		return c.MarketData.UpsertFXRate(ctx, rate, tx)
	})
	if err != nil {
		return nil, err
	}
	response := schemas.NewFXRateResponse(rate)
	return &response, nil
}
