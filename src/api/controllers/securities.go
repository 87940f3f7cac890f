package controllers

import (
	"context"
	"errors"
	"strings"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"

	"gorm.io/gorm"
)

type SecuritiesControllerI interface {
	GetAllSecurities(ctx context.Context) ([]schemas.SecurityResponse, error)
	GetSecurity(ctx context.Context, symbol string) (*schemas.SecurityResponse, error)
	// UpsertSecurity replaces the reference data of symbol, creating it when
	// missing. A new last price revalues every holding of the symbol.
	UpsertSecurity(ctx context.Context, symbol string, req *schemas.SecurityUpsert) (*schemas.SecurityResponse, error)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (c *Controller) GetAllSecurities(ctx context.Context) ([]schemas.SecurityResponse, error) {
	securities, err := c.Securities.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.SecurityResponse, len(securities))
	for i := range securities {
		responses[i] = schemas.NewSecurityResponse(&securities[i])
	}
	return responses, nil
}

func (c *Controller) GetSecurity(ctx context.Context, symbol string) (*schemas.SecurityResponse, error) {
	security, err := c.Securities.GetBySymbol(ctx, normalizeSymbol(symbol), nil)
	if err != nil {
		return nil, notFound(err, "Security not found")
	}
	response := schemas.NewSecurityResponse(security)
	return &response, nil
}

func (c *Controller) UpsertSecurity(ctx context.Context, symbol string, req *schemas.SecurityUpsert) (*schemas.SecurityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	symbol = normalizeSymbol(symbol)

	var security *models.Security
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		existing, err := c.Securities.GetBySymbol(ctx, symbol, tx)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			security = &models.Security{Symbol: symbol}
			req.Apply(security, c.Now())
			return c.Securities.Create(ctx, security, tx)
		case err != nil:
			return err
		}

		security = existing
		priceChanged := req.Apply(security, c.Now())
		if err := c.Securities.Update(ctx, security, tx); err != nil {
			return err
		}
		if !priceChanged {
			return nil
		}
		return c.Ledger.RevalueHoldings(ctx, tx, security)
	})
	if err != nil {
		return nil, err
	}

	response := schemas.NewSecurityResponse(security)
	return &response, nil
}
