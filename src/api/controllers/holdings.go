package controllers

import (
	"context"

	"financialamigo/src/models"
	"financialamigo/src/schemas"

	"github.com/google/uuid"
)

type HoldingsControllerI interface {
	GetAllHoldings(ctx context.Context, user *models.User) ([]schemas.HoldingResponse, error)
	GetAccountHoldings(ctx context.Context, user *models.User, accountID uuid.UUID) ([]schemas.HoldingResponse, error)
}

func toHoldingResponses(holdings []models.Holding) []schemas.HoldingResponse {
	responses := make([]schemas.HoldingResponse, len(holdings))
	for i := range holdings {
		responses[i] = schemas.NewHoldingResponse(&holdings[i])
	}
	return responses
}

func (c *Controller) GetAllHoldings(ctx context.Context, user *models.User) ([]schemas.HoldingResponse, error) {
	holdings, err := c.Holdings.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toHoldingResponses(holdings), nil
}

func (c *Controller) GetAccountHoldings(ctx context.Context, user *models.User, accountID uuid.UUID) ([]schemas.HoldingResponse, error) {
	if _, err := c.ownedAccount(ctx, nil, user, accountID); err != nil {
		return nil, err
	}
	holdings, err := c.Holdings.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toHoldingResponses(holdings), nil
}
