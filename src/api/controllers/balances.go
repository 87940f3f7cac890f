package controllers

import (
	"context"
	"time"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BalancesControllerI interface {
	GetAccountBalances(ctx context.Context, user *models.User, accountID uuid.UUID, dates repositories.DateRange) ([]schemas.BalanceResponse, error)
	// UpsertAccountBalance stores the end-of-day snapshot of date.
	UpsertAccountBalance(ctx context.Context, user *models.User, accountID uuid.UUID, date time.Time, req *schemas.BalanceUpsert) (*schemas.BalanceResponse, error)
}

func (c *Controller) GetAccountBalances(ctx context.Context, user *models.User, accountID uuid.UUID, dates repositories.DateRange) ([]schemas.BalanceResponse, error) {
	if _, err := c.ownedAccount(ctx, nil, user, accountID); err != nil {
		return nil, err
	}
	balances, err := c.Balances.ListByAccount(ctx, accountID, dates)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.BalanceResponse, len(balances))
	for i := range balances {
		responses[i] = schemas.NewBalanceResponse(&balances[i])
	}
	return responses, nil
}

func (c *Controller) UpsertAccountBalance(ctx context.Context, user *models.User, accountID uuid.UUID, date time.Time, req *schemas.BalanceUpsert) (*schemas.BalanceResponse, error) {
	var balance *models.HistoricalBalance
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		account, err := c.ownedAccount(ctx, tx, user, accountID)
		if err != nil {
			return err
		}
		balance = req.ToModel(account.ID, date)
		return c.Balances.Upsert(ctx, balance, tx)
	})
	if err != nil {
		return nil, err
	}
	response := schemas.NewBalanceResponse(balance)
	return &response, nil
}
