package controllers

import (
	"context"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountsControllerI interface {
	GetAllAccounts(ctx context.Context, user *models.User) ([]schemas.AccountResponse, error)
	GetAccountByID(ctx context.Context, user *models.User, id uuid.UUID) (*schemas.AccountResponse, error)
	CreateAccount(ctx context.Context, user *models.User, req *schemas.AccountCreate) (*schemas.AccountResponse, error)
	UpdateAccount(ctx context.Context, user *models.User, id uuid.UUID, req *schemas.AccountUpdate) (*schemas.AccountResponse, error)
	DeleteAccount(ctx context.Context, user *models.User, id uuid.UUID) error
}

func (c *Controller) accountResponse(ctx context.Context, account *models.Account) (*schemas.AccountResponse, error) {
	interest, err := c.CashTransactions.SumByType(ctx, account.ID, models.CashTransactionInterest, utils.StartOfYear(c.Now()))
	if err != nil {
		return nil, err
	}
	response := schemas.NewAccountResponse(account, interest)
	return &response, nil
}

func (c *Controller) GetAllAccounts(ctx context.Context, user *models.User) ([]schemas.AccountResponse, error) {
	accounts, err := c.Accounts.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.AccountResponse, 0, len(accounts))
	for i := range accounts {
		response, err := c.accountResponse(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (c *Controller) GetAccountByID(ctx context.Context, user *models.User, id uuid.UUID) (*schemas.AccountResponse, error) {
	account, err := c.ownedAccount(ctx, nil, user, id)
	if err != nil {
		return nil, err
	}
	return c.accountResponse(ctx, account)
}

func (c *Controller) CreateAccount(ctx context.Context, user *models.User, req *schemas.AccountCreate) (*schemas.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	account := &models.Account{
		UserID:        user.ID,
		Name:          req.Name,
		Type:          req.Type,
		Currency:      req.Currency,
		Description:   req.Description,
		Broker:        req.Broker,
		AccountNumber: req.AccountNumber,
	}
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		return c.Accounts.Create(ctx, account, tx)
	})
	if err != nil {
		return nil, err
	}
	return c.accountResponse(ctx, account)
}

func (c *Controller) UpdateAccount(ctx context.Context, user *models.User, id uuid.UUID, req *schemas.AccountUpdate) (*schemas.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var account *models.Account
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		var err error
		account, err = c.ownedAccount(ctx, tx, user, id)
		if err != nil {
			return err
		}
		req.Apply(account)
		return c.Accounts.Update(ctx, account, tx)
	})
	if err != nil {
		return nil, err
	}
	return c.accountResponse(ctx, account)
}

// DeleteAccount removes the account; its transactions, holdings, cash
// movements, benchmark links and balances cascade.
func (c *Controller) DeleteAccount(ctx context.Context, user *models.User, id uuid.UUID) error {
	return repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		account, err := c.ownedAccount(ctx, tx, user, id)
		if err != nil {
			return err
		}
		return c.Accounts.Delete(ctx, account, tx)
	})
}
