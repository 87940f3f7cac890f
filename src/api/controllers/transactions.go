package controllers

import (
	"context"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"
	"financialamigo/src/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionsControllerI interface {
	GetAllTransactions(ctx context.Context, user *models.User, accountID *uuid.UUID) ([]schemas.TransactionResponse, error)
	GetTransactionByID(ctx context.Context, user *models.User, id uuid.UUID) (*schemas.TransactionResponse, error)
	CreateTransaction(ctx context.Context, user *models.User, req *schemas.TransactionCreate) (*schemas.TransactionResponse, error)
	UpdateTransaction(ctx context.Context, user *models.User, id uuid.UUID, req *schemas.TransactionUpdate) (*schemas.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, user *models.User, id uuid.UUID) error
	ExportTransactions(ctx context.Context, user *models.User, accountID *uuid.UUID, format services.ExportFormat) ([]byte, error)
}

func (c *Controller) GetAllTransactions(ctx context.Context, user *models.User, accountID *uuid.UUID) ([]schemas.TransactionResponse, error) {
	transactions, err := c.Transactions.ListForUser(ctx, user.ID, repositories.TransactionFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = schemas.NewTransactionResponse(&transactions[i])
	}
	return responses, nil
}

func (c *Controller) GetTransactionByID(ctx context.Context, user *models.User, id uuid.UUID) (*schemas.TransactionResponse, error) {
	transaction, err := c.Transactions.GetForUser(ctx, id, user.ID, nil)
	if err != nil {
		return nil, notFound(err, "Transaction not found")
	}
	response := schemas.NewTransactionResponse(transaction)
	return &response, nil
}

func (c *Controller) CreateTransaction(ctx context.Context, user *models.User, req *schemas.TransactionCreate) (*schemas.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	transaction := req.ToModel()
	if err := schemas.ValidateTransaction(transaction); err != nil {
		return nil, err
	}

	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		account, err := c.ownedAccount(ctx, tx, user, transaction.AccountID)
		if err != nil {
			return err
		}
		if err := c.Ledger.EnsureSecurity(ctx, tx, transaction.Symbol, transaction.Currency); err != nil {
			return err
		}
		if err := c.Transactions.Create(ctx, transaction, tx); err != nil {
			return err
		}
		return c.Ledger.TransactionSaved(ctx, tx, account, transaction, "")
	})
	if err != nil {
		return nil, err
	}

	response := schemas.NewTransactionResponse(transaction)
	return &response, nil
}

// UpdateTransaction applies a partial update and recomputes the total from the
// resulting fields.
func (c *Controller) UpdateTransaction(ctx context.Context, user *models.User, id uuid.UUID, req *schemas.TransactionUpdate) (*schemas.TransactionResponse, error) {
	var transaction *models.Transaction
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		var err error
		transaction, err = c.Transactions.GetForUser(ctx, id, user.ID, tx)
		if err != nil {
			return notFound(err, "Transaction not found")
		}

		previousSymbol := transaction.Symbol
		req.Apply(transaction)
		if err := schemas.ValidateTransaction(transaction); err != nil {
			return err
		}

		account, err := c.Accounts.GetByID(ctx, transaction.AccountID, tx)
		if err != nil {
			return err
		}
		if err := c.Ledger.EnsureSecurity(ctx, tx, transaction.Symbol, transaction.Currency); err != nil {
			return err
		}
		if err := c.Transactions.Update(ctx, transaction, tx); err != nil {
			return err
		}
		return c.Ledger.TransactionSaved(ctx, tx, account, transaction, previousSymbol)
	})
	if err != nil {
		return nil, err
	}

	response := schemas.NewTransactionResponse(transaction)
	return &response, nil
}

func (c *Controller) DeleteTransaction(ctx context.Context, user *models.User, id uuid.UUID) error {
	return repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		transaction, err := c.Transactions.GetForUser(ctx, id, user.ID, tx)
		if err != nil {
			return notFound(err, "Transaction not found")
		}
		if err := c.Transactions.Delete(ctx, transaction, tx); err != nil {
			return err
		}
		return c.Ledger.TransactionDeleted(ctx, tx, transaction)
	})
}

func (c *Controller) ExportTransactions(ctx context.Context, user *models.User, accountID *uuid.UUID, format services.ExportFormat) ([]byte, error) {
	if _, err := format.ContentType(); err != nil {
		return nil, err
	}
	transactions, err := c.Transactions.ListForUser(ctx, user.ID, repositories.TransactionFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	accounts, err := c.Accounts.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(accounts))
	for _, account := range accounts {
		names[account.ID.String()] = account.Name
	}
	return c.Export.ExportTransactions(format, transactions, names)
}
