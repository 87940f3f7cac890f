package controllers

import (
	"context"
	"errors"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashTransactionsControllerI interface {
	GetAccountCashTransactions(ctx context.Context, user *models.User, accountID uuid.UUID) ([]schemas.CashTransactionResponse, error)
	GetCashTransactionByID(ctx context.Context, user *models.User, id uuid.UUID) (*schemas.CashTransactionResponse, error)
	CreateCashTransaction(ctx context.Context, user *models.User, accountID uuid.UUID, req *schemas.CashTransactionCreate) (*schemas.CashTransactionResponse, error)
	UpdateCashTransaction(ctx context.Context, user *models.User, id uuid.UUID, req *schemas.CashTransactionUpdate) (*schemas.CashTransactionResponse, error)
	DeleteCashTransaction(ctx context.Context, user *models.User, id uuid.UUID) error
}

func (c *Controller) GetAccountCashTransactions(ctx context.Context, user *models.User, accountID uuid.UUID) ([]schemas.CashTransactionResponse, error) {
	if _, err := c.ownedAccount(ctx, nil, user, accountID); err != nil {
		return nil, err
	}
	rows, err := c.CashTransactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.CashTransactionResponse, len(rows))
	for i := range rows {
		responses[i] = schemas.NewCashTransactionResponse(&rows[i])
	}
	return responses, nil
}

func (c *Controller) GetCashTransactionByID(ctx context.Context, user *models.User, id uuid.UUID) (*schemas.CashTransactionResponse, error) {
	row, err := c.CashTransactions.GetForUser(ctx, id, user.ID, nil)
	if err != nil {
		return nil, notFound(err, "Cash transaction not found")
	}
	response := schemas.NewCashTransactionResponse(row)
	return &response, nil
}

func (c *Controller) CreateCashTransaction(ctx context.Context, user *models.User, accountID uuid.UUID, req *schemas.CashTransactionCreate) (*schemas.CashTransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var row *models.CashTransaction
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		account, err := c.ownedAccount(ctx, tx, user, accountID)
		if err != nil {
			return err
		}
		row = req.ToModel(account.ID)
		if row.Symbol != nil {
			if err := c.Ledger.EnsureSecurity(ctx, tx, *row.Symbol, account.Currency); err != nil {
				return err
			}
		}
		if err := c.CashTransactions.Create(ctx, row, tx); err != nil {
			return err
		}

		if req.TargetAccountID != nil {
			if err := c.createTransferIn(ctx, tx, user, account, row, *req.TargetAccountID); err != nil {
				return err
			}
		}
		return c.Ledger.RefreshCashBalance(ctx, tx, account.ID)
	})
	if err != nil {
		return nil, err
	}

	response := schemas.NewCashTransactionResponse(row)
	return &response, nil
}

// createTransferIn books the receiving side of a TRANSFER_OUT on the target
// account and links both rows to each other.
func (c *Controller) createTransferIn(ctx context.Context, tx *gorm.DB, user *models.User, source *models.Account, out *models.CashTransaction, targetID uuid.UUID) error {
	if targetID == source.ID {
		return utils.BadRequest("target_account_id must differ from the source account")
	}
	target, err := c.Accounts.GetForUser(ctx, targetID, user.ID, tx)
	if err != nil {
		return notFound(err, "Target account not found")
	}
	if target.Currency != source.Currency && !out.FXRate.Valid {
		return utils.BadRequest("fx_rate is required for transfers between currencies")
	}

	sourceCurrency := string(source.Currency)
	targetCurrency := string(target.Currency)
	out.SourceCurrency = &sourceCurrency
	out.TargetCurrency = &targetCurrency

	in := &models.CashTransaction{
		AccountID:                target.ID,
		Type:                     models.CashTransactionTransferIn,
		Date:                     out.Date,
		Amount:                   transferInAmount(out.Amount, out.FXRate),
		Description:              out.Description,
		SourceCurrency:           &sourceCurrency,
		TargetCurrency:           &targetCurrency,
		FXRate:                   out.FXRate,
		RelatedCashTransactionID: &out.ID,
	}
	if err := c.CashTransactions.Create(ctx, in, tx); err != nil {
		return err
	}
	out.RelatedCashTransactionID = &in.ID
	if err := c.CashTransactions.Update(ctx, out, tx); err != nil {
		return err
	}
	return c.Ledger.RefreshCashBalance(ctx, tx, target.ID)
}

// transferInAmount converts the (negative) outgoing amount into the positive
// amount received on the other side.
func transferInAmount(outAmount decimal.Decimal, fxRate decimal.NullDecimal) decimal.Decimal {
	amount := outAmount.Neg()
	if fxRate.Valid {
		amount = amount.Mul(fxRate.Decimal).Round(6)
	}
	return amount
}

// mirrorAmount is the inverse of transferInAmount for the leg being edited.
func mirrorAmount(row *models.CashTransaction) decimal.Decimal {
	if row.Type == models.CashTransactionTransferOut {
		return transferInAmount(row.Amount, row.FXRate)
	}
	amount := row.Amount.Neg()
	if row.FXRate.Valid {
		amount = amount.DivRound(row.FXRate.Decimal, 6)
	}
	return amount
}

func (c *Controller) UpdateCashTransaction(ctx context.Context, user *models.User, id uuid.UUID, req *schemas.CashTransactionUpdate) (*schemas.CashTransactionResponse, error) {
	var row *models.CashTransaction
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		var err error
		row, err = c.CashTransactions.GetForUser(ctx, id, user.ID, tx)
		if err != nil {
			return notFound(err, "Cash transaction not found")
		}
		if row.RelatedTransactionID != nil {
			return utils.BadRequest("Settlements are updated through their transaction")
		}
		if err := req.Apply(row); err != nil {
			return err
		}
		if err := c.CashTransactions.Update(ctx, row, tx); err != nil {
			return err
		}

		if row.RelatedCashTransactionID != nil {
			pair, err := c.CashTransactions.GetByID(ctx, *row.RelatedCashTransactionID, tx)
			if err != nil {
				return err
			}
			pair.Date = row.Date
			pair.Description = row.Description
			pair.Amount = mirrorAmount(row)
			if err := c.CashTransactions.Update(ctx, pair, tx); err != nil {
				return err
			}
			if err := c.Ledger.RefreshCashBalance(ctx, tx, pair.AccountID); err != nil {
				return err
			}
		}
		return c.Ledger.RefreshCashBalance(ctx, tx, row.AccountID)
	})
	if err != nil {
		return nil, err
	}

	response := schemas.NewCashTransactionResponse(row)
	return &response, nil
}

// DeleteCashTransaction removes the row and, for transfers, the other leg too.
func (c *Controller) DeleteCashTransaction(ctx context.Context, user *models.User, id uuid.UUID) error {
	return repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		row, err := c.CashTransactions.GetForUser(ctx, id, user.ID, tx)
		if err != nil {
			return notFound(err, "Cash transaction not found")
		}
		if row.RelatedTransactionID != nil {
			return utils.BadRequest("Settlements are deleted with their transaction")
		}

		if row.RelatedCashTransactionID != nil {
			pair, err := c.CashTransactions.GetByID(ctx, *row.RelatedCashTransactionID, tx)
			if err == nil {
				if err := c.CashTransactions.Delete(ctx, pair, tx); err != nil {
					return err
				}
				if err := c.Ledger.RefreshCashBalance(ctx, tx, pair.AccountID); err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if err := c.CashTransactions.Delete(ctx, row, tx); err != nil {
			return err
		}
		return c.Ledger.RefreshCashBalance(ctx, tx, row.AccountID)
	})
}
