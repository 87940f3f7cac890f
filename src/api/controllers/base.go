package controllers

import (
	"context"
	"errors"
	"time"

	"financialamigo/src/clients/google"
	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/services"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IController interface {
	AuthControllerI
	UsersControllerI
	AccountsControllerI
	TransactionsControllerI
	CashTransactionsControllerI
	HoldingsControllerI
	SecuritiesControllerI
	MarketDataControllerI
	BenchmarksControllerI
	BalancesControllerI
}

type Controller struct {
	DB *gorm.DB

	Users            repositories.UserRepository
	Accounts         repositories.AccountRepository
	Transactions     repositories.TransactionRepository
	CashTransactions repositories.CashTransactionRepository
	Holdings         repositories.HoldingRepository
	Securities       repositories.SecurityRepository
	MarketData       repositories.MarketDataRepository
	Benchmarks       repositories.BenchmarkRepository
	Balances         repositories.BalanceRepository

	Ledger services.LedgerServiceI
	Tokens services.TokenServiceI
	Export services.ExportServiceI
	Google google.GoogleClientI

	Now func() time.Time
}

func NewController(db *gorm.DB, tokens services.TokenServiceI, googleClient google.GoogleClientI) *Controller {
	c := &Controller{
		DB:               db,
		Users:            repositories.NewUserRepository(db),
		Accounts:         repositories.NewAccountRepository(db),
		Transactions:     repositories.NewTransactionRepository(db),
		CashTransactions: repositories.NewCashTransactionRepository(db),
		Holdings:         repositories.NewHoldingRepository(db),
		Securities:       repositories.NewSecurityRepository(db),
		MarketData:       repositories.NewMarketDataRepository(db),
		Benchmarks:       repositories.NewBenchmarkRepository(db),
		Balances:         repositories.NewBalanceRepository(db),
		Tokens:           tokens,
		Export:           services.NewExportService(),
		Google:           googleClient,
		Now:              time.Now,
	}
	c.Ledger = services.NewLedgerService(c.Transactions, c.Holdings, c.Securities, c.CashTransactions, c.Accounts)
	return c
}

// notFound turns a missing row into a 404 carrying message.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(message)
	}
	return err
}

// ownedAccount loads an account of the user. Accounts of other users are
// reported exactly like missing ones.
func (c *Controller) ownedAccount(ctx context.Context, tx *gorm.DB, user *models.User, id uuid.UUID) (*models.Account, error) {
	account, err := c.Accounts.GetForUser(ctx, id, user.ID, tx)
	if err != nil {
		return nil, notFound(err, "Account not found")
	}
	return account, nil
}
