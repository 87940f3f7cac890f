package services

import (
	"context"
	"errors"
	"fmt"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// avgCostPlaces matches the scale of the numeric(20,6) columns.
const avgCostPlaces = 6

// LedgerServiceI keeps holdings, trade settlements and cash balances in step
// with the transactions of an account. Every method runs on the caller's
// database transaction.
type LedgerServiceI interface {
	// EnsureSecurity creates a placeholder security for an unknown symbol.
	EnsureSecurity(ctx context.Context, tx *gorm.DB, symbol string, currency models.Currency) error
	// TransactionSaved updates everything derived from t after it was created
	// or updated. previousSymbol is the symbol before an update, if it changed.
	TransactionSaved(ctx context.Context, tx *gorm.DB, account *models.Account, t *models.Transaction, previousSymbol string) error
	// TransactionDeleted removes the settlement of a deleted transaction and
	// rebuilds what it contributed to.
	TransactionDeleted(ctx context.Context, tx *gorm.DB, t *models.Transaction) error
	RebuildHolding(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, symbol string) error
	RefreshCashBalance(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
	// RevalueHoldings recomputes market value and unrealized P/L of every
	// holding of the security.
	RevalueHoldings(ctx context.Context, tx *gorm.DB, security *models.Security) error
}

type LedgerService struct {
	transactionRepo     repositories.TransactionRepository
	holdingRepo         repositories.HoldingRepository
	securityRepo        repositories.SecurityRepository
	cashTransactionRepo repositories.CashTransactionRepository
	accountRepo         repositories.AccountRepository
}

func NewLedgerService(
	transactionRepo repositories.TransactionRepository,
	holdingRepo repositories.HoldingRepository,
	securityRepo repositories.SecurityRepository,
	cashTransactionRepo repositories.CashTransactionRepository,
	accountRepo repositories.AccountRepository,
) *LedgerService {
	return &LedgerService{
		transactionRepo:     transactionRepo,
		holdingRepo:         holdingRepo,
		securityRepo:        securityRepo,
		cashTransactionRepo: cashTransactionRepo,
		accountRepo:         accountRepo,
	}
}

func (s *LedgerService) EnsureSecurity(ctx context.Context, tx *gorm.DB, symbol string, currency models.Currency) error {
	return s.securityRepo.CreateIfMissing(ctx, &models.Security{
		Symbol:   symbol,
		Name:     symbol,
		Type:     "STOCK",
		IsActive: true,
		Exchange: "UNKNOWN",
		Currency: string(currency),
	}, tx)
}

func (s *LedgerService) TransactionSaved(ctx context.Context, tx *gorm.DB, account *models.Account, t *models.Transaction, previousSymbol string) error {
	if err := s.RebuildHolding(ctx, tx, account.ID, t.Symbol); err != nil {
		return err
	}
	if previousSymbol != "" && previousSymbol != t.Symbol {
		if err := s.RebuildHolding(ctx, tx, account.ID, previousSymbol); err != nil {
			return err
		}
	}
	if err := s.syncSettlement(ctx, tx, account, t); err != nil {
		return err
	}
	return s.RefreshCashBalance(ctx, tx, account.ID)
}

func (s *LedgerService) TransactionDeleted(ctx context.Context, tx *gorm.DB, t *models.Transaction) error {
	settlement, err := s.cashTransactionRepo.GetSettlement(ctx, t.ID, tx)
	switch {
	case err == nil:
		if err := s.cashTransactionRepo.Delete(ctx, settlement, tx); err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err := s.RebuildHolding(ctx, tx, t.AccountID, t.Symbol); err != nil {
		return err
	}
	return s.RefreshCashBalance(ctx, tx, t.AccountID)
}

// RebuildHolding replays the BUY and SELL transactions of the position with
// the average cost method. A replay that sells more than is held fails with a
// 400 error so the caller's transaction rolls back.
func (s *LedgerService) RebuildHolding(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, symbol string) error {
	trades, err := s.transactionRepo.ListTrades(ctx, accountID, symbol, tx)
	if err != nil {
		return fmt.Errorf("failed to list trades: %w", err)
	}

	quantity, cost, err := replayTrades(trades)
	if err != nil {
		return err
	}

	if quantity.IsZero() {
		return s.holdingRepo.Delete(ctx, accountID, symbol, tx)
	}

	holding, err := s.holdingRepo.Get(ctx, accountID, symbol, tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		holding = &models.Holding{AccountID: accountID, Symbol: symbol}
	} else if err != nil {
		return err
	}

	holding.Quantity = quantity
	holding.AvgCostNative = cost.DivRound(quantity, avgCostPlaces)

	security, err := s.securityRepo.GetBySymbol(ctx, symbol, tx)
	if err != nil {
		return fmt.Errorf("failed to load security %s: %w", symbol, err)
	}
	holding.Revalue(security.LastPrice)

	return s.holdingRepo.Save(ctx, holding, tx)
}

// replayTrades returns the position quantity and its total cost after applying
// trades in order.
func replayTrades(trades []models.Transaction) (decimal.Decimal, decimal.Decimal, error) {
	quantity := decimal.Zero
	cost := decimal.Zero

	for _, t := range trades {
		switch t.Type {
		case models.TransactionTypeBuy:
			quantity = quantity.Add(t.Quantity)
			cost = cost.Add(t.Quantity.Mul(t.PriceNative)).Add(t.CommissionNative)
		case models.TransactionTypeSell:
			if t.Quantity.GreaterThan(quantity) {
				return decimal.Zero, decimal.Zero, utils.BadRequest(fmt.Sprintf(
					"Insufficient quantity: cannot sell %s %s on %s, only %s held",
					t.Quantity, t.Symbol, t.Date.Format(utils.ShortDashDateLayout), quantity))
			}
			avg := cost.Div(quantity)
			cost = cost.Sub(avg.Mul(t.Quantity))
			quantity = quantity.Sub(t.Quantity)
			if quantity.IsZero() {
				cost = decimal.Zero
			}
		}
	}
	return quantity, cost, nil
}

// syncSettlement keeps the cash row of a trade or dividend in step with it. No
// row exists when the transaction currency differs from the account's.
func (s *LedgerService) syncSettlement(ctx context.Context, tx *gorm.DB, account *models.Account, t *models.Transaction) error {
	settlement, err := s.cashTransactionRepo.GetSettlement(ctx, t.ID, tx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	exists := err == nil

	if t.Currency != account.Currency {
		if exists {
			return s.cashTransactionRepo.Delete(ctx, settlement, tx)
		}
		return nil
	}

	if !exists {
		settlement = &models.CashTransaction{
			AccountID:            account.ID,
			RelatedTransactionID: &t.ID,
		}
	}
	symbol := t.Symbol
	description := fmt.Sprintf("%s %s %s @ %s", t.Type, t.Quantity, t.Symbol, t.PriceNative)
	if t.Type == models.TransactionTypeDividend {
		description = fmt.Sprintf("Dividend %s", t.Symbol)
	}
	settlement.Symbol = &symbol
	settlement.Type = t.SettlementType()
	settlement.Date = t.Date
	settlement.Amount = t.SettlementAmount()
	settlement.Description = &description

	if exists {
		return s.cashTransactionRepo.Update(ctx, settlement, tx)
	}
	return s.cashTransactionRepo.Create(ctx, settlement, tx)
}

func (s *LedgerService) RefreshCashBalance(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	balance, err := s.cashTransactionRepo.Balance(ctx, accountID, tx)
	if err != nil {
		return fmt.Errorf("failed to sum cash transactions: %w", err)
	}
	return s.accountRepo.SetCashBalance(ctx, accountID, balance, tx)
}

func (s *LedgerService) RevalueHoldings(ctx context.Context, tx *gorm.DB, security *models.Security) error {
	holdings, err := s.holdingRepo.ListBySymbol(ctx, security.Symbol, tx)
	if err != nil {
		return err
	}
	for i := range holdings {
		holdings[i].Revalue(security.LastPrice)
		if err := s.holdingRepo.Save(ctx, &holdings[i], tx); err != nil {
			return err
		}
	}
	return nil
}
