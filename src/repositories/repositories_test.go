package repositories_test

import (
	"context"
	"testing"
	"time"

	"financialamigo/src/database"
	"financialamigo/src/models"
	"financialamigo/src/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestDB(logrus.New())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db.Gorm
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: email, GoogleID: "google-" + email}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user, nil))
	return user
}

func createAccount(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Account {
	t.Helper()
	account := &models.Account{UserID: userID, Name: "TFSA", Type: models.AccountTypeTFSA, Currency: models.CurrencyCAD}
	require.NoError(t, repositories.NewAccountRepository(db).Create(context.Background(), account, nil))
	return account
}

func TestAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewAccountRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")
	account := createAccount(t, db, owner.ID)

	t.Run("GetForUser returns own account", func(t *testing.T) {
		found, err := repo.GetForUser(ctx, account.ID, owner.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, account.Name, found.Name)
		assert.True(t, found.CashBalance.IsZero())
	})

	t.Run("GetForUser hides other users' accounts", func(t *testing.T) {
		_, err := repo.GetForUser(ctx, account.ID, other.ID, nil)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("SetCashBalance", func(t *testing.T) {
		require.NoError(t, repo.SetCashBalance(ctx, account.ID, decimal.RequireFromString("12.5"), nil))
		found, err := repo.GetByID(ctx, account.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "12.5", found.CashBalance.String())
	})

	t.Run("GetByUser", func(t *testing.T) {
		accounts, err := repo.GetByUser(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, accounts)

		accounts, err = repo.GetByUser(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
	})
}

func TestTransactionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewTransactionRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "trader@example.com")
	other := createUser(t, db, "stranger@example.com")
	account := createAccount(t, db, owner.ID)

	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }
	newTx := func(date time.Time, kind models.TransactionType) *models.Transaction {
		return &models.Transaction{
			AccountID:        account.ID,
			Date:             date,
			Symbol:           "XEQT",
			Quantity:         decimal.NewFromInt(10),
			PriceNative:      decimal.NewFromInt(20),
			CommissionNative: decimal.NewFromInt(1),
			Currency:         models.CurrencyCAD,
			Type:             kind,
		}
	}

	first := newTx(day(1), models.TransactionTypeBuy)
	second := newTx(day(3), models.TransactionTypeSell)
	dividend := newTx(day(2), models.TransactionTypeDividend)
	for _, tx := range []*models.Transaction{first, second, dividend} {
		require.NoError(t, repo.Create(ctx, tx, nil))
	}

	t.Run("Create computes total", func(t *testing.T) {
		found, err := repo.GetForUser(ctx, first.ID, owner.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "199", found.TotalNative.String())
	})

	t.Run("ListForUser is newest first", func(t *testing.T) {
		transactions, err := repo.ListForUser(ctx, owner.ID, repositories.TransactionFilter{AccountID: &account.ID})
		require.NoError(t, err)
		require.Len(t, transactions, 3)
		assert.Equal(t, second.ID, transactions[0].ID)
		assert.Equal(t, dividend.ID, transactions[1].ID)
		assert.Equal(t, first.ID, transactions[2].ID)
	})

	t.Run("ListTrades skips dividends and sorts ascending", func(t *testing.T) {
		trades, err := repo.ListTrades(ctx, account.ID, "XEQT", nil)
		require.NoError(t, err)
		require.Len(t, trades, 2)
		assert.Equal(t, first.ID, trades[0].ID)
		assert.Equal(t, second.ID, trades[1].ID)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		_, err := repo.GetForUser(ctx, first.ID, other.ID, nil)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		transactions, err := repo.ListForUser(ctx, other.ID, repositories.TransactionFilter{})
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, repositories.NewUserRepository(db).Delete(ctx, owner.ID, nil))
		_, err := repo.GetForUser(ctx, first.ID, owner.ID, nil)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		var count int64
		require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestCashTransactionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewCashTransactionRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "saver@example.com")
	account := createAccount(t, db, owner.ID)

	rows := []models.CashTransaction{
		{AccountID: account.ID, Type: models.CashTransactionContribution, Date: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("1000")},
		{AccountID: account.ID, Type: models.CashTransactionInterest, Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("3.5")},
		{AccountID: account.ID, Type: models.CashTransactionInterest, Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("4.25")},
		{AccountID: account.ID, Type: models.CashTransactionFee, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("-9.99")},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i], nil))
	}

	t.Run("Balance sums every row", func(t *testing.T) {
		balance, err := repo.Balance(ctx, account.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "997.76", balance.String())
	})

	t.Run("SumByType honours the start date", func(t *testing.T) {
		interest, err := repo.SumByType(ctx, account.ID, models.CashTransactionInterest, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "4.25", interest.String())
	})

	t.Run("ListByAccount is newest first", func(t *testing.T) {
		listed, err := repo.ListByAccount(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, listed, 4)
		assert.Equal(t, models.CashTransactionFee, listed[0].Type)
	})
}

func TestMarketDataRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewMarketDataRepository(db)
	ctx := context.Background()

	require.NoError(t, repositories.NewSecurityRepository(db).Create(ctx, &models.Security{
		Symbol: "VFV", Name: "Vanguard S&P 500", Type: "ETF", Exchange: "TSX", Currency: "CAD", IsActive: true,
	}, nil))

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	price := func(close string) *models.HistoricalPrice {
		c := decimal.RequireFromString(close)
		return &models.HistoricalPrice{Symbol: "VFV", Date: date, Open: c, High: c, Low: c, Close: c, AdjustedClose: c, Volume: decimal.NewFromInt(100)}
	}

	t.Run("UpsertPrice replaces the row for the same day", func(t *testing.T) {
		require.NoError(t, repo.UpsertPrice(ctx, price("120"), nil))
		require.NoError(t, repo.UpsertPrice(ctx, price("121.5"), nil))

		prices, err := repo.ListPrices(ctx, "VFV", repositories.DateRange{})
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.Equal(t, "121.5", prices[0].Close.String())
	})

	t.Run("UpsertFXRate and filters", func(t *testing.T) {
		rate := &models.HistoricalFXRate{FromCurrency: "USD", ToCurrency: "CAD", Date: date, Rate: decimal.RequireFromString("1.36")}
		require.NoError(t, repo.UpsertFXRate(ctx, rate, nil))

		rates, err := repo.ListFXRates(ctx, "USD", "CAD", repositories.DateRange{})
		require.NoError(t, err)
		require.Len(t, rates, 1)

		later := date.AddDate(0, 0, 1)
		rates, err = repo.ListFXRates(ctx, "USD", "CAD", repositories.DateRange{From: &later})
		require.NoError(t, err)
		assert.Empty(t, rates)
	})
}
