package database_test

import (
	"context"
	"testing"
	"time"

	"financialamigo/src/config"
	"financialamigo/src/database"
	"financialamigo/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDB(t *testing.T) {
	logger := logrus.New()

	t.Run("sqlite in memory with schema", func(t *testing.T) {
		db, err := database.NewTestDB(logger)
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Ping(context.Background()))
		for _, model := range models.All() {
			assert.True(t, db.Gorm.Migrator().HasTable(model))
		}
	})

	t.Run("foreign keys cascade", func(t *testing.T) {
		db, err := database.NewTestDB(logger)
		require.NoError(t, err)
		defer db.Close()

		user := &models.User{Email: "cascade@example.com", Name: "Cascade", GoogleID: "g-1"}
		require.NoError(t, db.Gorm.Create(user).Error)
		account := &models.Account{UserID: user.ID, Name: "TFSA", Type: models.AccountTypeTFSA, Currency: models.CurrencyCAD}
		require.NoError(t, db.Gorm.Create(account).Error)

		require.NoError(t, db.Gorm.Delete(user).Error)
		var count int64
		require.NoError(t, db.Gorm.Model(&models.Account{}).Where("id = ?", account.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("orphan rows are rejected", func(t *testing.T) {
		db, err := database.NewTestDB(logger)
		require.NoError(t, err)
		defer db.Close()

		account := &models.Account{UserID: uuid.New(), Name: "Orphan", Type: models.AccountTypeRRSP, Currency: models.CurrencyCAD}
		assert.Error(t, db.Gorm.Create(account).Error)
	})

	t.Run("security references live on child tables", func(t *testing.T) {
		db, err := database.NewTestDB(logger)
		require.NoError(t, err)
		defer db.Close()

		assert.Empty(t, referencedTables(t, db, "securities"))
		assert.ElementsMatch(t, []string{"accounts"}, referencedTables(t, db, "holdings"))
		assert.ElementsMatch(t, []string{"accounts", "transactions", "cash_transactions"}, referencedTables(t, db, "cash_transactions"))
		assert.Empty(t, referencedTables(t, db, "historical_prices"))

		user := &models.User{Email: "writer@example.com", Name: "Writer", GoogleID: "g-2"}
		require.NoError(t, db.Gorm.Create(user).Error)
		account := &models.Account{UserID: user.ID, Name: "Margin", Type: models.AccountTypeNonRegistered, Currency: models.CurrencyCAD}
		require.NoError(t, db.Gorm.Create(account).Error)

		security := &models.Security{Symbol: "RY", Name: "RY", Type: "EQUITY", IsActive: true, Exchange: "TSX", Currency: "CAD"}
		require.NoError(t, db.Gorm.Create(security).Error)

		holding := &models.Holding{AccountID: account.ID, Symbol: "RY", Quantity: decimal.NewFromInt(5), AvgCostNative: decimal.NewFromInt(120)}
		require.NoError(t, db.Gorm.Create(holding).Error)

		symbol := "RY"
		cash := &models.CashTransaction{
			AccountID: account.ID,
			Symbol:    &symbol,
			Type:      models.CashTransactionDividend,
			Date:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(4),
		}
		require.NoError(t, db.Gorm.Create(cash).Error)

		price := &models.HistoricalPrice{Symbol: "RY", Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(121)}
		require.NoError(t, db.Gorm.Create(price).Error)

		require.NoError(t, db.Gorm.Create(&models.Security{Symbol: "TD", Name: "TD", Type: "EQUITY", IsActive: true, Exchange: "TSX", Currency: "CAD"}).Error)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := database.SetupDB(context.Background(), config.SQLConfig{Driver: "mysql"}, logger)
		assert.Error(t, err)
	})
}

// referencedTables lists the tables the foreign keys of table point at.
func referencedTables(t *testing.T, db *database.DB, table string) []string {
	t.Helper()

	var keys []struct {
		Table string `gorm:"column:table"`
	}
	require.NoError(t, db.Gorm.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&keys).Error)

	tables := []string{}
	for _, key := range keys {
		tables = append(tables, key.Table)
	}
	return tables
}
