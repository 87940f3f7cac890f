package repositories

import (
	"context"
	"errors"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BalanceRepository interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID, dates DateRange) ([]models.HistoricalBalance, error)
	// Upsert stores the snapshot for (account, date), replacing an existing one.
	Upsert(ctx context.Context, b *models.HistoricalBalance, tx *gorm.DB) error
}

type balanceRepo struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepo{db: db}
}

func (r *balanceRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, dates DateRange) ([]models.HistoricalBalance, error) {
	var balances []models.HistoricalBalance
	query := dates.apply(r.db.WithContext(ctx).Where("account_id = ?", accountID), "date")
	err := query.Order("date ASC").Find(&balances).Error
	return balances, err
}

func (r *balanceRepo) Upsert(ctx context.Context, b *models.HistoricalBalance, tx *gorm.DB) error {
	db := session(ctx, r.db, tx)
	b.TotalValue = b.CashBalance.Add(b.MarketValue)

	var existing models.HistoricalBalance
	err := db.Where("account_id = ? AND date = ?", b.AccountID, b.Date).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(b).Error
	case err != nil:
		return err
	}
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	return db.Save(b).Error
}
