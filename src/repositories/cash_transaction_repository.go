package repositories

import (
	"context"
	"time"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashTransactionRepository interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.CashTransaction, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID, tx *gorm.DB) (*models.CashTransaction, error)
	GetByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (*models.CashTransaction, error)
	// GetSettlement returns the cash row generated for a trade or dividend, or
	// gorm.ErrRecordNotFound when there is none.
	GetSettlement(ctx context.Context, transactionID uuid.UUID, tx *gorm.DB) (*models.CashTransaction, error)
	Create(ctx context.Context, c *models.CashTransaction, tx *gorm.DB) error
	Update(ctx context.Context, c *models.CashTransaction, tx *gorm.DB) error
	Delete(ctx context.Context, c *models.CashTransaction, tx *gorm.DB) error
	// Balance sums every cash movement of the account.
	Balance(ctx context.Context, accountID uuid.UUID, tx *gorm.DB) (decimal.Decimal, error)
	// SumByType sums movements of one type dated on or after since.
	SumByType(ctx context.Context, accountID uuid.UUID, kind models.CashTransactionType, since time.Time) (decimal.Decimal, error)
}

type cashTransactionRepo struct {
	db *gorm.DB
}

func NewCashTransactionRepository(db *gorm.DB) CashTransactionRepository {
	return &cashTransactionRepo{db: db}
}

func (r *cashTransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.CashTransaction, error) {
	var rows []models.CashTransaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *cashTransactionRepo) GetForUser(ctx context.Context, id, userID uuid.UUID, tx *gorm.DB) (*models.CashTransaction, error) {
	db := session(ctx, r.db, tx)
	var row models.CashTransaction
	err := db.Where("id = ? AND account_id IN (?)", id, ownedAccounts(db, userID)).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cashTransactionRepo) GetByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (*models.CashTransaction, error) {
	var row models.CashTransaction
	if err := session(ctx, r.db, tx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cashTransactionRepo) GetSettlement(ctx context.Context, transactionID uuid.UUID, tx *gorm.DB) (*models.CashTransaction, error) {
	var row models.CashTransaction
	err := session(ctx, r.db, tx).
		Where("related_transaction_id = ?", transactionID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cashTransactionRepo) Create(ctx context.Context, c *models.CashTransaction, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(c).Error
}

func (r *cashTransactionRepo) Update(ctx context.Context, c *models.CashTransaction, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Save(c).Error
}

func (r *cashTransactionRepo) Delete(ctx context.Context, c *models.CashTransaction, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Delete(c).Error
}

func (r *cashTransactionRepo) Balance(ctx context.Context, accountID uuid.UUID, tx *gorm.DB) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := session(ctx, r.db, tx).
		Model(&models.CashTransaction{}).
		Where("account_id = ?", accountID).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

func (r *cashTransactionRepo) SumByType(ctx context.Context, accountID uuid.UUID, kind models.CashTransactionType, since time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.CashTransaction{}).
		Where("account_id = ? AND type = ? AND date >= ?", accountID, kind, since).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
