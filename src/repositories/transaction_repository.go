package repositories

import (
	"context"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionFilter struct {
	AccountID *uuid.UUID
}

type TransactionRepository interface {
	// ListForUser returns the user's transactions, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID, tx *gorm.DB) (*models.Transaction, error)
	// ListTrades returns BUY and SELL rows for one position in the order they
	// apply to it.
	ListTrades(ctx context.Context, accountID uuid.UUID, symbol string, tx *gorm.DB) ([]models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction, tx *gorm.DB) error
	Update(ctx context.Context, t *models.Transaction, tx *gorm.DB) error
	Delete(ctx context.Context, t *models.Transaction, tx *gorm.DB) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) ListForUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Where("account_id IN (?)", ownedAccounts(r.db, userID))
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}

	var transactions []models.Transaction
	err := query.Order("date DESC").Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetForUser(ctx context.Context, id, userID uuid.UUID, tx *gorm.DB) (*models.Transaction, error) {
	db := session(ctx, r.db, tx)
	var transaction models.Transaction
	err := db.Where("id = ? AND account_id IN (?)", id, ownedAccounts(db, userID)).
		First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) ListTrades(ctx context.Context, accountID uuid.UUID, symbol string, tx *gorm.DB) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := session(ctx, r.db, tx).
		Where("account_id = ? AND symbol = ? AND type IN ?", accountID, symbol,
			[]models.TransactionType{models.TransactionTypeBuy, models.TransactionTypeSell}).
		Order("date ASC").
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(t).Error
}

func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Save(t).Error
}

func (r *transactionRepo) Delete(ctx context.Context, t *models.Transaction, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Delete(t).Error
}
