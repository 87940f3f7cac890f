package repositories

import (
	"context"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Account, error)
	// GetForUser returns gorm.ErrRecordNotFound both when the account does not
	// exist and when it belongs to somebody else.
	GetForUser(ctx context.Context, id, userID uuid.UUID, tx *gorm.DB) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (*models.Account, error)
	Create(ctx context.Context, a *models.Account, tx *gorm.DB) error
	Update(ctx context.Context, a *models.Account, tx *gorm.DB) error
	Delete(ctx context.Context, a *models.Account, tx *gorm.DB) error
	SetCashBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, tx *gorm.DB) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *accountRepo) GetForUser(ctx context.Context, id, userID uuid.UUID, tx *gorm.DB) (*models.Account, error) {
	var account models.Account
	err := session(ctx, r.db, tx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (*models.Account, error) {
	var account models.Account
	if err := session(ctx, r.db, tx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Create(ctx context.Context, a *models.Account, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(a).Error
}

func (r *accountRepo) Update(ctx context.Context, a *models.Account, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Save(a).Error
}

func (r *accountRepo) Delete(ctx context.Context, a *models.Account, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Delete(a).Error
}

func (r *accountRepo) SetCashBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, tx *gorm.DB) error {
	return session(ctx, r.db, tx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("cash_balance", balance).Error
}
