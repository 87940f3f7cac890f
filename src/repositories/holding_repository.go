package repositories

import (
	"context"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HoldingRepository interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Holding, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Holding, error)
	ListBySymbol(ctx context.Context, symbol string, tx *gorm.DB) ([]models.Holding, error)
	// Get returns gorm.ErrRecordNotFound when the account holds no position in symbol.
	Get(ctx context.Context, accountID uuid.UUID, symbol string, tx *gorm.DB) (*models.Holding, error)
	Save(ctx context.Context, h *models.Holding, tx *gorm.DB) error
	Delete(ctx context.Context, accountID uuid.UUID, symbol string, tx *gorm.DB) error
}

type holdingRepo struct {
	db *gorm.DB
}

func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Holding, error) {
	var holdings []models.Holding
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("symbol ASC").
		Find(&holdings).Error
	return holdings, err
}

func (r *holdingRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Holding, error) {
	var holdings []models.Holding
	err := r.db.WithContext(ctx).
		Where("account_id IN (?)", ownedAccounts(r.db, userID)).
		Order("account_id ASC").
		Order("symbol ASC").
		Find(&holdings).Error
	return holdings, err
}

func (r *holdingRepo) ListBySymbol(ctx context.Context, symbol string, tx *gorm.DB) ([]models.Holding, error) {
	var holdings []models.Holding
	err := session(ctx, r.db, tx).Where("symbol = ?", symbol).Find(&holdings).Error
	return holdings, err
}

func (r *holdingRepo) Get(ctx context.Context, accountID uuid.UUID, symbol string, tx *gorm.DB) (*models.Holding, error) {
	var holding models.Holding
	err := session(ctx, r.db, tx).
		Where("account_id = ? AND symbol = ?", accountID, symbol).
		First(&holding).Error
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// Save inserts the holding when it has no id yet and updates it otherwise.
func (r *holdingRepo) Save(ctx context.Context, h *models.Holding, tx *gorm.DB) error {
	db := session(ctx, r.db, tx)
	if h.ID == uuid.Nil {
		return db.Create(h).Error
	}
	return db.Save(h).Error
}

func (r *holdingRepo) Delete(ctx context.Context, accountID uuid.UUID, symbol string, tx *gorm.DB) error {
	return session(ctx, r.db, tx).
		Where("account_id = ? AND symbol = ?", accountID, symbol).
		Delete(&models.Holding{}).Error
}
