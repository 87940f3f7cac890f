package repositories

import (
	"context"

	"financialamigo/src/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SecurityRepository interface {
	GetAll(ctx context.Context) ([]models.Security, error)
	GetBySymbol(ctx context.Context, symbol string, tx *gorm.DB) (*models.Security, error)
	Create(ctx context.Context, s *models.Security, tx *gorm.DB) error
	Update(ctx context.Context, s *models.Security, tx *gorm.DB) error
	// CreateIfMissing inserts s unless a security with the same symbol exists.
	CreateIfMissing(ctx context.Context, s *models.Security, tx *gorm.DB) error
}

type securityRepo struct {
	db *gorm.DB
}

func NewSecurityRepository(db *gorm.DB) SecurityRepository {
	return &securityRepo{db: db}
}

func (r *securityRepo) GetAll(ctx context.Context) ([]models.Security, error) {
	var securities []models.Security
	err := r.db.WithContext(ctx).Order("symbol ASC").Find(&securities).Error
	return securities, err
}

func (r *securityRepo) GetBySymbol(ctx context.Context, symbol string, tx *gorm.DB) (*models.Security, error) {
	var security models.Security
	if err := session(ctx, r.db, tx).First(&security, "symbol = ?", symbol).Error; err != nil {
		return nil, err
	}
	return &security, nil
}

func (r *securityRepo) Create(ctx context.Context, s *models.Security, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(s).Error
}

func (r *securityRepo) Update(ctx context.Context, s *models.Security, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Save(s).Error
}

func (r *securityRepo) CreateIfMissing(ctx context.Context, s *models.Security, tx *gorm.DB) error {
	return session(ctx, r.db, tx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "symbol"}}, DoNothing: true}).
		Create(s).Error
}
