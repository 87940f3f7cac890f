package repositories

import (
	"context"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string, tx *gorm.DB) (*models.User, error)
	Create(ctx context.Context, u *models.User, tx *gorm.DB) error
	Update(ctx context.Context, u *models.User, tx *gorm.DB) error
	Delete(ctx context.Context, id uuid.UUID, tx *gorm.DB) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string, tx *gorm.DB) (*models.User, error) {
	var user models.User
	if err := session(ctx, r.db, tx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(u).Error
}

func (r *userRepo) Update(ctx context.Context, u *models.User, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Save(u).Error
}

// Delete removes the user; accounts and everything below them go with it
// through ON DELETE CASCADE.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID, tx *gorm.DB) error {
	result := session(ctx, r.db, tx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
