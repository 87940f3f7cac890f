package repositories

import (
	"context"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// session picks the handle a repository call runs on. A nil tx means the call
// is not part of a caller's unit of work; gorm still wraps each write in its own
// transaction.
func session(ctx context.Context, db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// WithTransaction runs fn in a single database transaction, committing when it
// returns nil and rolling back otherwise.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// ownedAccounts is the subquery of account ids belonging to userID; every
// account-scoped lookup filters through it.
func ownedAccounts(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Account{}).
		Select("id").
		Where("user_id = ?", userID)
}
