package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryDSN returns a DSN for a private in-memory sqlite database with foreign
// keys enforced.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
}

func openSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one connection keeps transactions serialized.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
