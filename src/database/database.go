package database

import (
	"context"
	"fmt"
	"time"

	"financialamigo/src/config"
	"financialamigo/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB bundles the gorm handle with the pgx pool underneath it. Pool is nil when
// running on sqlite.
type DB struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

func newGormConfig(logger logrus.FieldLogger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// SetupDB opens the configured SQL database. With autoMigrate set, the schema is
// created from the gorm models instead of the goose migrations.
func SetupDB(ctx context.Context, cfg config.SQLConfig, logger logrus.FieldLogger) (*DB, error) {
	gormConfig := newGormConfig(logger)

	var db DB
	switch cfg.Driver {
	case "postgres":
		pool, err := SetupPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		gormDB, err := openPostgres(pool, gormConfig)
		if err != nil {
			pool.Close()
			return nil, err
		}
		db = DB{Gorm: gormDB, Pool: pool}
	case "sqlite":
		gormDB, err := openSQLite(cfg.DSN(), gormConfig)
		if err != nil {
			return nil, err
		}
		db = DB{Gorm: gormDB}
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	if cfg.AutoMigrate {
		if err := AutoMigrate(db.Gorm); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return &db, nil
}

// NewTestDB opens a fresh in-memory sqlite database with the full schema.
func NewTestDB(logger logrus.FieldLogger) (*DB, error) {
	return SetupDB(context.Background(), config.SQLConfig{
		Driver:           "sqlite",
		ConnectionString: MemoryDSN(),
		AutoMigrate:      true,
	}, logger)
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Ping checks the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if d.Pool != nil {
		return d.Pool.Ping(ctx)
	}
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DB) Close() {
	if d.Pool != nil {
		d.Pool.Close()
		return
	}
	if sqlDB, err := d.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
