package repositories

import (
	"context"
	"errors"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BenchmarkRepository interface {
	GetAll(ctx context.Context) ([]models.Benchmark, error)
	GetByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (*models.Benchmark, error)
	Create(ctx context.Context, b *models.Benchmark, tx *gorm.DB) error
	ListValues(ctx context.Context, benchmarkID uuid.UUID, dates DateRange) ([]models.BenchmarkValue, error)
	UpsertValue(ctx context.Context, v *models.BenchmarkValue, tx *gorm.DB) error

	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.PortfolioBenchmark, error)
	Link(ctx context.Context, link *models.PortfolioBenchmark, tx *gorm.DB) error
	// Unlink deletes a link of the given account, returning
	// gorm.ErrRecordNotFound when the account has no such link.
	Unlink(ctx context.Context, accountID, linkID uuid.UUID, tx *gorm.DB) error
}

type benchmarkRepo struct {
	db *gorm.DB
}

func NewBenchmarkRepository(db *gorm.DB) BenchmarkRepository {
	return &benchmarkRepo{db: db}
}

func (r *benchmarkRepo) GetAll(ctx context.Context) ([]models.Benchmark, error) {
	var benchmarks []models.Benchmark
	err := r.db.WithContext(ctx).Order("symbol ASC").Find(&benchmarks).Error
	return benchmarks, err
}

func (r *benchmarkRepo) GetByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (*models.Benchmark, error) {
	var benchmark models.Benchmark
	if err := session(ctx, r.db, tx).First(&benchmark, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &benchmark, nil
}

func (r *benchmarkRepo) Create(ctx context.Context, b *models.Benchmark, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(b).Error
}

func (r *benchmarkRepo) ListValues(ctx context.Context, benchmarkID uuid.UUID, dates DateRange) ([]models.BenchmarkValue, error) {
	var values []models.BenchmarkValue
	query := dates.apply(r.db.WithContext(ctx).Where("benchmark_id = ?", benchmarkID), "date")
	err := query.Order("date ASC").Find(&values).Error
	return values, err
}

func (r *benchmarkRepo) UpsertValue(ctx context.Context, v *models.BenchmarkValue, tx *gorm.DB) error {
	db := session(ctx, r.db, tx)
	var existing models.BenchmarkValue
	err := db.Where("benchmark_id = ? AND date = ?", v.BenchmarkID, v.Date).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(v).Error
	case err != nil:
		return err
	}
	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	return db.Save(v).Error
}

func (r *benchmarkRepo) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.PortfolioBenchmark, error) {
	var links []models.PortfolioBenchmark
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("start_date ASC").
		Find(&links).Error
	return links, err
}

func (r *benchmarkRepo) Link(ctx context.Context, link *models.PortfolioBenchmark, tx *gorm.DB) error {
	return session(ctx, r.db, tx).Create(link).Error
}

func (r *benchmarkRepo) Unlink(ctx context.Context, accountID, linkID uuid.UUID, tx *gorm.DB) error {
	result := session(ctx, r.db, tx).
		Where("id = ? AND account_id = ?", linkID, accountID).
		Delete(&models.PortfolioBenchmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
