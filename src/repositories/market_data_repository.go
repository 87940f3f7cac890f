package repositories

import (
	"context"
	"errors"
	"time"

	"financialamigo/src/models"

	"gorm.io/gorm"
)

type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) apply(db *gorm.DB, column string) *gorm.DB {
	if d.From != nil {
		db = db.Where(column+" >= ?", *d.From)
	}
	if d.To != nil {
		db = db.Where(column+" <= ?", *d.To)
	}
	return db
}

type MarketDataRepository interface {
	ListPrices(ctx context.Context, symbol string, dates DateRange) ([]models.HistoricalPrice, error)
	// UpsertPrice stores the price for (symbol, date), replacing an existing one.
	UpsertPrice(ctx context.Context, p *models.HistoricalPrice, tx *gorm.DB) error
	ListFXRates(ctx context.Context, from, to string, dates DateRange) ([]models.HistoricalFXRate, error)
	UpsertFXRate(ctx context.Context, rate *models.HistoricalFXRate, tx *gorm.DB) error
}

type marketDataRepo struct {
	db *gorm.DB
}

func NewMarketDataRepository(db *gorm.DB) MarketDataRepository {
	return &marketDataRepo{db: db}
}

func (r *marketDataRepo) ListPrices(ctx context.Context, symbol string, dates DateRange) ([]models.HistoricalPrice, error) {
	var prices []models.HistoricalPrice
	query := dates.apply(r.db.WithContext(ctx).Where("symbol = ?", symbol), "date")
	err := query.Order("date ASC").Find(&prices).Error
	return prices, err
}

func (r *marketDataRepo) UpsertPrice(ctx context.Context, p *models.HistoricalPrice, tx *gorm.DB) error {
	db := session(ctx, r.db, tx)
	var existing models.HistoricalPrice
	err := db.Where("symbol = ? AND date = ?", p.Symbol, p.Date).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(p).Error
	case err != nil:
		return err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return db.Save(p).Error
}

func (r *marketDataRepo) ListFXRates(ctx context.Context, from, to string, dates DateRange) ([]models.HistoricalFXRate, error) {
	query := r.db.WithContext(ctx)
	if from != "" {
		query = query.Where("from_currency = ?", from)
	}
	if to != "" {
		query = query.Where("to_currency = ?", to)
	}

	var rates []models.HistoricalFXRate
	err := dates.apply(query, "date").
		Order("date ASC").
		Order("from_currency ASC").
		Order("to_currency ASC").
		Find(&rates).Error
	return rates, err
}

func (r *marketDataRepo) UpsertFXRate(ctx context.Context, rate *models.HistoricalFXRate, tx *gorm.DB) error {
	db := session(ctx, r.db, tx)
	var existing models.HistoricalFXRate
	err := db.Where("from_currency = ? AND to_currency = ? AND date = ?", rate.FromCurrency, rate.ToCurrency, rate.Date).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(rate).Error
	case err != nil:
		return err
	}
	rate.ID = existing.ID
	rate.CreatedAt = existing.CreatedAt
	return db.Save(rate).Error
}
