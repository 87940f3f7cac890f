package controllers

import (
	"context"

	"financialamigo/src/models"
	"financialamigo/src/repositories"
	"financialamigo/src/schemas"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BenchmarksControllerI interface {
	GetAllBenchmarks(ctx context.Context) ([]schemas.BenchmarkResponse, error)
	CreateBenchmark(ctx context.Context, req *schemas.BenchmarkCreate) (*schemas.BenchmarkResponse, error)
	GetBenchmarkValues(ctx context.Context, benchmarkID uuid.UUID, dates repositories.DateRange) ([]schemas.BenchmarkValueResponse, error)
	AddBenchmarkValue(ctx context.Context, benchmarkID uuid.UUID, req *schemas.BenchmarkValueCreate) (*schemas.BenchmarkValueResponse, error)
	GetAccountBenchmarks(ctx context.Context, user *models.User, accountID uuid.UUID) ([]schemas.PortfolioBenchmarkResponse, error)
	LinkBenchmark(ctx context.Context, user *models.User, accountID uuid.UUID, req *schemas.PortfolioBenchmarkCreate) (*schemas.PortfolioBenchmarkResponse, error)
	UnlinkBenchmark(ctx context.Context, user *models.User, accountID, linkID uuid.UUID) error
}

func (c *Controller) GetAllBenchmarks(ctx context.Context) ([]schemas.BenchmarkResponse, error) {
	benchmarks, err := c.Benchmarks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.BenchmarkResponse, len(benchmarks))
	for i := range benchmarks {
		responses[i] = schemas.NewBenchmarkResponse(&benchmarks[i])
	}
	return responses, nil
}

func (c *Controller) CreateBenchmark(ctx context.Context, req *schemas.BenchmarkCreate) (*schemas.BenchmarkResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	benchmark := req.ToModel()
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		return c.Benchmarks.Create(ctx, benchmark, tx)
	})
	if err != nil {
		return nil, err
	}
	response := schemas.NewBenchmarkResponse(benchmark)
	return &response, nil
}

func (c *Controller) GetBenchmarkValues(ctx context.Context, benchmarkID uuid.UUID, dates repositories.DateRange) ([]schemas.BenchmarkValueResponse, error) {
	if _, err := c.Benchmarks.GetByID(ctx, benchmarkID, nil); err != nil {
		return nil, notFound(err, "Benchmark not found")
	}
	values, err := c.Benchmarks.ListValues(ctx, benchmarkID, dates)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.BenchmarkValueResponse, len(values))
	for i := range values {
		responses[i] = schemas.NewBenchmarkValueResponse(&values[i])
	}
	return responses, nil
}

func (c *Controller) AddBenchmarkValue(ctx context.Context, benchmarkID uuid.UUID, req *schemas.BenchmarkValueCreate) (*schemas.BenchmarkValueResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	value := &models.BenchmarkValue{
		BenchmarkID: benchmarkID,
		Date:        req.Date.ToTime(),
		Value:       req.Value,
	}
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		if _, err := c.Benchmarks.GetByID(ctx, benchmarkID, tx); err != nil {
			return notFound(err, "Benchmark not found")
		}
		return c.Benchmarks.UpsertValue(ctx, value, tx)
	})
	if err != nil {
		return nil, err
	}
	response := schemas.NewBenchmarkValueResponse(value)
	return &response, nil
}

func (c *Controller) GetAccountBenchmarks(ctx context.Context, user *models.User, accountID uuid.UUID) ([]schemas.PortfolioBenchmarkResponse, error) {
	if _, err := c.ownedAccount(ctx, nil, user, accountID); err != nil {
		return nil, err
	}
	links, err := c.Benchmarks.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.PortfolioBenchmarkResponse, len(links))
	for i := range links {
		responses[i] = schemas.NewPortfolioBenchmarkResponse(&links[i])
	}
	return responses, nil
}

func (c *Controller) LinkBenchmark(ctx context.Context, user *models.User, accountID uuid.UUID, req *schemas.PortfolioBenchmarkCreate) (*schemas.PortfolioBenchmarkResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var link *models.PortfolioBenchmark
	err := repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		account, err := c.ownedAccount(ctx, tx, user, accountID)
		if err != nil {
			return err
		}
		if _, err := c.Benchmarks.GetByID(ctx, req.BenchmarkID, tx); err != nil {
			return notFound(err, "Benchmark not found")
		}
		link = req.ToModel(account.ID)
		return c.Benchmarks.Link(ctx, link, tx)
	})
	if err != nil {
		return nil, err
	}
	response := schemas.NewPortfolioBenchmarkResponse(link)
	return &response, nil
}

func (c *Controller) UnlinkBenchmark(ctx context.Context, user *models.User, accountID, linkID uuid.UUID) error {
	return repositories.WithTransaction(ctx, c.DB, func(tx *gorm.DB) error {
		if _, err := c.ownedAccount(ctx, tx, user, accountID); err != nil {
			return err
		}
		return notFound(c.Benchmarks.Unlink(ctx, accountID, linkID, tx), "Benchmark link not found")
	})
}
