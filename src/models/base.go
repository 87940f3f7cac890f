package models

import "github.com/google/uuid"

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model, in no particular order; gorm sorts them by
// their foreign keys when migrating.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Account{},
		&Security{},
		&Holding{},
		&Transaction{},
		&CashTransaction{},
		&HistoricalPrice{},
		&HistoricalFXRate{},
		&Benchmark{},
		&BenchmarkValue{},
		&PortfolioBenchmark{},
		&HistoricalBalance{},
	}
}
