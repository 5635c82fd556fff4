package ports

import (
	"context"

	"seriesshift/internal/domain/series"
)

type DatasetRepository interface {
	Load(ctx context.Context) (*series.Dataset, error)
	Save(ctx context.Context, ds *series.Dataset) error
}

type SeriesProvider interface {
	FetchDaily(ctx context.Context, symbol string) (*series.Dataset, error)
}

// SymbolRepository is implemented by backends that hold one dataset per symbol.
type SymbolRepository interface {
	ForSymbol(symbol string) DatasetRepository
	Symbols(ctx context.Context) ([]string, error)
}
