package storage

import (
	"context"
	"errors"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

var ErrReadOnly = errors.New("dataset backend is read-only")

// BuiltinRepository serves the bundled sample series.
type BuiltinRepository struct{}

var _ ports.DatasetRepository = BuiltinRepository{}

func (BuiltinRepository) Load(ctx context.Context) (*series.Dataset, error) {
	return series.Sample(), nil
}

func (BuiltinRepository) Save(ctx context.Context, ds *series.Dataset) error {
	return ErrReadOnly
}
