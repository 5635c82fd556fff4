package storage

import (
	"context"
	"io/fs"
	"sync"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

// MemoryDatasetRepository keeps a dataset in-memory. Useful for tests
// or ephemeral runs where persistence is not required.
type MemoryDatasetRepository struct {
	mu sync.RWMutex
	ds *series.Dataset
}

var _ ports.DatasetRepository = (*MemoryDatasetRepository)(nil)

func NewMemoryDatasetRepository() *MemoryDatasetRepository {
	return &MemoryDatasetRepository{}
}

func (r *MemoryDatasetRepository) Load(ctx context.Context) (*series.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.ds == nil {
		return nil, fs.ErrNotExist
	}
	return r.ds.Clone(), nil
}

func (r *MemoryDatasetRepository) Save(ctx context.Context, ds *series.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ds = ds.Clone()
	return nil
}
