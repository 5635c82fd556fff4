package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

// FileDatasetRepository stores one dataset as an indented JSON document in
// the same layout the daily series API returns.
type FileDatasetRepository struct {
	path string
	mu   sync.RWMutex
}

var _ ports.DatasetRepository = (*FileDatasetRepository)(nil)

func NewFileDatasetRepository(path string) *FileDatasetRepository {
	return &FileDatasetRepository{path: path}
}

func (r *FileDatasetRepository) Load(ctx context.Context) (*series.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	return decodeJSON(r.path, data)
}

func (r *FileDatasetRepository) Save(ctx context.Context, ds *series.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(ds, "", "    ")
	if err != nil {
		return err
	}
	return writeFile(r.path, data)
}

func decodeJSON(path string, data []byte) (*series.Dataset, error) {
	var ds series.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if ds.Series == nil {
		ds.Series = series.NewTimeSeries()
	}
	return &ds, nil
}
