package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

// YAMLDatasetRepository keeps a dataset as a YAML document. Dates stay in
// document order.
type YAMLDatasetRepository struct {
	path string
	mu   sync.RWMutex
}

var _ ports.DatasetRepository = (*YAMLDatasetRepository)(nil)

func NewYAMLDatasetRepository(path string) *YAMLDatasetRepository {
	return &YAMLDatasetRepository{path: path}
}

func (r *YAMLDatasetRepository) Load(ctx context.Context) (*series.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	var ds series.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if ds.Series == nil {
		ds.Series = series.NewTimeSeries()
	}
	return &ds, nil
}

func (r *YAMLDatasetRepository) Save(ctx context.Context, ds *series.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return writeFile(r.path, data)
}
