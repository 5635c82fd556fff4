package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

// GzipDatasetRepository keeps a dataset as gzipped JSON.
type GzipDatasetRepository struct {
	path string
	mu   sync.RWMutex
}

var _ ports.DatasetRepository = (*GzipDatasetRepository)(nil)

func NewGzipDatasetRepository(path string) *GzipDatasetRepository {
	return &GzipDatasetRepository{path: path}
}

func (r *GzipDatasetRepository) Load(ctx context.Context) (*series.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	uncompressed, err := inflate(data)
	if err != nil {
		return nil, err
	}
	return decodeJSON(r.path, uncompressed)
}

func (r *GzipDatasetRepository) Save(ctx context.Context, ds *series.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	compressed, err := deflate(data)
	if err != nil {
		return err
	}
	return writeFile(r.path, compressed)
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
