package storage

import (
	"fmt"
	"io"
	"strings"

	"seriesshift/internal/ports"
)

const (
	BackendBuiltin = "builtin"
	BackendFile    = "file"
	BackendJSON    = "json"
	BackendGzip    = "gzip"
	BackendYAML    = "yaml"
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"

	defaultPath   = "dataset.json"
	DefaultSymbol = "default"
)

// NewDatasetRepository returns a repository for the provided backend spec.
// Examples:
//   - "builtin"
//   - "file:dataset.json"
//   - "gzip:/tmp/tsla.json.gz"
//   - "yaml:tsla.yaml"
//   - "sqlite:prices.db#TSLA"
//   - "memory"
//
// If no backend is specified, the argument is treated as a file path.
func NewDatasetRepository(spec string) (*RepositoryWithInfo, error) {
	backend, arg := parseSpec(spec)

	switch backend {
	case BackendBuiltin:
		return &RepositoryWithInfo{Backend: BackendBuiltin, Repository: BuiltinRepository{}}, nil
	case BackendMemory:
		return &RepositoryWithInfo{Backend: BackendMemory, Repository: NewMemoryDatasetRepository()}, nil
	case BackendFile, BackendJSON:
		return &RepositoryWithInfo{Backend: BackendFile, Repository: NewFileDatasetRepository(orDefault(arg, defaultPath))}, nil
	case BackendGzip:
		return &RepositoryWithInfo{Backend: BackendGzip, Repository: NewGzipDatasetRepository(orDefault(arg, defaultPath+".gz"))}, nil
	case BackendYAML:
		return &RepositoryWithInfo{Backend: BackendYAML, Repository: NewYAMLDatasetRepository(orDefault(arg, "dataset.yaml"))}, nil
	case BackendSQLite:
		path, symbol := arg, DefaultSymbol
		if i := strings.LastIndex(arg, "#"); i >= 0 {
			path, symbol = arg[:i], arg[i+1:]
		}
		repo, err := NewSQLiteDatasetRepository(orDefault(path, "datasets.db"), orDefault(symbol, DefaultSymbol))
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return &RepositoryWithInfo{Backend: BackendSQLite, Repository: repo}, nil
	default:
		return nil, fmt.Errorf("unsupported dataset backend: %s", backend)
	}
}

type RepositoryWithInfo struct {
	Backend    string
	Repository ports.DatasetRepository
}

// Close releases backend resources, if the backend holds any.
func (r *RepositoryWithInfo) Close() error {
	if c, ok := r.Repository.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func parseSpec(spec string) (backend, arg string) {
	if spec == "" {
		return BackendBuiltin, ""
	}

	if !strings.Contains(spec, ":") {
		backend = strings.ToLower(spec)
		switch backend {
		case BackendBuiltin, BackendMemory, BackendFile, BackendJSON, BackendGzip, BackendYAML, BackendSQLite:
			return backend, ""
		default:
			return BackendFile, spec
		}
	}

	parts := strings.SplitN(spec, ":", 2)
	backend = strings.ToLower(parts[0])
	arg = parts[1]
	return backend, arg
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
