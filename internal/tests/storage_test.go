package tests

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seriesshift/internal/adapters/storage"
	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

func TestMemoryRepositoryIsIsolated(t *testing.T) {
	repoInfo, err := storage.NewDatasetRepository("memory")
	if err != nil {
		t.Fatalf("NewDatasetRepository memory: %v", err)
	}

	repo := repoInfo.Repository
	ctx := context.Background()

	if _, err := repo.Load(ctx); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load on empty repo: %v", err)
	}

	if err := repo.Save(ctx, series.Sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}

	// Loaded datasets are copies.
	loaded.Series.Set("2030-01-01", series.PriceRecord{})
	again, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after mutation: %v", err)
	}
	if again.Len() != 10 {
		t.Fatalf("expected 10 persisted records, got %d", again.Len())
	}
}

func TestFileBackendsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	specs := []string{
		"file:" + filepath.Join(dir, "tsla.json"),
		"json:" + filepath.Join(dir, "nested", "tsla.json"),
		"gzip:" + filepath.Join(dir, "tsla.json.gz"),
		"yaml:" + filepath.Join(dir, "tsla.yaml"),
		filepath.Join(dir, "bare.json"),
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			repoInfo, err := storage.NewDatasetRepository(spec)
			if err != nil {
				t.Fatalf("NewDatasetRepository: %v", err)
			}
			repo := repoInfo.Repository
			ctx := context.Background()

			want := series.Sample()
			if err := repo.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Meta != want.Meta {
				t.Fatalf("Meta=%+v want %+v", got.Meta, want.Meta)
			}
			wantKeys, gotKeys := want.Series.Keys(), got.Series.Keys()
			if len(gotKeys) != len(wantKeys) {
				t.Fatalf("keys=%d want %d", len(gotKeys), len(wantKeys))
			}
			for i := range wantKeys {
				if gotKeys[i] != wantKeys[i] {
					t.Fatalf("key[%d]=%s want %s", i, gotKeys[i], wantKeys[i])
				}
				w, _ := want.Series.Get(wantKeys[i])
				g, _ := got.Series.Get(gotKeys[i])
				if g != w {
					t.Fatalf("record %s=%+v want %+v", wantKeys[i], g, w)
				}
			}
		})
	}
}

func TestFileRepositoryWritesAPILayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsla.json")
	repo := storage.NewFileDatasetRepository(path)

	if err := repo.Save(context.Background(), series.Sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, key := range []string{`"Meta Data"`, `"Time Series (Daily)"`, `"5. volume": "76715792"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in %s", key, data)
		}
	}
}

func TestFileRepositoryMissingFile(t *testing.T) {
	repo := storage.NewFileDatasetRepository(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := repo.Load(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err=%v want fs.ErrNotExist", err)
	}
}

func TestSQLiteRepositoryPerSymbol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "prices.db")

	repoInfo, err := storage.NewDatasetRepository("sqlite:" + path + "#TSLA")
	if err != nil {
		t.Fatalf("NewDatasetRepository sqlite: %v", err)
	}
	defer repoInfo.Close()

	ctx := context.Background()
	if _, err := repoInfo.Repository.Load(ctx); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load before save: %v", err)
	}
	if err := repoInfo.Repository.Save(ctx, series.Sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	symbols, ok := repoInfo.Repository.(ports.SymbolRepository)
	if !ok {
		t.Fatalf("sqlite repository should be symbol scoped")
	}
	ibm := series.New(series.MetaData{Symbol: "IBM"})
	ibm.Series.Set("2025-05-19", series.PriceRecord{Close: "254.9500"})
	if err := symbols.ForSymbol("IBM").Save(ctx, ibm); err != nil {
		t.Fatalf("Save IBM: %v", err)
	}
	// Saving twice replaces the row.
	if err := symbols.ForSymbol("IBM").Save(ctx, ibm); err != nil {
		t.Fatalf("Save IBM again: %v", err)
	}

	list, err := symbols.Symbols(ctx)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	if len(list) != 2 || list[0] != "IBM" || list[1] != "TSLA" {
		t.Fatalf("Symbols=%v want [IBM TSLA]", list)
	}

	loaded, err := repoInfo.Repository.Load(ctx)
	if err != nil {
		t.Fatalf("Load TSLA: %v", err)
	}
	if loaded.Meta.Symbol != "TSLA" || loaded.Len() != 10 {
		t.Fatalf("unexpected TSLA dataset: %+v (%d records)", loaded.Meta, loaded.Len())
	}
	if first := loaded.Series.Keys()[0]; first != "2025-05-19" {
		t.Fatalf("first key=%s want 2025-05-19", first)
	}
}

func TestBuiltinRepositoryIsReadOnly(t *testing.T) {
	repoInfo, err := storage.NewDatasetRepository("")
	if err != nil {
		t.Fatalf("NewDatasetRepository: %v", err)
	}
	if repoInfo.Backend != storage.BackendBuiltin {
		t.Fatalf("Backend=%s want builtin", repoInfo.Backend)
	}
	if err := repoInfo.Repository.Save(context.Background(), series.Sample()); !errors.Is(err, storage.ErrReadOnly) {
		t.Fatalf("Save err=%v want ErrReadOnly", err)
	}
}

func TestUnsupportedRepositorySpec(t *testing.T) {
	if _, err := storage.NewDatasetRepository("db:postgres"); err == nil {
		t.Fatalf("expected error for unsupported backend")
	}
}
