package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
)

// SQLiteDatasetRepository persists datasets in a single SQLite database,
// one row per symbol. A repository value is bound to one symbol; ForSymbol
// hands out siblings sharing the same connection.
type SQLiteDatasetRepository struct {
	db     *sql.DB
	mu     *sync.RWMutex
	symbol string
}

var (
	_ ports.DatasetRepository = (*SQLiteDatasetRepository)(nil)
	_ ports.SymbolRepository  = (*SQLiteDatasetRepository)(nil)
)

func NewSQLiteDatasetRepository(path, symbol string) (*SQLiteDatasetRepository, error) {
	if err := ensureSQLiteDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	repo := &SQLiteDatasetRepository{db: db, mu: &sync.RWMutex{}, symbol: symbol}
	if err := repo.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteDatasetRepository) initSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS datasets (
		symbol     TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

func (r *SQLiteDatasetRepository) ForSymbol(symbol string) ports.DatasetRepository {
	return &SQLiteDatasetRepository{db: r.db, mu: r.mu, symbol: symbol}
}

func (r *SQLiteDatasetRepository) Symbols(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, "SELECT symbol FROM datasets ORDER BY symbol;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *SQLiteDatasetRepository) Load(ctx context.Context) (*series.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM datasets WHERE symbol=?", r.symbol).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %s: %w", r.symbol, fs.ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	return decodeJSON(r.symbol, []byte(data))
}

func (r *SQLiteDatasetRepository) Save(ctx context.Context, ds *series.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO datasets(symbol, data) VALUES(?, ?) ON CONFLICT(symbol) DO UPDATE SET data=excluded.data, updated_at=CURRENT_TIMESTAMP;",
		r.symbol, string(data))
	return err
}

func (r *SQLiteDatasetRepository) Close() error {
	return r.db.Close()
}

func ensureSQLiteDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}

	path = strings.TrimPrefix(path, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
