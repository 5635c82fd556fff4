package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seriesshift/internal/adapters/storage"
	"seriesshift/internal/config"
	"seriesshift/internal/domain/series"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvTarget, "")
	t.Setenv(config.EnvSource, "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRootShiftsBuiltinSample(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 10)
	assert.Equal(t, "2025-06-03: {open: 336.3000, high: 343.0000, low: 333.3700, close: 342.0900, volume: 88869853}", got[0])
	assert.True(t, strings.HasPrefix(got[9], "2025-05-21: "), got[9])
}

func TestShiftFlags(t *testing.T) {
	out, err := runCLI(t, "shift", "--target", "2025-05-08", "--anchor", "latest", "--format", "json")
	require.NoError(t, err)

	var ds series.Dataset
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	keys := ds.Series.Keys()
	require.Len(t, keys, 10)
	assert.Equal(t, "2025-05-08", keys[0])
	assert.Equal(t, "2025-04-25", keys[9])
}

func TestShiftToStoreThenShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifted.yaml")

	out, err := runCLI(t, "shift", "--target", "2026-01-05", "--output", "yaml:"+path)
	require.NoError(t, err)
	assert.Contains(t, out, "saved to yaml:"+path)

	out, err = runCLI(t, "show", "--source", "yaml:"+path)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 10)
	assert.True(t, strings.HasPrefix(got[9], "2026-01-05: {open: 273.1050,"), got[9])
}

func TestShiftUsesConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("target: \"2025-06-01\"\nformat: yaml\n"), 0o644))

	out, err := runCLI(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-01")
	assert.Contains(t, out, "Time Series (Daily):")
}

func TestShiftRejectsBadInput(t *testing.T) {
	_, err := runCLI(t, "shift", "--target", "21.05.2025")
	assert.Error(t, err)

	_, err = runCLI(t, "shift", "--source", "file:"+filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = runCLI(t, "shift", "--source", "postgres:prices")
	assert.Error(t, err)
}

func TestFetchRequiresAPIKey(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")

	_, err := runCLI(t, "fetch", "--symbol", "TSLA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALPHAVANTAGE_API_KEY")
}

func TestFetchThenShift(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sym := r.URL.Query().Get("symbol")
		fmt.Fprintf(w, `{"Meta Data": {"2. Symbol": %q}, "Time Series (Daily)": {
			"2025-05-19": {"1. open": "1", "2. high": "2", "3. low": "0.5", "4. close": "1.5", "5. volume": "100"},
			"2025-05-16": {"1. open": "3", "2. high": "4", "3. low": "2.5", "4. close": "3.5", "5. volume": "200"}}}`, sym)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(
		"alphavantage:\n  api_key: test\n  base_url: %s\n", srv.URL)), 0o644))
	t.Setenv(config.EnvAPIKey, "")

	store := "sqlite:" + filepath.Join(dir, "prices.db")
	out, err := runCLI(t, "--config", cfgPath, "fetch", "--symbol", "TSLA,IBM", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "fetched 2 symbol(s)")

	out, err = runCLI(t, "shift", "--source", store+"#IBM", "--target", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2025-06-04: {open: 1, high: 2, low: 0.5, close: 1.5, volume: 100}",
		"2025-06-01: {open: 3, high: 4, low: 2.5, close: 3.5, volume: 200}",
	}, lines(out))
}

func TestSinkForSingleDatasetStore(t *testing.T) {
	repo := storage.NewMemoryDatasetRepository()

	_, err := sinkFor(repo, 2)
	assert.Error(t, err)

	sink, err := sinkFor(repo, 1)
	require.NoError(t, err)
	assert.Same(t, repo, sink("TSLA"))
}
