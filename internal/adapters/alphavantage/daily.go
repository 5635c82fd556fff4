package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"seriesshift/internal/domain/series"
)

// ErrRateLimited is returned when the API answers with a throttling note
// instead of data.
var ErrRateLimited = errors.New("alphavantage: API limit")

type dailyResponse struct {
	series.Dataset
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// FetchDaily downloads the compact TIME_SERIES_DAILY series for symbol.
func (c *Client) FetchDaily(ctx context.Context, symbol string) (*series.Dataset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New("symbol is required")
	}

	params := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"apikey":     {c.APIKey},
		"outputsize": {"compact"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("alphavantage %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", symbol, err)
	}

	switch {
	case data.Note != "":
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, data.Note)
	case data.Information != "" && data.Series == nil:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, data.Information)
	case data.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage %s: %s", symbol, data.ErrorMessage)
	case data.Series.Len() == 0:
		return nil, fmt.Errorf("no daily series in response for %s", symbol)
	}

	ds := data.Dataset
	return &ds, nil
}
