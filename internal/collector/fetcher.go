package collector

import (
	"context"
	"fmt"
	"time"

	"CurrencyAnalyzer/internal/model"
)

// Fetcher defines the interface for fetching price history.
// An empty series with a nil error means the provider has no data for the range.
type Fetcher interface {
	FetchPrices(ctx context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error)
	Name() string
}

// ProviderError reports a failed fetch: transport, HTTP status or provider API error.
type ProviderError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: fetch %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
