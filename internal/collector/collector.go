package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"CurrencyAnalyzer/internal/calculator"
	"CurrencyAnalyzer/internal/model"
	"CurrencyAnalyzer/internal/symbols"
)

// ErrInvalidRequest is returned for a request that cannot be sent to the provider.
var ErrInvalidRequest = errors.New("invalid analysis request")

// Collector orchestrates price fetching and statistics computation.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches the series named by req and computes its statistics.
// Nothing is returned alongside an error.
func (c *Collector) Collect(ctx context.Context, req model.AnalysisRequest) (*model.Analysis, error) {
	req.Symbol = strings.TrimSpace(req.Symbol)
	if req.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidRequest)
	}
	if !req.Start.Before(req.End) {
		return nil, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidRequest, req.Start.Format("2006-01-02"), req.End.Format("2006-01-02"))
	}

	id := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"request_id": id,
		"symbol":     req.Symbol,
		"source":     c.Fetcher.Name(),
	})
	logger.Infof("fetching %s..%s", req.Start.Format("2006-01-02"), req.End.Format("2006-01-02"))

	series, err := c.Fetcher.FetchPrices(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = &ProviderError{Provider: c.Fetcher.Name(), Symbol: req.Symbol, Err: err}
		}
		logger.Errorf("fetch failed: %v", err)
		return nil, err
	}
	if series.IsEmpty() {
		logger.Warn("provider returned no observations")
		return nil, fmt.Errorf("%s: %w", req.Symbol, calculator.ErrEmptySeries)
	}

	stats, err := calculator.AnalyzeSeries(series, req.ConfidenceLevel)
	if err != nil {
		logger.Warnf("analyze: %v", err)
		return nil, fmt.Errorf("%s: %w", req.Symbol, err)
	}
	logger.WithFields(log.Fields{
		"observations": stats.SampleSize,
		"first":        series.First().Time.Format("2006-01-02"),
		"last":         series.Last().Time.Format("2006-01-02"),
	}).Info("analysis complete")

	_, quote, _ := symbols.Parse(req.Symbol)
	return &model.Analysis{
		ID:      id,
		Request: req,
		Series:  series,
		Stats:   stats,
		Quote:   quote,
	}, nil
}
