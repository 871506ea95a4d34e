package collector

import (
	"context"
	"time"

	"CurrencyAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Prices map[string][]float64 // per symbol, one observation per day from the start date
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(_ context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	series := &model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	for i, p := range m.Prices[symbol] {
		ts := start.AddDate(0, 0, i)
		if !ts.Before(end) {
			break
		}
		series.Points = append(series.Points, model.PricePoint{Time: ts, Price: p})
	}
	return series, nil
}

// GenerateMockPrices produces a gently oscillating series around base.
func GenerateMockPrices(base float64, count int) []float64 {
	prices := make([]float64, count)
	for i := 0; i < count; i++ {
		prices[i] = base * (1 + float64(i%10-5)*0.001)
	}
	return prices
}
