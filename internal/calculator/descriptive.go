package calculator

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"CurrencyAnalyzer/internal/model"
)

var (
	// ErrEmptySeries is returned when there are no observations at all.
	ErrEmptySeries = errors.New("no data found for this symbol and date range")
	// ErrInsufficientData is returned when the sample standard deviation is undefined (n < 2).
	ErrInsufficientData = errors.New("not enough data: at least 2 observations are required")
	// ErrInvalidConfidence is returned for a confidence level outside (0, 1).
	ErrInvalidConfidence = errors.New("confidence level must be in (0, 1)")
)

// Analyze computes the descriptive statistics of prices at the given
// confidence level. prices is not modified.
func Analyze(prices []float64, confidenceLevel float64) (*model.Statistics, error) {
	n := len(prices)
	if n == 0 {
		return nil, ErrEmptySeries
	}
	if n < 2 {
		return nil, ErrInsufficientData
	}
	if !(confidenceLevel > 0 && confidenceLevel < 1) {
		return nil, ErrInvalidConfidence
	}

	mean := stat.Mean(prices, nil)
	std := stat.StdDev(prices, nil)
	median := Median(prices)

	s := &model.Statistics{
		SampleSize:      n,
		Mean:            mean,
		StdDev:          std,
		Median:          median,
		OneStd:          model.Band{Lower: mean - std, Upper: mean + std},
		TwoStd:          model.Band{Lower: mean - 2*std, Upper: mean + 2*std},
		ConfidenceLevel: confidenceLevel,
	}
	s.PctWithinOneStd = PercentWithin(prices, s.OneStd)
	s.PctWithinTwoStd = PercentWithin(prices, s.TwoStd)

	s.StdErr = std / math.Sqrt(float64(n))
	s.ZScore = ZScore(confidenceLevel)
	s.ConfidenceInterval = model.Band{
		Lower: mean - s.ZScore*s.StdErr,
		Upper: mean + s.ZScore*s.StdErr,
	}

	// Strictly above; values equal to the reference fall into "below".
	s.PctAboveMean = PercentAbove(prices, mean)
	s.PctBelowMean = 100 - s.PctAboveMean
	s.PctAboveMedian = PercentAbove(prices, median)
	s.PctBelowMedian = 100 - s.PctAboveMedian

	// Neither call can fail: prices is non-empty and its range is ordered.
	s.Range, _ = PriceRange(prices)
	s.Latest = prices[n-1]
	s.RangePosition, _ = RangePosition(s.Latest, s.Range)

	return s, nil
}

// AnalyzeSeries runs Analyze over the series prices.
func AnalyzeSeries(series *model.PriceSeries, confidenceLevel float64) (*model.Statistics, error) {
	return Analyze(series.Prices(), confidenceLevel)
}

// ZScore returns the two-sided standard normal quantile for the confidence level.
func ZScore(confidenceLevel float64) float64 {
	return distuv.UnitNormal.Quantile((1 + confidenceLevel) / 2)
}

// Median returns the sample median, averaging the two middle values when the
// length is even. Returns NaN for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// PercentWithin returns the share of values inside the band, in percent.
func PercentWithin(values []float64, b model.Band) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if b.Contains(v) {
			count++
		}
	}
	return 100 * float64(count) / float64(len(values))
}

// PercentAbove returns the share of values strictly greater than ref, in percent.
func PercentAbove(values []float64, ref float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > ref {
			count++
		}
	}
	return 100 * float64(count) / float64(len(values))
}
