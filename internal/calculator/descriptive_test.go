package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CurrencyAnalyzer/internal/model"
)

const eps = 1e-9

func TestAnalyze_OneToFive(t *testing.T) {
	s, err := Analyze([]float64{1, 2, 3, 4, 5}, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 5, s.SampleSize)
	assert.InDelta(t, 3.0, s.Mean, eps)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev, eps)
	assert.InDelta(t, 1.4189, s.OneStd.Lower, 1e-4)
	assert.InDelta(t, 4.5811, s.OneStd.Upper, 1e-4)
	assert.InDelta(t, 60.0, s.PctWithinOneStd, eps)
	assert.InDelta(t, 100.0, s.PctWithinTwoStd, eps)
	assert.InDelta(t, 1.959964, s.ZScore, 1e-6)
	assert.InDelta(t, math.Sqrt(2.5)/math.Sqrt(5), s.StdErr, eps)
	assert.InDelta(t, 3.0, s.Median, eps)
	assert.InDelta(t, 40.0, s.PctAboveMean, eps)
	assert.InDelta(t, 60.0, s.PctBelowMean, eps)
	assert.InDelta(t, 40.0, s.PctAboveMedian, eps)
	assert.InDelta(t, 60.0, s.PctBelowMedian, eps)
	assert.Equal(t, 0.95, s.ConfidenceLevel)
	assert.Equal(t, model.Band{Lower: 1, Upper: 5}, s.Range)
	assert.Equal(t, 5.0, s.Latest)
	assert.Equal(t, 1.0, s.RangePosition)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		prices     []float64
		confidence float64
		want       error
	}{
		{"nil series", nil, 0.95, ErrEmptySeries},
		{"empty series", []float64{}, 0.95, ErrEmptySeries},
		{"single observation", []float64{5}, 0.95, ErrInsufficientData},
		{"zero confidence", []float64{1, 2}, 0, ErrInvalidConfidence},
		{"full confidence", []float64{1, 2}, 1, ErrInvalidConfidence},
		{"negative confidence", []float64{1, 2}, -0.5, ErrInvalidConfidence},
		{"nan confidence", []float64{1, 2}, math.NaN(), ErrInvalidConfidence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Analyze(tt.prices, tt.confidence)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, s)
		})
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	prices := []float64{5, 1, 4, 2, 3}
	_, err := Analyze(prices, 0.95)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, prices)
}

func TestAnalyze_Deterministic(t *testing.T) {
	prices := []float64{3.61, 3.72, 3.68, 3.9, 3.55, 3.81, 3.77}
	a, err := Analyze(prices, 0.9)
	require.NoError(t, err)
	b, err := Analyze(prices, 0.9)
	require.NoError(t, err)
	assert.Equal(t, *a, *b)
}

func TestAnalyze_BandContainment(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{4.51, 4.49, 4.62, 4.4, 4.55, 4.7, 4.33, 4.58},
		{1, 1, 1, 1, 100},
		{10, 20},
	}
	for _, prices := range series {
		s, err := Analyze(prices, 0.95)
		require.NoError(t, err)
		require.Greater(t, s.StdDev, 0.0)
		assert.LessOrEqual(t, s.PctWithinOneStd, s.PctWithinTwoStd, "%v", prices)
	}
}

func TestAnalyze_SplitsSumToHundred(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 2, 2, 2},
		{1.1, 1.3, 1.2, 1.2, 1.25, 1.05},
	}
	for _, prices := range series {
		s, err := Analyze(prices, 0.95)
		require.NoError(t, err)
		assert.Equal(t, 100.0, s.PctAboveMean+s.PctBelowMean)
		assert.Equal(t, 100.0, s.PctAboveMedian+s.PctBelowMedian)
	}
}

func TestAnalyze_TiesCountAsBelow(t *testing.T) {
	// Mean and median are both 2; the equal values are not above.
	s, err := Analyze([]float64{1, 2, 2, 2, 3}, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, s.PctAboveMean, eps)
	assert.InDelta(t, 80.0, s.PctBelowMean, eps)
	assert.InDelta(t, 20.0, s.PctAboveMedian, eps)
	assert.InDelta(t, 80.0, s.PctBelowMedian, eps)
}

func TestAnalyze_ConstantSeries(t *testing.T) {
	s, err := Analyze([]float64{2, 2, 2, 2}, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.StdDev)
	// Band membership is inclusive, so a zero-width band still holds every value.
	assert.Equal(t, 100.0, s.PctWithinOneStd)
	assert.Equal(t, 0.0, s.PctAboveMean)
	assert.Equal(t, s.Mean, s.ConfidenceInterval.Lower)
	assert.Equal(t, s.Mean, s.ConfidenceInterval.Upper)
}

func TestAnalyze_ConfidenceIntervalSymmetricAndWidening(t *testing.T) {
	prices := []float64{3.61, 3.72, 3.68, 3.9, 3.55, 3.81, 3.77, 3.6}
	prev := 0.0
	for _, cl := range []float64{0.5, 0.8, 0.9, 0.95, 0.99, 0.999} {
		s, err := Analyze(prices, cl)
		require.NoError(t, err)
		ci := s.ConfidenceInterval
		assert.InDelta(t, s.Mean-ci.Lower, ci.Upper-s.Mean, eps, "cl=%v", cl)
		assert.Greater(t, ci.Width(), prev, "cl=%v", cl)
		prev = ci.Width()
	}
}

func TestAnalyzeSeries(t *testing.T) {
	series := &model.PriceSeries{Symbol: "USDILS=X"}
	_, err := AnalyzeSeries(series, 0.95)
	assert.ErrorIs(t, err, ErrEmptySeries)

	series.Points = []model.PricePoint{{Price: 3.5}, {Price: 3.7}}
	s, err := AnalyzeSeries(series, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 3.6, s.Mean, eps)
}

func TestMedian(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
	assert.Equal(t, 7.0, Median([]float64{7}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, Median([]float64{5, 3, 1}))
}

func TestZScore(t *testing.T) {
	tests := []struct {
		cl   float64
		want float64
	}{
		{0.90, 1.644854},
		{0.95, 1.959964},
		{0.99, 2.575829},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ZScore(tt.cl), 1e-6, "cl=%v", tt.cl)
	}
}

func TestPercentHelpers_Empty(t *testing.T) {
	assert.Equal(t, 0.0, PercentWithin(nil, model.Band{Lower: 0, Upper: 1}))
	assert.Equal(t, 0.0, PercentAbove(nil, 0))
}
