package chart

import (
	"math"
	"time"

	"CurrencyAnalyzer/internal/model"
)

// ClassifiedPoint is a price tagged with its side of the mean.
type ClassifiedPoint struct {
	Time      time.Time
	Price     float64
	AboveMean bool
}

// Classify tags every point of the series; equal-to-mean counts as below.
func Classify(series *model.PriceSeries, s *model.Statistics) []ClassifiedPoint {
	out := make([]ClassifiedPoint, series.Len())
	for i, p := range series.Points {
		out[i] = ClassifiedPoint{Time: p.Time, Price: p.Price, AboveMean: p.Price > s.Mean}
	}
	return out
}

// SplitAtMean returns two series of the same length as values: above holds
// max(v, mean) and below holds min(v, mean), so each hugs the mean line where
// the other side is active.
func SplitAtMean(values []float64, mean float64) (above, below []float64) {
	above = make([]float64, len(values))
	below = make([]float64, len(values))
	for i, v := range values {
		above[i] = math.Max(v, mean)
		below[i] = math.Min(v, mean)
	}
	return above, below
}

// ReferenceLine returns a constant series of length n.
func ReferenceLine(n int, v float64) []float64 {
	line := make([]float64, n)
	for i := range line {
		line[i] = v
	}
	return line
}

// Downsample keeps at most max evenly spaced values, always including the
// first and the last one.
func Downsample(values []float64, max int) []float64 {
	n := len(values)
	if max <= 0 || n <= max {
		out := make([]float64, n)
		copy(out, values)
		return out
	}
	if max == 1 {
		return []float64{values[n-1]}
	}
	out := make([]float64, max)
	step := float64(n-1) / float64(max-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}
