package chart

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins matches the bin count of the price distribution view.
const DefaultBins = 50

// Histogram is an equal-width binning of a sample.
// Edges has len(Counts)+1 entries; the last bin is closed on the right.
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// NewHistogram bins values into the given number of equal-width bins over
// [min, max]. A constant sample is spread over [v-0.5, v+0.5].
func NewHistogram(values []float64, bins int) Histogram {
	if bins <= 0 {
		bins = DefaultBins
	}
	if len(values) == 0 {
		return Histogram{}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[bins] = hi

	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Histogram{
		Edges:  edges,
		Counts: stat.Histogram(nil, dividers, sorted, nil),
	}
}

// Bins returns the number of bins.
func (h Histogram) Bins() int { return len(h.Counts) }

// BinOf returns the index of the bin holding v, or -1 when v is outside the range.
func (h Histogram) BinOf(v float64) int {
	n := h.Bins()
	if n == 0 || v < h.Edges[0] || v > h.Edges[n] {
		return -1
	}
	// First edge strictly greater than v closes the bin.
	i := sort.Search(len(h.Edges), func(i int) bool { return h.Edges[i] > v }) - 1
	if i >= n {
		i = n - 1
	}
	return i
}

// Center returns the midpoint of bin i.
func (h Histogram) Center(i int) float64 {
	return (h.Edges[i] + h.Edges[i+1]) / 2
}

// MaxCount returns the tallest bin.
func (h Histogram) MaxCount() float64 {
	if h.Bins() == 0 {
		return 0
	}
	return floats.Max(h.Counts)
}
