package chart

import "CurrencyAnalyzer/internal/model"

// MarkerKind groups markers that share a colour.
type MarkerKind int

const (
	MarkerMean MarkerKind = iota
	MarkerOneStd
	MarkerTwoStd
	MarkerConfidence
)

// Marker is a vertical reference line on the distribution view.
type Marker struct {
	Label string
	Value float64
	Kind  MarkerKind
}

// Markers returns the reference lines for the histogram in drawing order.
func Markers(s *model.Statistics) []Marker {
	return []Marker{
		{Label: "Mean", Value: s.Mean, Kind: MarkerMean},
		{Label: "-1 Std Dev", Value: s.OneStd.Lower, Kind: MarkerOneStd},
		{Label: "+1 Std Dev", Value: s.OneStd.Upper, Kind: MarkerOneStd},
		{Label: "-2 Std Dev", Value: s.TwoStd.Lower, Kind: MarkerTwoStd},
		{Label: "+2 Std Dev", Value: s.TwoStd.Upper, Kind: MarkerTwoStd},
		{Label: "CI Lower", Value: s.ConfidenceInterval.Lower, Kind: MarkerConfidence},
		{Label: "CI Upper", Value: s.ConfidenceInterval.Upper, Kind: MarkerConfidence},
	}
}

// MarkedBins maps histogram bins to the highest-priority marker falling in them.
// Mean wins over the confidence bounds, which win over the std bands.
func MarkedBins(h Histogram, markers []Marker) map[int]MarkerKind {
	priority := map[MarkerKind]int{MarkerMean: 3, MarkerConfidence: 2, MarkerOneStd: 1, MarkerTwoStd: 0}
	marked := make(map[int]MarkerKind)
	for _, m := range markers {
		i := h.BinOf(m.Value)
		if i < 0 {
			continue
		}
		if cur, ok := marked[i]; !ok || priority[m.Kind] > priority[cur] {
			marked[i] = m.Kind
		}
	}
	return marked
}
