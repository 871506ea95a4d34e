package model

import "time"

// Band is a closed interval [Lower, Upper].
type Band struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies in the band, both ends inclusive.
func (b Band) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Width returns Upper - Lower.
func (b Band) Width() float64 { return b.Upper - b.Lower }

// Statistics holds the descriptive statistics of one price series.
type Statistics struct {
	SampleSize int
	Mean       float64
	StdDev     float64 // sample standard deviation (n-1)
	Median     float64
	StdErr     float64
	ZScore     float64

	OneStd          Band
	TwoStd          Band
	PctWithinOneStd float64
	PctWithinTwoStd float64

	ConfidenceLevel    float64
	ConfidenceInterval Band

	PctAboveMean   float64
	PctBelowMean   float64
	PctAboveMedian float64
	PctBelowMedian float64

	Range         Band    // lowest and highest price
	Latest        float64 // last price of the window
	RangePosition float64 // where Latest sits within Range, 0..1
}

// AnalysisRequest describes one analysis run.
type AnalysisRequest struct {
	Symbol          string
	Start           time.Time
	End             time.Time
	ConfidenceLevel float64
}

// Analysis is the output of one successful run.
type Analysis struct {
	ID      string
	Request AnalysisRequest
	Series  *PriceSeries
	Stats   *Statistics
	Quote   string // quote currency code, empty when the symbol is not a pair
}
