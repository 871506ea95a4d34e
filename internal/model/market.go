package model

import "time"

// PricePoint is a single dated close price.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// PriceSeries holds raw price data for analysis.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of observations.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// IsEmpty reports whether the series has no observations.
func (s *PriceSeries) IsEmpty() bool { return s.Len() == 0 }

// Prices returns a fresh slice of the prices in time order.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		prices[i] = s.Points[i].Price
	}
	return prices
}

// First and Last are only meaningful on a non-empty series.
func (s *PriceSeries) First() PricePoint { return s.Points[0] }
func (s *PriceSeries) Last() PricePoint  { return s.Points[len(s.Points)-1] }
