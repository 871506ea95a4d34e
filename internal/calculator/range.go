package calculator

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"CurrencyAnalyzer/internal/model"
)

// PriceRange returns the lowest and highest price of the window.
func PriceRange(prices []float64) (model.Band, error) {
	if len(prices) == 0 {
		return model.Band{}, ErrEmptySeries
	}
	return model.Band{Lower: floats.Min(prices), Upper: floats.Max(prices)}, nil
}

// RangePosition returns where current sits within the range (0.0~1.0).
// A flat range puts every price in the middle.
func RangePosition(current float64, r model.Band) (float64, error) {
	if r.Upper == r.Lower {
		return 0.5, nil
	}
	if r.Upper < r.Lower {
		return 0, errors.New("range upper bound must be >= lower bound")
	}
	pos := (current - r.Lower) / r.Width()
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
