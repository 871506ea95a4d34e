package config

import (
	"fmt"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Lookback returns the start of a window ending at end and spanning the given
// duration, e.g. "52w", "90d" or "26w3d".
func Lookback(end time.Time, lookback string) (time.Time, error) {
	d, err := str2duration.ParseDuration(lookback)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse lookback %q: %w", lookback, err)
	}
	if d <= 0 {
		return time.Time{}, fmt.Errorf("lookback %q must be positive", lookback)
	}
	return end.Add(-d), nil
}

// Today returns the current UTC date at midnight.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
