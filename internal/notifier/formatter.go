package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"CurrencyAnalyzer/internal/calculator"
	"CurrencyAnalyzer/internal/collector"
	"CurrencyAnalyzer/internal/model"
)

// Price formats a price with four decimals, as shown in every report.
func Price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

// Percent formats a percentage with two decimals.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// ConfidenceLabel renders a confidence level such as 0.95 as "95%".
func ConfidenceLabel(cl float64) string {
	return decimal.NewFromFloat(cl).Shift(2).String() + "%"
}

// UserMessage maps an analysis error to the text shown to the user.
func UserMessage(err error) string {
	var perr *collector.ProviderError
	switch {
	case errors.Is(err, calculator.ErrEmptySeries):
		return "No data found for this symbol and date range."
	case errors.Is(err, calculator.ErrInsufficientData):
		return "Not enough data to compute statistics (at least 2 prices are needed)."
	case errors.Is(err, collector.ErrInvalidRequest), errors.Is(err, calculator.ErrInvalidConfidence):
		return fmt.Sprintf("Invalid request: %v", err)
	case errors.As(err, &perr):
		return fmt.Sprintf("Error: %v", perr.Err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// FormatReport formats an analysis as a Telegram HTML message.
func FormatReport(a *model.Analysis) string {
	s := a.Stats
	unit := ""
	if a.Quote != "" {
		unit = " " + a.Quote
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s → %s\n\n", html.EscapeString(a.Request.Symbol),
		a.Request.Start.Format("2006-01-02"), a.Request.End.Format("2006-01-02")))

	b.WriteString("📈 <b>Statistics:</b>\n")
	b.WriteString(fmt.Sprintf("Observations: %d\n", s.SampleSize))
	b.WriteString(fmt.Sprintf("Mean Price: %s%s\n", Price(s.Mean), unit))
	b.WriteString(fmt.Sprintf("Standard Deviation: %s%s\n", Price(s.StdDev), unit))
	b.WriteString(fmt.Sprintf("Median: %s%s\n", Price(s.Median), unit))
	b.WriteString(fmt.Sprintf("Within 1 Std: (%s, %s) → %s\n",
		Price(s.OneStd.Lower), Price(s.OneStd.Upper), Percent(s.PctWithinOneStd)))
	b.WriteString(fmt.Sprintf("Within 2 Std: (%s, %s) → %s\n",
		Price(s.TwoStd.Lower), Price(s.TwoStd.Upper), Percent(s.PctWithinTwoStd)))
	b.WriteString(fmt.Sprintf("%s Confidence Interval: (%s, %s)\n",
		ConfidenceLabel(s.ConfidenceLevel), Price(s.ConfidenceInterval.Lower), Price(s.ConfidenceInterval.Upper)))
	b.WriteString(fmt.Sprintf("Range: %s – %s, latest %s%s (%s of range)\n",
		Price(s.Range.Lower), Price(s.Range.Upper), Price(s.Latest), unit, Percent(100*s.RangePosition)))

	b.WriteString("\n⚖️ <b>Split:</b>\n")
	b.WriteString(fmt.Sprintf("Above mean: %s | below: %s\n", Percent(s.PctAboveMean), Percent(s.PctBelowMean)))
	b.WriteString(fmt.Sprintf("Above median: %s | below: %s\n", Percent(s.PctAboveMedian), Percent(s.PctBelowMedian)))

	return b.String()
}

// FormatSymbolTable lists the currency-pair tickers, one row per pair.
func FormatSymbolTable(pairs []model.CurrencyPair) string {
	var b strings.Builder
	b.WriteString("🪙 <b>Currency Symbol Table</b>\n\n")
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("%s → %s: <code>%s</code>\n", p.From, p.To, html.EscapeString(p.Symbol)))
	}
	return b.String()
}
