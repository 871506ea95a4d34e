package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"CurrencyAnalyzer/internal/model"
	"CurrencyAnalyzer/internal/notifier"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.Bold)
	above   = color.New(color.FgGreen)
	below   = color.New(color.FgRed)
	failure = color.New(color.FgRed, color.Bold)
)

// PrintSymbolTable writes the From/To/Symbol table.
func PrintSymbolTable(w io.Writer, pairs []model.CurrencyPair) error {
	heading.Fprintln(w, "Currency Symbol Table (Yahoo Finance)")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "From\tTo\tYahoo Symbol")
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.From, p.To, p.Symbol)
	}
	return tw.Flush()
}

// PrintReport writes the statistics of one analysis.
func PrintReport(w io.Writer, a *model.Analysis) {
	s := a.Stats
	unit := ""
	if a.Quote != "" {
		unit = " " + a.Quote
	}

	heading.Fprintf(w, "Statistics: %s (%s → %s)\n", a.Request.Symbol,
		a.Request.Start.Format("2006-01-02"), a.Request.End.Format("2006-01-02"))
	line := func(name, value string) {
		label.Fprintf(w, "%-26s", name+":")
		fmt.Fprintln(w, value)
	}
	line("Observations", fmt.Sprintf("%d", s.SampleSize))
	line("Mean Price", notifier.Price(s.Mean)+unit)
	line("Standard Deviation", notifier.Price(s.StdDev)+unit)
	line("Median", notifier.Price(s.Median)+unit)
	line("Within 1 Std", fmt.Sprintf("(%s, %s) → %s",
		notifier.Price(s.OneStd.Lower), notifier.Price(s.OneStd.Upper), notifier.Percent(s.PctWithinOneStd)))
	line("Within 2 Std", fmt.Sprintf("(%s, %s) → %s",
		notifier.Price(s.TwoStd.Lower), notifier.Price(s.TwoStd.Upper), notifier.Percent(s.PctWithinTwoStd)))
	line(notifier.ConfidenceLabel(s.ConfidenceLevel)+" Confidence Interval", fmt.Sprintf("(%s, %s)",
		notifier.Price(s.ConfidenceInterval.Lower), notifier.Price(s.ConfidenceInterval.Upper)))
	line("Range", fmt.Sprintf("%s – %s", notifier.Price(s.Range.Lower), notifier.Price(s.Range.Upper)))
	line("Latest", fmt.Sprintf("%s%s (%s of range)", notifier.Price(s.Latest), unit, notifier.Percent(100*s.RangePosition)))
	line("Above / Below Mean", above.Sprint(notifier.Percent(s.PctAboveMean))+" / "+below.Sprint(notifier.Percent(s.PctBelowMean)))
	line("Above / Below Median", above.Sprint(notifier.Percent(s.PctAboveMedian))+" / "+below.Sprint(notifier.Percent(s.PctBelowMedian)))
}

// PrintError writes the user-facing message for a failed analysis.
func PrintError(w io.Writer, err error) {
	failure.Fprintln(w, notifier.UserMessage(err))
}
