package dashboard

import (
	"context"
	"fmt"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"CurrencyAnalyzer/internal/chart"
	"CurrencyAnalyzer/internal/model"
	"CurrencyAnalyzer/internal/notifier"
	"CurrencyAnalyzer/internal/symbols"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Collect(ctx context.Context, req model.AnalysisRequest) (*model.Analysis, error)
}

// ConfidenceLevels are the levels cycled with the "c" key.
var ConfidenceLevels = []float64{0.90, 0.95, 0.99}

var markerColors = map[chart.MarkerKind]ui.Color{
	chart.MarkerMean:       ui.ColorBlue,
	chart.MarkerOneStd:     ui.ColorGreen,
	chart.MarkerTwoStd:     ui.ColorRed,
	chart.MarkerConfidence: ui.ColorMagenta,
}

var markerMarkup = map[chart.MarkerKind]string{
	chart.MarkerMean:       "blue",
	chart.MarkerOneStd:     "green",
	chart.MarkerTwoStd:     "red",
	chart.MarkerConfidence: "magenta",
}

// Dashboard is the interactive terminal view: symbol list, statistics,
// price histogram and price-over-time plots.
type Dashboard struct {
	analyzer Analyzer
	tickers  []string // one per list row
	defaults model.AnalysisRequest
	bins     int
	levels   []float64
	level    int

	current *model.Analysis
	width   int
	height  int

	list   *widgets.List
	stats  *widgets.Paragraph
	hist   *widgets.BarChart
	prices *widgets.Plot
	split  *widgets.Plot
	grid   *ui.Grid

	render func(...ui.Drawable)
}

// New builds the widgets. The terminal is not touched until Run.
func New(analyzer Analyzer, pairs []model.CurrencyPair, defaults model.AnalysisRequest, bins int) *Dashboard {
	if bins <= 0 {
		bins = chart.DefaultBins
	}
	d := &Dashboard{
		analyzer: analyzer,
		defaults: defaults,
		bins:     bins,
		levels:   append([]float64(nil), ConfidenceLevels...),
		width:    120,
		height:   40,
		render:   func(...ui.Drawable) {},
	}
	d.level = d.levelIndex(defaults.ConfidenceLevel)

	d.list = widgets.NewList()
	d.list.Title = "Symbols (↑/↓, Enter)"
	d.list.SelectedRowStyle = ui.NewStyle(ui.ColorBlack, ui.ColorYellow)
	d.list.WrapText = false
	d.list.SelectedRow = -1
	for i, p := range pairs {
		d.addRow(p.Symbol)
		if p.Symbol == defaults.Symbol {
			d.list.SelectedRow = i
		}
	}
	if d.list.SelectedRow < 0 {
		// A requested ticker outside the table gets its own row on top.
		d.list.SelectedRow = 0
		if defaults.Symbol != "" {
			d.tickers = append([]string{defaults.Symbol}, d.tickers...)
			d.list.Rows = append([]string{rowLabel(defaults.Symbol)}, d.list.Rows...)
		}
	}

	d.stats = widgets.NewParagraph()
	d.stats.Title = "Statistics"
	d.stats.Text = "Press Enter to analyze the selected symbol."

	d.hist = widgets.NewBarChart()
	d.hist.Title = "Price Distribution"
	d.hist.BarGap = 0
	d.hist.NumFormatter = func(v float64) string {
		if d.hist.BarWidth < 3 {
			return ""
		}
		return fmt.Sprintf("%.0f", v)
	}

	d.prices = widgets.NewPlot()
	d.prices.Title = "Price / Mean / Median"
	d.prices.Marker = widgets.MarkerBraille
	d.prices.LineColors = []ui.Color{ui.ColorCyan, ui.ColorBlue, ui.ColorYellow}

	d.split = widgets.NewPlot()
	d.split.Title = "Above / Below Mean"
	d.split.PlotType = widgets.ScatterPlot
	d.split.Marker = widgets.MarkerDot
	d.split.LineColors = []ui.Color{ui.ColorGreen, ui.ColorRed}

	d.clearCharts()

	d.grid = ui.NewGrid()
	d.grid.Set(
		ui.NewRow(0.6,
			ui.NewCol(0.22, d.list),
			ui.NewCol(0.33, d.stats),
			ui.NewCol(0.45, d.hist),
		),
		ui.NewRow(0.4,
			ui.NewCol(0.5, d.prices),
			ui.NewCol(0.5, d.split),
		),
	)
	d.Resize(d.width, d.height)
	return d
}

// Run takes over the terminal until ctx is done or the user quits.
func (d *Dashboard) Run(ctx context.Context) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("initialize termui: %w", err)
	}
	defer ui.Close()
	d.render = ui.Render

	d.Resize(ui.TerminalDimensions())
	d.render(d.grid)
	d.analyzeSelected(ctx)
	d.render(d.grid)

	events := ui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-events:
			if e.Type == ui.ResizeEvent {
				payload := e.Payload.(ui.Resize)
				d.Resize(payload.Width, payload.Height)
				ui.Clear()
			}
			if d.HandleKey(ctx, e.ID) {
				log.Info("dashboard closed by user")
				return nil
			}
			d.render(d.grid)
		}
	}
}

// HandleKey applies one key event and reports whether the user asked to quit.
func (d *Dashboard) HandleKey(ctx context.Context, id string) bool {
	switch id {
	case "q", "<C-c>":
		return true
	case "j", "<Down>":
		d.list.ScrollDown()
	case "k", "<Up>":
		d.list.ScrollUp()
	case "g", "<Home>":
		d.list.ScrollTop()
	case "G", "<End>":
		d.list.ScrollBottom()
	case "<Enter>":
		d.analyzeSelected(ctx)
	case "c":
		d.level = (d.level + 1) % len(d.levels)
		d.reanalyze(ctx)
	case "C":
		d.level = (d.level + len(d.levels) - 1) % len(d.levels)
		d.reanalyze(ctx)
	case "r":
		d.reanalyze(ctx)
	}
	return false
}

// Resize records the terminal size and refits the charts to it.
func (d *Dashboard) Resize(width, height int) {
	d.width, d.height = width, height
	d.grid.SetRect(0, 0, width, height)
	if d.current != nil {
		d.fillCharts(d.current)
	}
}

// Current returns the analysis on screen, if any.
func (d *Dashboard) Current() *model.Analysis { return d.current }

// ConfidenceLevel returns the level used for the next analysis.
func (d *Dashboard) ConfidenceLevel() float64 { return d.levels[d.level] }

func (d *Dashboard) levelIndex(cl float64) int {
	for i, l := range d.levels {
		if l == cl {
			return i
		}
	}
	if cl > 0 && cl < 1 {
		d.levels = append(d.levels, cl)
		return len(d.levels) - 1
	}
	return 1
}

func (d *Dashboard) addRow(ticker string) {
	d.tickers = append(d.tickers, ticker)
	d.list.Rows = append(d.list.Rows, rowLabel(ticker))
}

func rowLabel(ticker string) string {
	if from, to, ok := symbols.Parse(ticker); ok {
		return fmt.Sprintf("%s → %s  %s", from, to, ticker)
	}
	return ticker
}

func (d *Dashboard) selectedSymbol() string {
	if len(d.tickers) == 0 {
		return d.defaults.Symbol
	}
	return d.tickers[d.list.SelectedRow]
}

func (d *Dashboard) reanalyze(ctx context.Context) {
	if d.current == nil {
		d.analyzeSelected(ctx)
		return
	}
	d.analyze(ctx, d.current.Request.Symbol)
}

func (d *Dashboard) analyzeSelected(ctx context.Context) {
	d.analyze(ctx, d.selectedSymbol())
}

func (d *Dashboard) analyze(ctx context.Context, symbol string) {
	d.stats.Text = fmt.Sprintf("Loading %s ...", symbol)
	d.render(d.stats)

	req := d.defaults
	req.Symbol = symbol
	req.ConfidenceLevel = d.ConfidenceLevel()

	a, err := d.analyzer.Collect(ctx, req)
	if err != nil {
		// No partial results: the previous charts go away with the failed request.
		d.current = nil
		d.clearCharts()
		d.stats.Text = fmt.Sprintf("[%s](fg:red,mod:bold)\n\n%s",
			notifier.UserMessage(err), d.helpLine())
		return
	}
	d.current = a
	d.stats.Text = d.statsText(a)
	d.fillCharts(a)
}

func (d *Dashboard) helpLine() string {
	return "[Enter](mod:bold) analyze  [c/C](mod:bold) confidence  [r](mod:bold) reload  [q](mod:bold) quit"
}

func (d *Dashboard) statsText(a *model.Analysis) string {
	s := a.Stats
	unit := ""
	if a.Quote != "" {
		unit = " " + a.Quote
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s](fg:cyan,mod:bold) %s → %s\n", a.Request.Symbol,
		a.Request.Start.Format("2006-01-02"), a.Request.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "Observations: %d\n", s.SampleSize)
	fmt.Fprintf(&b, "Mean: %s%s\n", notifier.Price(s.Mean), unit)
	fmt.Fprintf(&b, "Std Dev: %s%s\n", notifier.Price(s.StdDev), unit)
	fmt.Fprintf(&b, "Median: %s%s\n", notifier.Price(s.Median), unit)
	fmt.Fprintf(&b, "Within 1 Std: %s\n", notifier.Percent(s.PctWithinOneStd))
	fmt.Fprintf(&b, "Within 2 Std: %s\n", notifier.Percent(s.PctWithinTwoStd))
	fmt.Fprintf(&b, "%s CI: (%s, %s)\n", notifier.ConfidenceLabel(s.ConfidenceLevel),
		notifier.Price(s.ConfidenceInterval.Lower), notifier.Price(s.ConfidenceInterval.Upper))
	fmt.Fprintf(&b, "Range: %s – %s\n", notifier.Price(s.Range.Lower), notifier.Price(s.Range.Upper))
	if pts := chart.Classify(a.Series, s); len(pts) > 0 {
		last := pts[len(pts)-1]
		side := "[below mean](fg:red)"
		if last.AboveMean {
			side = "[above mean](fg:green)"
		}
		fmt.Fprintf(&b, "Latest %s: %s%s, %s\n", last.Time.Format("2006-01-02"), notifier.Price(last.Price), unit, side)
	}
	fmt.Fprintf(&b, "Above/Below Mean: [%s](fg:green) / [%s](fg:red)\n",
		notifier.Percent(s.PctAboveMean), notifier.Percent(s.PctBelowMean))
	fmt.Fprintf(&b, "Above/Below Median: [%s](fg:green) / [%s](fg:red)\n\n",
		notifier.Percent(s.PctAboveMedian), notifier.Percent(s.PctBelowMedian))
	for _, m := range chart.Markers(s) {
		fmt.Fprintf(&b, "[%s](fg:%s) %s\n", m.Label, markerMarkup[m.Kind], notifier.Price(m.Value))
	}
	b.WriteString("\n" + d.helpLine())
	return b.String()
}

func (d *Dashboard) clearCharts() {
	d.hist.Data = nil
	d.hist.MaxVal = 0
	d.hist.Labels = nil
	d.hist.BarColors = []ui.Color{ui.ColorWhite}
	placeholder := [][]float64{{0, 0}}
	d.prices.Data, d.prices.MaxVal = placeholder, 1
	d.split.Data, d.split.MaxVal = placeholder, 1
}

func (d *Dashboard) fillCharts(a *model.Analysis) {
	values := a.Series.Prices()

	h := chart.NewHistogram(values, d.bins)
	marked := chart.MarkedBins(h, chart.Markers(a.Stats))
	d.hist.Data = h.Counts
	d.hist.MaxVal = h.MaxCount()
	d.hist.Labels = make([]string, h.Bins())
	d.hist.BarColors = make([]ui.Color, h.Bins())
	every := h.Bins() / 5
	if every == 0 {
		every = 1
	}
	for i := range h.Counts {
		d.hist.BarColors[i] = ui.ColorWhite
		if kind, ok := marked[i]; ok {
			d.hist.BarColors[i] = markerColors[kind]
		}
		if i%every == 0 {
			d.hist.Labels[i] = notifier.Price(h.Center(i))
		}
	}
	histInner := int(float64(d.width)*0.45) - 2
	d.hist.BarWidth = max(1, histInner/h.Bins())

	// The plots start at zero, so values are rebased just under the series low.
	points := max(2, int(float64(d.width)*0.5)-12)
	sampled := chart.Downsample(values, points)
	base, top := plotRange(values)
	rebase := func(vs []float64) []float64 {
		out := make([]float64, len(vs))
		for i, v := range vs {
			out[i] = v - base
		}
		return out
	}

	d.prices.Data = [][]float64{
		rebase(sampled),
		rebase(chart.ReferenceLine(len(sampled), a.Stats.Mean)),
		rebase(chart.ReferenceLine(len(sampled), a.Stats.Median)),
	}
	d.prices.MaxVal = top - base
	d.prices.Title = fmt.Sprintf("Price / Mean / Median (offset %s)", notifier.Price(base))

	above, below := chart.SplitAtMean(sampled, a.Stats.Mean)
	d.split.Data = [][]float64{rebase(above), rebase(below)}
	d.split.MaxVal = top - base
	d.split.Title = fmt.Sprintf("Above / Below Mean (offset %s)", notifier.Price(base))
}

// plotRange returns a base below the lowest value and a top above the highest,
// with a 5% margin; a flat series gets a unit span.
func plotRange(values []float64) (base, top float64) {
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - 0.05*span, hi + 0.05*span
}
