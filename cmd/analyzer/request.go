package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"CurrencyAnalyzer/internal/calculator"
	"CurrencyAnalyzer/internal/collector"
	"CurrencyAnalyzer/internal/config"
	"CurrencyAnalyzer/internal/model"
	"CurrencyAnalyzer/internal/symbols"
)

var nowFunc = time.Now

type requestOptions struct {
	Symbol     string
	Start      string
	End        string
	Lookback   string
	Confidence float64
}

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Yahoo pair ticker, e.g. GBPILS=X"},
		&cli.StringFlag{Name: "start", Usage: "first day of the window (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end", Usage: "day after the window (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "lookback", Aliases: []string{"l"}, Usage: "window length ending at --end or today, e.g. 52w, 90d"},
		&cli.Float64Flag{Name: "confidence", Aliases: []string{"c"}, Usage: "confidence level in (0, 1)"},
	}
}

func optionsFrom(c *cli.Context) requestOptions {
	return requestOptions{
		Symbol:     c.String("symbol"),
		Start:      c.String("start"),
		End:        c.String("end"),
		Lookback:   c.String("lookback"),
		Confidence: c.Float64("confidence"),
	}
}

func buildRequest(c *cli.Context, cfg *config.Config, today time.Time) (model.AnalysisRequest, error) {
	return resolveRequest(optionsFrom(c), cfg, today)
}

// resolveRequest fills the options left empty from cfg. A lookback window ends
// at --end when given, otherwise today.
func resolveRequest(opts requestOptions, cfg *config.Config, today time.Time) (model.AnalysisRequest, error) {
	req := model.AnalysisRequest{
		Symbol:          strings.ToUpper(strings.TrimSpace(opts.Symbol)),
		ConfidenceLevel: opts.Confidence,
	}
	if req.Symbol == "" {
		req.Symbol = cfg.Analysis.Symbol
	}
	if req.ConfidenceLevel == 0 {
		req.ConfidenceLevel = cfg.Analysis.ConfidenceLevel
	}
	if cl := req.ConfidenceLevel; !(cl > 0 && cl < 1) {
		return req, fmt.Errorf("%w: %v", calculator.ErrInvalidConfidence, cl)
	}

	if opts.Lookback != "" {
		if opts.Start != "" {
			return req, errors.New("use either --start or --lookback, not both")
		}
		end := today
		if opts.End != "" {
			t, err := time.Parse(config.DateLayout, opts.End)
			if err != nil {
				return req, fmt.Errorf("parse --end: %w", err)
			}
			end = t
		}
		start, err := config.Lookback(end, opts.Lookback)
		if err != nil {
			return req, err
		}
		req.Start, req.End = start, end
		return req, nil
	}

	cfgStart, cfgEnd, err := cfg.Range()
	if err != nil {
		return req, err
	}
	req.Start, req.End = cfgStart, cfgEnd
	if opts.Start != "" {
		if req.Start, err = time.Parse(config.DateLayout, opts.Start); err != nil {
			return req, fmt.Errorf("parse --start: %w", err)
		}
	}
	if opts.End != "" {
		if req.End, err = time.Parse(config.DateLayout, opts.End); err != nil {
			return req, fmt.Errorf("parse --end: %w", err)
		}
	}
	return req, nil
}

// mockFetcher serves two years of generated daily prices for every pair.
func mockFetcher(currencies []string) *collector.MockFetcher {
	m := &collector.MockFetcher{Prices: make(map[string][]float64)}
	for i, p := range symbols.Build(currencies) {
		m.Prices[p.Symbol] = collector.GenerateMockPrices(1+float64(i)*0.25, 730)
	}
	return m
}
