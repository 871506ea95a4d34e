package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"CurrencyAnalyzer/internal/collector"
	"CurrencyAnalyzer/internal/config"
	"CurrencyAnalyzer/internal/model"
	"CurrencyAnalyzer/internal/notifier"
	"CurrencyAnalyzer/internal/symbols"
)

const helpText = "Available commands:\n" +
	"• /symbols: currency symbol table\n" +
	"• /analyze [SYMBOL] [START END], e.g. /analyze GBPILS=X 2023-01-01 2024-01-01\n" +
	"• /analyze SYMBOL LOOKBACK, e.g. /analyze USDJPY=X 26w"

// Bot answers chat commands with symbol tables and analysis reports.
type Bot struct {
	Collector  *collector.Collector
	Currencies []string
	Defaults   model.AnalysisRequest
	Now        func() time.Time
}

// New creates a Bot; defaults fill in whatever a command leaves out.
func New(col *collector.Collector, currencies []string, defaults model.AnalysisRequest) *Bot {
	return &Bot{Collector: col, Currencies: currencies, Defaults: defaults, Now: time.Now}
}

// HandleCommand processes a user command and returns a reply.
func (b *Bot) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Commands may be addressed as /analyze@SomeBot in group chats.
	name, _, _ := strings.Cut(fields[0], "@")

	switch name {
	case "/symbols":
		return notifier.FormatSymbolTable(symbols.Build(b.Currencies))
	case "/analyze":
		req, err := b.parseAnalyze(fields[1:])
		if err != nil {
			return "Invalid request: " + html.EscapeString(err.Error())
		}
		a, err := b.Collector.Collect(ctx, req)
		if err != nil {
			log.WithField("symbol", req.Symbol).Warnf("analyze command failed: %v", err)
			// Replies are sent as HTML and errors may echo user or provider text.
			return html.EscapeString(notifier.UserMessage(err))
		}
		return notifier.FormatReport(a)
	default:
		return helpText
	}
}

func (b *Bot) parseAnalyze(args []string) (model.AnalysisRequest, error) {
	req := b.Defaults
	if len(args) > 0 {
		req.Symbol = strings.ToUpper(args[0])
	}
	switch len(args) {
	case 0, 1:
	case 2:
		end := config.Today(b.Now())
		start, err := config.Lookback(end, args[1])
		if err != nil {
			return req, err
		}
		req.Start, req.End = start, end
	case 3:
		start, err := time.Parse(config.DateLayout, args[1])
		if err != nil {
			return req, fmt.Errorf("start date: %w", err)
		}
		end, err := time.Parse(config.DateLayout, args[2])
		if err != nil {
			return req, fmt.Errorf("end date: %w", err)
		}
		req.Start, req.End = start, end
	default:
		return req, fmt.Errorf("too many arguments")
	}
	return req, nil
}
