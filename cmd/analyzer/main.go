package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"CurrencyAnalyzer/internal/bot"
	"CurrencyAnalyzer/internal/collector"
	"CurrencyAnalyzer/internal/config"
	"CurrencyAnalyzer/internal/console"
	"CurrencyAnalyzer/internal/dashboard"
	"CurrencyAnalyzer/internal/logger"
	"CurrencyAnalyzer/internal/notifier"
	"CurrencyAnalyzer/internal/symbols"
)

const defaultDashboardLog = "currency-analyzer.log"

type app struct {
	cfg    *config.Config
	mock   bool
	logOut io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.cli().RunContext(ctx, os.Args); err != nil {
		console.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) cli() *cli.App {
	return &cli.App{
		Name:  "currency-analyzer",
		Usage: "currency pair price statistics from Yahoo Finance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file",
				Value:   "configs/config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:    "mock",
				Usage:   "use generated prices instead of Yahoo Finance",
				EnvVars: []string{"MOCK_DATA"},
			},
		},
		Before: a.setup,
		After: func(*cli.Context) error {
			if a.logOut != nil {
				return a.logOut.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "symbols",
				Usage:  "print the currency symbol table",
				Action: a.symbols,
			},
			{
				Name:   "analyze",
				Usage:  "print price statistics for one symbol",
				Flags:  requestFlags(),
				Action: a.analyze,
			},
			{
				Name:   "dashboard",
				Usage:  "interactive terminal dashboard",
				Flags:  requestFlags(),
				Action: a.dashboard,
			},
			{
				Name:   "bot",
				Usage:  "answer Telegram commands",
				Action: a.bot,
			},
		},
	}
}

func (a *app) setup(c *cli.Context) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	a.cfg = cfg
	a.mock = c.Bool("mock")

	// The dashboard owns the terminal, so its logs always go to a file.
	logFile := cfg.Log.File
	if c.Args().First() == "dashboard" && logFile == "" {
		logFile = defaultDashboardLog
	}
	out, err := logger.Setup(cfg.Log.Level, logFile)
	if err != nil {
		return err
	}
	a.logOut = out
	return nil
}

func (a *app) collector() *collector.Collector {
	if a.mock {
		return collector.NewCollector(mockFetcher(a.cfg.Analysis.Currencies))
	}
	return collector.NewCollector(collector.NewYahooFetcher(a.cfg.DataSource.BaseURL, a.cfg.Proxy))
}

func (a *app) symbols(c *cli.Context) error {
	return console.PrintSymbolTable(c.App.Writer, symbols.Build(a.cfg.Analysis.Currencies))
}

func (a *app) analyze(c *cli.Context) error {
	req, err := buildRequest(c, a.cfg, config.Today(nowFunc()))
	if err != nil {
		return err
	}
	analysis, err := a.collector().Collect(c.Context, req)
	if err != nil {
		return err
	}
	console.PrintReport(c.App.Writer, analysis)
	return nil
}

func (a *app) dashboard(c *cli.Context) error {
	req, err := buildRequest(c, a.cfg, config.Today(nowFunc()))
	if err != nil {
		return err
	}
	log.Infof("dashboard starting for %s", req.Symbol)
	d := dashboard.New(a.collector(), symbols.Build(a.cfg.Analysis.Currencies), req, a.cfg.Analysis.HistogramBins)
	return d.Run(c.Context)
}

func (a *app) bot(c *cli.Context) error {
	if err := a.cfg.ValidateTelegram(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	defaults, err := buildRequest(c, a.cfg, config.Today(nowFunc()))
	if err != nil {
		return err
	}
	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
	b := bot.New(a.collector(), a.cfg.Analysis.Currencies, defaults)

	log.Info("Telegram polling started. Press Ctrl+C to stop.")
	tn.StartPolling(c.Context, b.HandleCommand)
	log.Info("shutdown signal received, bot stopped")
	return nil
}
