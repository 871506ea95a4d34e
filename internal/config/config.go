package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"CurrencyAnalyzer/internal/symbols"
)

// DateLayout is the format of start/end dates in config and on the command line.
const DateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"data_source"`
	Analysis struct {
		Symbol          string   `yaml:"symbol"`
		StartDate       string   `yaml:"start_date"`
		EndDate         string   `yaml:"end_date"`
		ConfidenceLevel float64  `yaml:"confidence_level"`
		Currencies      []string `yaml:"currencies"`
		HistogramBins   int      `yaml:"histogram_bins"`
	} `yaml:"analysis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("ANALYSIS_SYMBOL"); v != "" {
		cfg.Analysis.Symbol = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults
	if cfg.Analysis.Symbol == "" {
		cfg.Analysis.Symbol = "GBPILS=X"
	}
	if cfg.Analysis.StartDate == "" {
		cfg.Analysis.StartDate = "2023-01-01"
	}
	if cfg.Analysis.EndDate == "" {
		cfg.Analysis.EndDate = "2024-01-01"
	}
	if cfg.Analysis.ConfidenceLevel == 0 {
		cfg.Analysis.ConfidenceLevel = 0.95
	}
	if len(cfg.Analysis.Currencies) == 0 {
		cfg.Analysis.Currencies = append([]string(nil), symbols.DefaultCurrencies...)
	}
	if cfg.Analysis.HistogramBins == 0 {
		cfg.Analysis.HistogramBins = 50
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Range parses the configured analysis window.
func (c *Config) Range() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, c.Analysis.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("analysis.start_date: %w", err)
	}
	end, err = time.Parse(DateLayout, c.Analysis.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("analysis.end_date: %w", err)
	}
	return start, end, nil
}

// Validate checks that the analysis settings are usable.
func (c *Config) Validate() error {
	if c.Analysis.Symbol == "" {
		return fmt.Errorf("analysis.symbol is required")
	}
	start, end, err := c.Range()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("analysis.start_date must be before analysis.end_date")
	}
	if cl := c.Analysis.ConfidenceLevel; !(cl > 0 && cl < 1) {
		return fmt.Errorf("analysis.confidence_level must be in (0, 1)")
	}
	if len(c.Analysis.Currencies) < 2 {
		return fmt.Errorf("analysis.currencies needs at least two codes")
	}
	if c.Analysis.HistogramBins < 1 {
		return fmt.Errorf("analysis.histogram_bins must be positive")
	}
	return nil
}

// ValidateTelegram checks the settings needed by the chat front-end.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
