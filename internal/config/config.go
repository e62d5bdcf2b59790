package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Sheets struct {
		CredentialsJSON string `yaml:"credentials_json"`
		SpreadsheetID   string `yaml:"spreadsheet_id"`
		Worksheet       string `yaml:"worksheet"`
	} `yaml:"sheets"`
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		BaseURL   string `yaml:"base_url"`
	} `yaml:"alpaca"`
	Schedule struct {
		RunCron string `yaml:"run_cron"`
	} `yaml:"schedule"`
	Trading struct {
		MinNotional float64 `yaml:"min_notional"`
	} `yaml:"trading"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("GOOGLE_CREDS_JSON"); v != "" {
		cfg.Sheets.CredentialsJSON = v
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		cfg.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("WORKSHEET_NAME"); v != "" {
		cfg.Sheets.Worksheet = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("RUN_CRON"); v != "" {
		cfg.Schedule.RunCron = v
	}
	if v := os.Getenv("MIN_NOTIONAL"); v != "" {
		var min float64
		if _, err := fmt.Sscanf(v, "%f", &min); err == nil {
			cfg.Trading.MinNotional = min
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Sheets.Worksheet == "" {
		cfg.Sheets.Worksheet = "Alpaca-Screener"
	}
	if cfg.Schedule.RunCron == "" {
		// Weekdays at 14:45 UTC, shortly after the US market opens.
		cfg.Schedule.RunCron = "0 45 14 * * 1-5"
	}
	if cfg.Trading.MinNotional == 0 {
		cfg.Trading.MinNotional = 1.0
	}

	return cfg, nil
}

// Validate checks that all required fields are set. Missing credentials are a
// fatal startup condition, never a per-row skip.
func (c *Config) Validate() error {
	if c.Sheets.CredentialsJSON == "" {
		return fmt.Errorf("sheets.credentials_json is required (GOOGLE_CREDS_JSON)")
	}
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheet_id is required (SPREADSHEET_ID)")
	}
	if c.Alpaca.APIKey == "" {
		return fmt.Errorf("alpaca.api_key is required (ALPACA_API_KEY)")
	}
	if c.Alpaca.APISecret == "" {
		return fmt.Errorf("alpaca.api_secret is required (ALPACA_API_SECRET)")
	}
	if c.Trading.MinNotional < 0 {
		return fmt.Errorf("trading.min_notional must not be negative")
	}
	return nil
}
