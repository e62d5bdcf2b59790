package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FileWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
sheets:
  credentials_json: '{"client_email":"from-file"}'
  spreadsheet_id: file-sheet
alpaca:
  api_key: file-key
  api_secret: file-secret
trading:
  min_notional: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("SPREADSHEET_ID", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("env should override file: got %q", cfg.Alpaca.APIKey)
	}
	if cfg.Alpaca.APISecret != "file-secret" {
		t.Errorf("file value lost: got %q", cfg.Alpaca.APISecret)
	}
	if cfg.Sheets.SpreadsheetID != "file-sheet" {
		t.Errorf("empty env should not override: got %q", cfg.Sheets.SpreadsheetID)
	}
	if cfg.Trading.MinNotional != 5 {
		t.Errorf("min_notional = %v, want 5", cfg.Trading.MinNotional)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Sheets.Worksheet != "Alpaca-Screener" {
		t.Errorf("worksheet default = %q", cfg.Sheets.Worksheet)
	}
	if cfg.Schedule.RunCron == "" {
		t.Error("expected a default run cron")
	}
	if cfg.Trading.MinNotional != 1.0 {
		t.Errorf("min_notional default = %v, want 1.0", cfg.Trading.MinNotional)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	full := func() *Config {
		c := &Config{}
		c.Sheets.CredentialsJSON = "{}"
		c.Sheets.SpreadsheetID = "id"
		c.Alpaca.APIKey = "k"
		c.Alpaca.APISecret = "s"
		return c
	}
	if err := full().Validate(); err != nil {
		t.Errorf("complete config should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing credentials", func(c *Config) { c.Sheets.CredentialsJSON = "" }},
		{"missing spreadsheet", func(c *Config) { c.Sheets.SpreadsheetID = "" }},
		{"missing api key", func(c *Config) { c.Alpaca.APIKey = "" }},
		{"missing api secret", func(c *Config) { c.Alpaca.APISecret = "" }},
		{"negative min notional", func(c *Config) { c.Trading.MinNotional = -1 }},
	}
	for _, tt := range tests {
		c := full()
		tt.mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
