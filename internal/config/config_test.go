package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "timesheet.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "timesheet.db")
	}
	if cfg.Holidays.Country != "FR" {
		t.Errorf("Holidays.Country = %q, want FR", cfg.Holidays.Country)
	}
	if cfg.Export.Title != "" {
		t.Errorf("Export.Title = %q, want empty", cfg.Export.Title)
	}
	if cfg.Server.Listen != "0.0.0.0:8080" {
		t.Errorf("Server.Listen = %q, want 0.0.0.0:8080", cfg.Server.Listen)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TIMESHEET_DB", "/tmp/other.db")
	t.Setenv("TIMESHEET_COUNTRY", "de")
	t.Setenv("TIMESHEET_TITLE", "  Jane Doe ")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("Database.Path = %q, want /tmp/other.db", cfg.Database.Path)
	}
	if cfg.Holidays.Country != "DE" {
		t.Errorf("Holidays.Country = %q, want DE", cfg.Holidays.Country)
	}
	if cfg.Export.Title != "Jane Doe" {
		t.Errorf("Export.Title = %q, want %q", cfg.Export.Title, "Jane Doe")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("holidays:\n  country: be\n  timeout: 3s\nexport:\n  title: Team A\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Holidays.Country != "BE" {
		t.Errorf("Holidays.Country = %q, want BE", cfg.Holidays.Country)
	}
	if got := cfg.Holidays.GetTimeout(); got != 3*time.Second {
		t.Errorf("GetTimeout() = %v, want 3s", got)
	}
	if cfg.Export.Title != "Team A" {
		t.Errorf("Export.Title = %q, want %q", cfg.Export.Title, "Team A")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing explicit config file, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.db"},
			Holidays: HolidaysConfig{Country: "FR", BaseURL: "https://date.nager.at"},
			Export:   ExportConfig{Renderer: RendererPDF},
			Server:   ServerConfig{Listen: ":8080"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"postgres driver", func(c *Config) { c.Database.Driver = DriverPostgres }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"empty path", func(c *Config) { c.Database.Path = "" }, true},
		{"three letter country", func(c *Config) { c.Holidays.Country = "FRA" }, true},
		{"unknown renderer", func(c *Config) { c.Export.Renderer = "docx" }, true},
		{"browser renderer", func(c *Config) { c.Export.Renderer = RendererBrowser }, false},
		{"empty listen", func(c *Config) { c.Server.Listen = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTimeout_Fallback(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 10 * time.Second},
		{"garbage", 10 * time.Second},
		{"-1s", 10 * time.Second},
		{"250ms", 250 * time.Millisecond},
	}

	for _, tt := range tests {
		c := HolidaysConfig{Timeout: tt.value}
		if got := c.GetTimeout(); got != tt.want {
			t.Errorf("GetTimeout(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
