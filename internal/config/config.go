package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Export   ExportConfig   `mapstructure:"export"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig represents storage configuration
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
	Path   string `mapstructure:"path"`   // SQLite file path, or postgres DSN
}

// HolidaysConfig represents public holiday source configuration
type HolidaysConfig struct {
	Country string `mapstructure:"country"` // two-letter country code
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// ExportConfig represents calendar export configuration
type ExportConfig struct {
	Title    string `mapstructure:"title"`
	Renderer string `mapstructure:"renderer"` // "pdf" or "browser"
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Listen     string `mapstructure:"listen"`
	SystemTray bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	RendererPDF     = "pdf"
	RendererBrowser = "browser"

	defaultHolidayTimeout = 10 * time.Second
)

// environment variable names, kept compatible with earlier deployments
var envBindings = map[string]string{
	"database.driver":    "TIMESHEET_DB_DRIVER",
	"database.path":      "TIMESHEET_DB",
	"holidays.country":   "TIMESHEET_COUNTRY",
	"holidays.base_url":  "TIMESHEET_HOLIDAYS_URL",
	"holidays.timeout":   "TIMESHEET_HOLIDAYS_TIMEOUT",
	"export.title":       "TIMESHEET_TITLE",
	"export.renderer":    "TIMESHEET_RENDERER",
	"server.listen":      "TIMESHEET_LISTEN",
	"server.system_tray": "TIMESHEET_SYSTEM_TRAY",
	"log.file":           "TIMESHEET_LOG_FILE",
	"log.level":          "TIMESHEET_LOG_LEVEL",
}

// Load loads configuration from file and environment.
// A missing config file is not an error unless configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.timesheet")
		v.AddConfigPath("/etc/timesheet")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.normalize()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "timesheet.db")
	v.SetDefault("holidays.country", "FR")
	v.SetDefault("holidays.base_url", "https://date.nager.at")
	v.SetDefault("holidays.timeout", defaultHolidayTimeout.String())
	v.SetDefault("export.title", "")
	v.SetDefault("export.renderer", RendererPDF)
	v.SetDefault("server.listen", "0.0.0.0:8080")
	v.SetDefault("server.system_tray", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Holidays.Country = strings.ToUpper(strings.TrimSpace(c.Holidays.Country))
	c.Holidays.BaseURL = strings.TrimRight(c.Holidays.BaseURL, "/")
	c.Export.Title = strings.TrimSpace(c.Export.Title)
	c.Export.Renderer = strings.ToLower(strings.TrimSpace(c.Export.Renderer))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be '%s' or '%s', got '%s'", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if len(c.Holidays.Country) != 2 {
		return fmt.Errorf("holidays.country must be a two-letter code, got '%s'", c.Holidays.Country)
	}
	if c.Holidays.BaseURL == "" {
		return fmt.Errorf("holidays.base_url is required")
	}

	switch c.Export.Renderer {
	case RendererPDF, RendererBrowser:
	default:
		return fmt.Errorf("export.renderer must be '%s' or '%s', got '%s'", RendererPDF, RendererBrowser, c.Export.Renderer)
	}

	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}

	return nil
}

// GetTimeout returns the holiday API request timeout
func (c *HolidaysConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return defaultHolidayTimeout
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil || duration <= 0 {
		return defaultHolidayTimeout
	}
	return duration
}
