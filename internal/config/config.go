// Package config provides centralized configuration management for catimport.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Feed     FeedConfig
	Import   ImportConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds catalog store connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// FeedConfig describes where product fields live in the spreadsheet feed.
type FeedConfig struct {
	// Sheet is the worksheet to read; empty means the first sheet
	Sheet string `env:"FEED_SHEET"`

	// BarcodeColumn is the spreadsheet column holding the EAN13 barcode (default: A)
	BarcodeColumn string `env:"FEED_BARCODE_COLUMN" default:"A"`

	// NameColumn is the spreadsheet column holding the product name (default: B)
	NameColumn string `env:"FEED_NAME_COLUMN" default:"B"`

	// PriceColumn is the spreadsheet column holding the price (default: E)
	PriceColumn string `env:"FEED_PRICE_COLUMN" default:"E"`

	// HeaderRows is the number of leading rows to skip (default: 1)
	HeaderRows int `env:"FEED_HEADER_ROWS" default:"1"`

	// MaxFileSize is the maximum allowed feed file size in bytes (default: 50MB)
	MaxFileSize int64 `env:"FEED_MAX_FILE_SIZE" default:"52428800"`
}

// ImportConfig holds reconciliation behavior settings.
type ImportConfig struct {
	// LangID is the catalog language every localized row is written for (default: 1)
	LangID int `env:"IMPORT_LANG_ID" default:"1"`

	// ShopID is the catalog shop every localized row is scoped to (default: 1)
	ShopID int `env:"IMPORT_SHOP_ID" default:"1"`

	// Timeout is the maximum duration for one import batch (default: 10m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"10m"`
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 0, imports can be slow)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
