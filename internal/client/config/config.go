package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
)

var errNonPositiveTimeout = errors.New("request timeout must be positive")

// Config holds runtime settings for the login client.
//
// RequestTimeout bounds a single login request and therefore how long the
// form can show the in-flight spinner.
type Config struct {
	ServerBaseURL        string
	RequestTimeout       time.Duration
	FallbackErrorMessage string
	LogLevel             string
}

// LoadDefaults populates c with the production endpoint and a 2s timeout.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://sore-puce-magpie-sari.cyclic.app"
	c.RequestTimeout = 2 * time.Second
	c.FallbackErrorMessage = ""
	c.LogLevel = "warn"
}

// SlogLevel maps LogLevel to a slog level; unknown values mean warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LoadConfig applies defaults, then the JSON file, then flags. It panics on
// unreadable files or malformed flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
