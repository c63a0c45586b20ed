// Package config handles configuration for the dev auth server: defaults,
// JSON overlay (-c/-config), then command-line flags.
package config

import (
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps users in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - SeedUsers: "email:password" pairs created at start if missing.
type Config struct {
	EndpointAddr          string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	SeedUsers             []string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 60 * time.Minute
	c.SeedUsers = nil
}

// SeedUser is a parsed SeedUsers entry.
type SeedUser struct {
	Email    string
	Password string
}

// ParsedSeedUsers splits SeedUsers at the first ':'; entries without one,
// or with an empty side, are skipped.
func (c *Config) ParsedSeedUsers() []SeedUser {
	out := make([]SeedUser, 0, len(c.SeedUsers))
	for _, entry := range c.SeedUsers {
		email, password, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || email == "" || password == "" {
			continue
		}
		out = append(out, SeedUser{Email: email, Password: password})
	}
	return out
}

// LoadConfig builds a Config from defaults, the optional JSON file and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
