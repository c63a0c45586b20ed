package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/opmlogin/internal/flagx"
	"github.com/dmitrijs2005/opmlogin/internal/timex"
)

// JsonConfig is the on-disk shape of Config; absent keys leave values as they are.
type JsonConfig struct {
	EndpointAddr          *string         `json:"endpoint_addr"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	SeedUsers             []string        `json:"seed_users"`
}

// parseJson loads the file named by -c/-config into config. It panics if the
// file cannot be read or parsed.
func parseJson(config *Config, osArgs []string) {
	path := flagx.ConfigPath(osArgs)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.SeedUsers != nil {
		config.SeedUsers = c.SeedUsers
	}
}
