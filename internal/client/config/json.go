package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/opmlogin/internal/flagx"
	"github.com/dmitrijs2005/opmlogin/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Pointer fields distinguish
// "absent" from "empty" so a partial file only overrides what it names.
type JsonConfig struct {
	ServerBaseURL        *string         `json:"server_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	FallbackErrorMessage *string         `json:"fallback_error_message"`
	LogLevel             *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, osArgs []string) {
	path := flagx.ConfigPath(osArgs)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		if jc.RequestTimeout.Duration <= 0 {
			panic(fmt.Errorf("%w: request_timeout %s", errNonPositiveTimeout, jc.RequestTimeout))
		}
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.FallbackErrorMessage != nil {
		cfg.FallbackErrorMessage = *jc.FallbackErrorMessage
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
