// Package config loads runtime configuration for the login client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the authentication API
//	-t int      login request timeout (seconds)
//	-m string   message shown when a failed login carries no error text
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept "2s" style strings or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "2s",
//	  "fallback_error_message": "",
//	  "log_level": "warn"
//	}
package config
