package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/opmlogin/internal/flagx"
	"github.com/dmitrijs2005/opmlogin/internal/timex"
)

// parseFlags overlays cfg with the flags it knows about; see package doc.
// Only flags present in osArgs change cfg.
func parseFlags(cfg *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-t", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	requestTimeout := timex.Duration{Duration: cfg.RequestTimeout}

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the authentication API")
	fs.Var(&requestTimeout, "t", "login request timeout (seconds, or a duration such as 500ms)")
	fs.StringVar(&cfg.FallbackErrorMessage, "m", cfg.FallbackErrorMessage, "message for failures without error text")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name != "t" {
			return
		}
		if requestTimeout.Duration <= 0 {
			panic(fmt.Errorf("%w: -t %s", errNonPositiveTimeout, f.Value))
		}
		cfg.RequestTimeout = requestTimeout.Duration
	})
}
