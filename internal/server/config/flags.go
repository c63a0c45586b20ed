package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/flagx"
)

// parseFlags overlays config with command-line flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN, empty for in-memory users
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-u string   comma-separated seed users, "email:password,..."
func parseFlags(config *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-d", "-s", "-t", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	seedUsers := fs.String("u", strings.Join(config.SeedUsers, ","), "seed users, email:password pairs separated by commas")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.SeedUsers = nil
	if *seedUsers != "" {
		config.SeedUsers = strings.Split(*seedUsers, ",")
	}
}
