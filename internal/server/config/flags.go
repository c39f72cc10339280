package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-b int      bcrypt cost
//	-m string   demo account email domain
//	-n int      attempts at a unique demo email
//	-e string   environment name ("production" disables the demo reset)
//	-r          reset demo sample tasks at start-up
//
// Durations are given in whole minutes. An unset -t leaves the configured
// validity untouched, so sub-minute values from JSON survive.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-b", "-m", "-n", "-e"}, "-r")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.DemoEmailDomain, "m", config.DemoEmailDomain, "demo email domain")
	fs.IntVar(&config.DemoEmailAttempts, "n", config.DemoEmailAttempts, "demo email attempts")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.BoolVar(&config.ResetDemoTasksOnStart, "r", config.ResetDemoTasksOnStart, "reset demo tasks on start")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
