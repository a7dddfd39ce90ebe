package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/flagx"
)

// parseFlags overlays cfg with -a, -f and -w. Other arguments are ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-f", "-w"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the AutoKeeper API")
	fs.StringVar(&cfg.SessionDB, "f", cfg.SessionDB, "local session database file")
	timeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
