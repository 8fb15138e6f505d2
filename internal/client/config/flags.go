package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/dropvault/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// known here are parsed (see flagx.FilterArgs) so the -c/-config pair handled
// by parseJson does not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-t", "-s", "-d", "-l", "-dark", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	tick := fs.Int("t", int(cfg.TickInterval.Milliseconds()), "progress tick interval (in milliseconds)")
	settle := fs.Int("s", int(cfg.SettleDelay.Milliseconds()), "settle delay before storing a finished batch (in milliseconds)")
	fs.StringVar(&cfg.PrefsDSN, "d", cfg.PrefsDSN, "preferences database DSN")
	fs.StringVar(&cfg.ShareLink, "l", cfg.ShareLink, "share link returned by link copy")
	fs.BoolVar(&cfg.DarkModeDefault, "dark", cfg.DarkModeDefault, "dark mode when no preference is stored")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TickInterval = time.Duration(*tick) * time.Millisecond
	cfg.SettleDelay = time.Duration(*settle) * time.Millisecond
}
