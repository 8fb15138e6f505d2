package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/dmitrijs2005/dropvault/internal/common"
)

// Config holds runtime settings for the DropVault CLI.
type Config struct {
	// TickInterval is the period of each file's simulated progress tick.
	TickInterval time.Duration
	// SettleDelay separates the last file reaching 100% from batch finalization.
	SettleDelay time.Duration
	// PrefsDSN points at the SQLite database holding display preferences.
	PrefsDSN string
	// ShareLink is the link returned by the simulated link copy.
	ShareLink string
	// DarkModeDefault applies until a theme preference has been stored.
	DarkModeDefault bool
	Verbose         bool
}

// DefaultPrefsDSN places the preferences database under the user's XDG data
// directory.
func DefaultPrefsDSN() string {
	return filepath.Join(xdg.DataHome, "dropvault", "prefs.db")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.TickInterval = 200 * time.Millisecond
	c.SettleDelay = 500 * time.Millisecond
	c.PrefsDSN = DefaultPrefsDSN()
	c.ShareLink = common.ShareLink
	c.DarkModeDefault = false
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
