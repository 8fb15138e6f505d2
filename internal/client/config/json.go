package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dropvault/internal/flagx"
	"github.com/dmitrijs2005/dropvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides
// what it names.
type JsonConfig struct {
	TickInterval    *timex.Duration `json:"tick_interval"`
	SettleDelay     *timex.Duration `json:"settle_delay"`
	PrefsDSN        *string         `json:"prefs_dsn"`
	ShareLink       *string         `json:"share_link"`
	DarkModeDefault *bool           `json:"dark_mode_default"`
	Verbose         *bool           `json:"verbose"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Panics on read or unmarshal errors, like parseFlags does on bad flags.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
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

	if jc.TickInterval != nil {
		cfg.TickInterval = jc.TickInterval.Duration
	}
	if jc.SettleDelay != nil {
		cfg.SettleDelay = jc.SettleDelay.Duration
	}
	if jc.PrefsDSN != nil {
		cfg.PrefsDSN = *jc.PrefsDSN
	}
	if jc.ShareLink != nil {
		cfg.ShareLink = *jc.ShareLink
	}
	if jc.DarkModeDefault != nil {
		cfg.DarkModeDefault = *jc.DarkModeDefault
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
