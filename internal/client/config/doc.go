// Package config loads runtime configuration for the DropVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (see parseJson).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-t int      progress tick interval (milliseconds)
//	-s int      settle delay before a finished batch is stored (milliseconds)
//	-d string   DSN of the local preferences database
//	-l string   link handed out by "copy share link"
//	-dark       dark mode when no preference has been stored yet
//	-v          verbose (debug) logging
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "200ms" or
// integer nanoseconds:
//
//	{
//	  "tick_interval": "200ms",
//	  "settle_delay": "500ms",
//	  "prefs_dsn": "/home/me/.local/share/dropvault/prefs.db",
//	  "share_link": "https://dropvault.example/share/abc123",
//	  "dark_mode_default": false,
//	  "verbose": false
//	}
package config
