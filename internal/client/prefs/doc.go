// Package prefs persists display preferences of the DropVault CLI.
//
// Preferences are string key/value pairs kept in a local SQLite database whose
// schema is managed by goose migrations (see internal/client/migrations).
// ThemeService stores the dark-mode flag under common.DarkModeKey: it is read
// once by Load and written on every Toggle.
//
// Typical usage
//
//	db, _ := prefs.OpenDatabase(ctx, "dropvault.db")
//	theme := prefs.NewThemeService(prefs.NewSQLiteRepository(db), false, notifier, logger)
//	dark, _ := theme.Load(ctx)
//	dark, _ = theme.Toggle(ctx)
package prefs
