package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dropvault/internal/client/config"
	"github.com/dmitrijs2005/dropvault/internal/client/models"
	"github.com/dmitrijs2005/dropvault/internal/client/notify"
	"github.com/dmitrijs2005/dropvault/internal/client/prefs"
	"github.com/dmitrijs2005/dropvault/internal/client/sharing"
	"github.com/dmitrijs2005/dropvault/internal/client/uploads"
	"github.com/dmitrijs2005/dropvault/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	uploads *uploads.Manager
	sharing *sharing.Service
	theme   *prefs.ThemeService
	db      *sql.DB
	out     io.Writer
	width   func() int
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.Verbose)
	notifier := notify.Multi{notify.NewConsole(os.Stdout), notify.NewLog(logger)}

	db, err := prefs.OpenDatabase(ctx, c.PrefsDSN)
	if err != nil {
		logger.Error(ctx, "error initializing preferences database", "error", err)
		return nil, fmt.Errorf("preferences database: %w", err)
	}

	theme := prefs.NewThemeService(prefs.NewSQLiteRepository(db), c.DarkModeDefault, notifier, logger)
	if _, err := theme.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load theme: %w", err)
	}

	m := uploads.NewManager(notifier, logger,
		uploads.WithTickInterval(c.TickInterval),
		uploads.WithSettleDelay(c.SettleDelay),
		uploads.WithStored(models.DemoStoredFiles()),
	)
	s := sharing.NewService(models.DemoSharedFiles(), c.ShareLink, notifier, logger)

	return &App{
		config:  c,
		logger:  logger,
		uploads: m,
		sharing: s,
		theme:   theme,
		db:      db,
		out:     os.Stdout,
		width:   terminalWidth,
	}, nil
}

// Run starts the REPL on stdin and releases resources once it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx, os.Stdin)
}

// Close stops pending upload timers and closes the preferences database.
func (a *App) Close(ctx context.Context) {
	a.uploads.Shutdown()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing preferences database", "error", err)
		}
	}
}

func (a *App) getStatus() string {
	mode := "light"
	if a.theme.DarkMode() {
		mode = "dark"
	}
	if a.uploads.Uploading() {
		return fmt.Sprintf("(%s, uploading)", mode)
	}
	return fmt.Sprintf("(%s)", mode)
}
