package prefs

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/dropvault/internal/client/notify"
	"github.com/dmitrijs2005/dropvault/internal/common"
	"github.com/dmitrijs2005/dropvault/internal/logging"
)

// ThemeService keeps the dark-mode flag.
type ThemeService struct {
	mu       sync.Mutex
	repo     Repository
	fallback bool
	dark     bool
	notifier notify.Notifier
	logger   logging.Logger
}

// NewThemeService returns a service starting in the fallback mode until Load
// finds a stored preference.
func NewThemeService(repo Repository, fallback bool, n notify.Notifier, l logging.Logger) *ThemeService {
	return &ThemeService{
		repo:     repo,
		fallback: fallback,
		dark:     fallback,
		notifier: n,
		logger:   l.With("component", "theme"),
	}
}

// Load reads the stored flag. A missing or unreadable value leaves the
// fallback in place; only storage failures are returned.
func (s *ThemeService) Load(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.repo.Get(ctx, common.DarkModeKey)
	if errors.Is(err, common.ErrorNotFound) {
		s.dark = s.fallback
		return s.dark, nil
	}
	if err != nil {
		return s.dark, err
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		s.logger.Warn(ctx, "ignoring malformed theme preference", "value", raw)
		s.dark = s.fallback
		return s.dark, nil
	}
	s.dark = v
	return s.dark, nil
}

// DarkMode returns the current flag without touching storage.
func (s *ThemeService) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Toggle flips the flag and stores it. On a storage error the flag is unchanged.
func (s *ThemeService) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	cur := s.dark
	next := !cur
	if err := s.repo.Set(ctx, common.DarkModeKey, strconv.FormatBool(next)); err != nil {
		s.mu.Unlock()
		s.logger.Error(ctx, "theme preference not saved", "error", err)
		return cur, err
	}
	s.dark = next
	s.mu.Unlock()

	s.logger.Info(ctx, "theme changed", "dark_mode", next)
	s.notifier.Notify(ctx, notify.Event{Kind: notify.ThemeChanged, DarkMode: next})
	return next, nil
}
