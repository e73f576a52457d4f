package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"prompt-collector/config"
	"prompt-collector/prompt"
	"prompt-collector/storage"
	"prompt-collector/storage/sqlite"
)

// app is what every command runs against. It is filled in by the root command's
// pre-run hook.
type app struct {
	cfg      config.Config
	notifier *storage.Notifier
	prompts  *prompt.Manager
	clip     Clipboard
	closer   func() error

	editMode bool
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, closer, err := openStore(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.closer = closer
	a.notifier = storage.NewNotifier(store)
	a.prompts = prompt.NewManager(a.notifier)

	if _, err := a.prompts.InitializeDefaultsIfFirstTime(ctx); err != nil {
		// The store stays usable; the next start tries again.
		log.Printf("could not seed default collection: %v", err)
	}
	return nil
}

// close releases the store. It is safe to call more than once, and before open.
func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	closer := a.closer
	a.closer = nil
	return closer()
}

// openStore opens the configured backend. The returned func releases it.
func openStore(cfg config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), noop, nil
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoreFile:
		s, err := storage.NewFileStore(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// systemDark reports the system color preference: the configured override, or
// the terminal's background.
func (a *app) systemDark() bool {
	if a.cfg.SystemDark != nil {
		return *a.cfg.SystemDark
	}
	return lipgloss.HasDarkBackground()
}

func (a *app) systemTheme() prompt.Theme {
	return prompt.SystemTheme(a.systemDark())
}

func (a *app) renderer(theme prompt.Theme) renderer {
	return newRenderer(renderOptions{Theme: theme, EditMode: a.editMode})
}

// currentRenderer resolves the stored theme against the system preference.
func (a *app) currentRenderer(ctx context.Context) (renderer, error) {
	theme, err := a.prompts.ResolveTheme(ctx, a.systemDark())
	if err != nil {
		return renderer{}, err
	}
	return a.renderer(theme), nil
}
