package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Loader resolves themes by name and keeps the active one current.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	theme     *Theme
	watcher   *Watcher
}

// NewLoader creates a new theme loader. An empty themesDir uses ThemesDir().
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	if themesDir == "" {
		dir, err := ThemesDir()
		if err != nil {
			logger.Warn("failed to get themes directory", "error", err)
		}
		themesDir = dir
	}

	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		theme:     NewDefaultTheme(),
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dropmenu", "themes"), nil
}

// Dir returns the directory user themes are read from.
func (l *Loader) Dir() string {
	return l.themesDir
}

// LoadTheme loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/dropmenu/themes/)
//  2. Embedded/bundled themes
//
// Unknown names fall back to the default theme.
func (l *Loader) LoadTheme(name string) *Theme {
	if name == "" {
		name = DefaultThemeName
	}

	t := l.resolve(name)

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	return t
}

func (l *Loader) resolve(name string) *Theme {
	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				l.logger.Debug("loaded user theme", "name", name, "path", path)
				return t
			}
			l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	if t, err := NewEmbeddedTheme(name); err == nil {
		l.logger.Debug("loaded bundled theme", "name", name)
		return t
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	return NewDefaultTheme()
}

// GetTheme returns the currently loaded theme.
func (l *Loader) GetTheme() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// Watch starts hot-reloading the current theme. onChange receives the
// reloaded theme. Bundled themes are never watched.
func (l *Loader) Watch(ctx context.Context, onChange func(*Theme)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}

	w, err := NewWatcher(l.theme, l.logger)
	if err != nil {
		return err
	}
	w.SetChangeCallback(onChange)
	if err := w.Start(ctx); err != nil {
		_ = w.Close()
		return err
	}
	l.watcher = w
	return nil
}

// Close stops any running watcher.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher == nil {
		return nil
	}
	l.watcher.Stop()
	err := l.watcher.Close()
	l.watcher = nil
	return err
}
