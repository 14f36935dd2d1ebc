// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/dropmenu/internal/placement"
)

// Default configuration values.
const (
	DefaultThemeName = "default"
	DefaultMaxItems  = 12

	DefaultOutputFormat = "value"
)

// Config represents the dropmenu configuration.
type Config struct {
	Dropdown DropdownConfig `toml:"dropdown"`
	Theme    ThemeConfig    `toml:"theme"`
	Menu     MenuConfig     `toml:"menu"`
	Mouse    MouseConfig    `toml:"mouse"`
	Keys     KeysConfig     `toml:"keys"`
	Output   OutputConfig   `toml:"output"`
}

// DropdownConfig holds defaults applied to every dropdown.
type DropdownConfig struct {
	Placement       placement.Placement `toml:"placement"`         // Used when a menu sets none
	MaxItems        int                 `toml:"max_items"`         // Visible rows before scrolling (0 = all)
	DismissOnSelect bool                `toml:"dismiss_on_select"` // Collapse after choosing an item
}

// ThemeConfig selects the active theme.
type ThemeConfig struct {
	Name      string `toml:"name"`
	HotReload bool   `toml:"hot_reload"` // Watch user theme files for changes
}

// MenuConfig holds menu file settings.
type MenuConfig struct {
	File string `toml:"file"` // Default menu file; ~ is expanded
}

// MouseConfig holds mouse tracking settings.
type MouseConfig struct {
	Enabled   bool `toml:"enabled"`
	AllMotion bool `toml:"all_motion"` // Report motion without a button held (enables hover)
}

// KeysConfig overrides dropdown key bindings. Empty lists keep defaults.
type KeysConfig struct {
	Toggle  []string `toml:"toggle"`
	Dismiss []string `toml:"dismiss"`
	Up      []string `toml:"up"`
	Down    []string `toml:"down"`
	Select  []string `toml:"select"`
	Next    []string `toml:"next"`
	Prev    []string `toml:"prev"`
	Quit    []string `toml:"quit"`
}

// OutputConfig controls how a selection is reported.
type OutputConfig struct {
	Format           string `toml:"format"`            // value, label, json, yaml or template
	Template         string `toml:"template"`          // text/template used by the template format
	Copy             bool   `toml:"copy"`              // Also copy the value to the clipboard
	ClipboardCommand string `toml:"clipboard_command"` // Overrides clipboard auto-detection
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dropdown: DropdownConfig{
			Placement:       placement.Default,
			MaxItems:        DefaultMaxItems,
			DismissOnSelect: true,
		},
		Theme: ThemeConfig{
			Name:      DefaultThemeName,
			HotReload: true,
		},
		Menu: MenuConfig{
			File: "", // Falls back to MenuPath()
		},
		Mouse: MouseConfig{
			Enabled:   true,
			AllMotion: true,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// ConfigDir returns the dropmenu configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dropmenu")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// MenuPath returns the path to the default menu file.
func MenuPath() string {
	return filepath.Join(ConfigDir(), "menu.yaml")
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dropdown.MaxItems < 0 {
		return fmt.Errorf("max_items must not be negative, got %d", c.Dropdown.MaxItems)
	}
	if c.Theme.Name == "" {
		return errors.New("theme name must not be empty")
	}
	if c.Output.Format == "template" && c.Output.Template == "" {
		return errors.New("output format \"template\" requires output.template")
	}
	return nil
}

// MenuFile returns the configured menu file with ~ expanded,
// or the default menu path.
func (c *Config) MenuFile() string {
	if c.Menu.File == "" {
		return MenuPath()
	}
	return ExpandPath(c.Menu.File)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
