package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dropmenu/internal/placement"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, placement.BottomStart, cfg.Dropdown.Placement)
	assert.Equal(t, 12, cfg.Dropdown.MaxItems)
	assert.True(t, cfg.Dropdown.DismissOnSelect)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.True(t, cfg.Theme.HotReload)
	assert.True(t, cfg.Mouse.Enabled)
	assert.Empty(t, cfg.Keys.Toggle)
	assert.Equal(t, "value", cfg.Output.Format)
	assert.False(t, cfg.Output.Copy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Dropdown, cfg.Dropdown)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[dropdown]
placement = "right-start"
max_items = 5
dismiss_on_select = false

[theme]
name = "catppuccin"
hot_reload = false

[menu]
file = "/tmp/menu.yaml"

[mouse]
enabled = false
all_motion = false

[keys]
toggle = ["o"]
dismiss = ["q", "esc"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, placement.RightStart, cfg.Dropdown.Placement)
	assert.Equal(t, 5, cfg.Dropdown.MaxItems)
	assert.False(t, cfg.Dropdown.DismissOnSelect)
	assert.Equal(t, "catppuccin", cfg.Theme.Name)
	assert.False(t, cfg.Theme.HotReload)
	assert.Equal(t, "/tmp/menu.yaml", cfg.MenuFile())
	assert.False(t, cfg.Mouse.Enabled)
	assert.Equal(t, []string{"o"}, cfg.Keys.Toggle)
	assert.Equal(t, []string{"q", "esc"}, cfg.Keys.Dismiss)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[theme]
name = "minimal"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal", cfg.Theme.Name)

	// Unchanged fields should have defaults
	assert.Equal(t, placement.BottomStart, cfg.Dropdown.Placement)
	assert.True(t, cfg.Theme.HotReload)
	assert.True(t, cfg.Mouse.AllMotion)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidPlacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[dropdown]
placement = "diagonal"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown placement")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative_max_items", "[dropdown]\nmax_items = -1\n"},
		{"empty_theme", "[theme]\nname = \"\"\n"},
		{"template_without_text", "[output]\nformat = \"template\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Dropdown.Placement = placement.LeftEnd
	cfg.Keys.Toggle = []string{"t"}

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, placement.LeftEnd, loaded.Dropdown.Placement)
	assert.Equal(t, []string{"t"}, loaded.Keys.Toggle)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/dropmenu/config.toml", ConfigPath())
	assert.Equal(t, "/custom/config/dropmenu/menu.yaml", MenuPath())
	assert.Equal(t, "/custom/config/dropmenu/themes", ThemesDir())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "dropmenu/config.toml")
}

func TestConfig_MenuFileDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/dropmenu/menu.yaml", DefaultConfig().MenuFile())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "menus/a.yaml"), ExpandPath("~/menus/a.yaml"))
	assert.Equal(t, "/abs/a.yaml", ExpandPath("/abs/a.yaml"))
	assert.Equal(t, "~", ExpandPath("~"))
}
