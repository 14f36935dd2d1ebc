package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// ErrCircularExtends is returned when a theme extends itself, directly or
// through a chain of other themes.
var ErrCircularExtends = errors.New("circular theme extends")

// ErrThemeNotFound is returned when neither a user nor a bundled theme matches.
var ErrThemeNotFound = errors.New("theme not found")

// Palette is the on-disk description of a theme.
type Palette struct {
	Extends   string           `toml:"extends"`
	Trigger   TriggerPalette   `toml:"trigger"`
	Indicator IndicatorPalette `toml:"indicator"`
	Panel     PanelPalette     `toml:"panel"`
	Item      ItemPalette      `toml:"item"`
}

// TriggerPalette colours the trigger button.
type TriggerPalette struct {
	Foreground       string `toml:"foreground"`        // Inactive label colour
	ActiveForeground string `toml:"active_foreground"` // Label colour when active
	Background       string `toml:"background"`
	HoverBackground  string `toml:"hover_background"`
	Width            int    `toml:"width"` // 0 = fit content
}

// IndicatorPalette colours the chevron after the label.
type IndicatorPalette struct {
	Foreground string `toml:"foreground"`
}

// PanelPalette colours the content panel.
type PanelPalette struct {
	Foreground       string `toml:"foreground"`
	Background       string `toml:"background"`
	Border           string `toml:"border"` // none, normal, rounded, thick, double, hidden
	BorderForeground string `toml:"border_foreground"`
	Width            int    `toml:"width"` // 0 = fit content
}

// ItemPalette colours menu items.
type ItemPalette struct {
	CursorForeground   string `toml:"cursor_foreground"`
	CursorBackground   string `toml:"cursor_background"`
	DisabledForeground string `toml:"disabled_foreground"`
}

// Theme is a resolved palette with metadata.
type Theme struct {
	Name      string    // Theme name (without .toml extension)
	Path      string    // Full path to the theme file (empty for bundled)
	Palette   Palette   // Resolved palette, with extends applied
	ModTime   time.Time // Last modification time
	IsDefault bool      // True if this is the embedded default theme
}

// Styles are the lipgloss styles a dropdown renders with.
type Styles struct {
	Trigger       lipgloss.Style
	TriggerActive lipgloss.Style
	TriggerHover  lipgloss.Style
	Icon          lipgloss.Style
	Label         lipgloss.Style
	Indicator     lipgloss.Style
	Panel         lipgloss.Style
	Item          lipgloss.Style
	ItemCursor    lipgloss.Style
	ItemDisabled  lipgloss.Style
}

// NewTheme loads a theme file from disk, resolving extends relative to
// the file's directory and then the bundled themes.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	palette, err := DecodePalette(data, filepath.Dir(path), map[string]bool{name: true})
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", name, err)
	}

	return &Theme{
		Name:    name,
		Path:    path,
		Palette: palette,
		ModTime: info.ModTime(),
	}, nil
}

// NewEmbeddedTheme creates a bundled theme by name.
func NewEmbeddedTheme(name string) (*Theme, error) {
	data, found := GetEmbeddedTheme(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	palette, err := DecodePalette(data, "", map[string]bool{name: true})
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundled theme %s: %w", name, err)
	}

	return &Theme{
		Name:      name,
		Palette:   palette,
		IsDefault: name == DefaultThemeName,
	}, nil
}

// NewDefaultTheme creates the embedded default theme.
func NewDefaultTheme() *Theme {
	t, err := NewEmbeddedTheme(DefaultThemeName)
	if err != nil {
		// The default theme is compiled in; fall back to an unstyled theme.
		return &Theme{Name: DefaultThemeName, IsDefault: true}
	}
	return t
}

// DecodePalette parses TOML theme data. A theme naming another in
// "extends" starts from that theme's palette and overrides the keys it sets.
// Bases are looked up in dir first, then in the bundled themes.
// The seen map prevents circular extends.
func DecodePalette(data []byte, dir string, seen map[string]bool) (Palette, error) {
	var head struct {
		Extends string `toml:"extends"`
	}
	if err := toml.Unmarshal(data, &head); err != nil {
		return Palette{}, err
	}

	var p Palette
	if head.Extends != "" {
		if seen[head.Extends] {
			return Palette{}, fmt.Errorf("%w: %s", ErrCircularExtends, head.Extends)
		}
		seen[head.Extends] = true

		baseData, baseDir, err := lookupBase(head.Extends, dir)
		if err != nil {
			return Palette{}, err
		}
		p, err = DecodePalette(baseData, baseDir, seen)
		if err != nil {
			return Palette{}, err
		}
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return Palette{}, err
	}
	p.Extends = head.Extends
	return p, nil
}

func lookupBase(name, dir string) ([]byte, string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".toml"))
		if err == nil {
			return data, dir, nil
		}
	}
	if data, found := GetEmbeddedTheme(name); found {
		return data, "", nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// Reload reloads the theme from disk.
// Returns true if the palette changed.
func (t *Theme) Reload() (bool, error) {
	if t.Path == "" {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}

	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	palette, err := DecodePalette(data, filepath.Dir(t.Path), map[string]bool{t.Name: true})
	if err != nil {
		return false, err
	}

	old := t.Palette
	t.Palette = palette
	t.ModTime = info.ModTime()

	return old != t.Palette, nil
}

// Styles builds the lipgloss styles for the theme.
func (t *Theme) Styles() Styles {
	var p Palette
	if t != nil {
		p = t.Palette
	}

	trigger := lipgloss.NewStyle().Padding(0, 2)
	trigger = withForeground(trigger, p.Trigger.Foreground)
	trigger = withBackground(trigger, p.Trigger.Background)
	if p.Trigger.Width > 0 {
		trigger = trigger.Width(p.Trigger.Width)
	}

	panel := lipgloss.NewStyle()
	panel = withForeground(panel, p.Panel.Foreground)
	panel = withBackground(panel, p.Panel.Background)
	if border, ok := borderByName(p.Panel.Border); ok {
		panel = panel.Border(border)
		if p.Panel.BorderForeground != "" {
			panel = panel.BorderForeground(lipgloss.Color(p.Panel.BorderForeground))
		}
	}
	if p.Panel.Width > 0 {
		panel = panel.Width(p.Panel.Width)
	}

	item := lipgloss.NewStyle().Padding(0, 1)
	item = withForeground(item, p.Panel.Foreground)
	item = withBackground(item, p.Panel.Background)

	cursor := withForeground(item, p.Item.CursorForeground)
	cursor = withBackground(cursor, p.Item.CursorBackground)
	if p.Item.CursorForeground == "" && p.Item.CursorBackground == "" {
		cursor = cursor.Reverse(true)
	}

	disabled := withForeground(item, p.Item.DisabledForeground)
	if p.Item.DisabledForeground == "" {
		disabled = disabled.Faint(true)
	}

	return Styles{
		Trigger:       trigger,
		TriggerActive: withForeground(trigger, p.Trigger.ActiveForeground).Bold(true),
		TriggerHover:  withBackground(trigger, p.Trigger.HoverBackground),
		Icon:          lipgloss.NewStyle().MarginRight(1),
		Label:         lipgloss.NewStyle(),
		Indicator:     withForeground(lipgloss.NewStyle().MarginLeft(1), p.Indicator.Foreground),
		Panel:         panel,
		Item:          item,
		ItemCursor:    cursor,
		ItemDisabled:  disabled,
	}
}

func withForeground(s lipgloss.Style, c string) lipgloss.Style {
	if c == "" {
		return s
	}
	return s.Foreground(lipgloss.Color(c))
}

func withBackground(s lipgloss.Style, c string) lipgloss.Style {
	if c == "" {
		return s
	}
	return s.Background(lipgloss.Color(c))
}

func borderByName(name string) (lipgloss.Border, bool) {
	switch name {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	case "hidden":
		return lipgloss.HiddenBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	ModTime   time.Time
	IsDefault bool
	IsBundled bool // True if this is a bundled/embedded theme
}

// ListAvailableThemes lists all available themes (bundled + user).
// A user theme sharing a bundled theme's name shadows it.
func ListAvailableThemes(themesDir string) ([]ThemeInfo, error) {
	byName := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		byName[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(".toml")]
		ti := ThemeInfo{
			Name:      name,
			Path:      filepath.Join(themesDir, entry.Name()),
			ModTime:   info.ModTime(),
			IsDefault: name == DefaultThemeName,
		}
		if i, ok := byName[name]; ok {
			themes[i] = ti
			continue
		}
		byName[name] = len(themes)
		themes = append(themes, ti)
	}

	return themes, nil
}
