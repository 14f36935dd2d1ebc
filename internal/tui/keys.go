package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jmylchreest/dropmenu/internal/config"
	"github.com/jmylchreest/dropmenu/internal/dropdown"
	"github.com/jmylchreest/dropmenu/internal/menubar"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	Dropdown dropdown.KeyMap
	Bar      menubar.KeyMap

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dropdown.Toggle, k.Bar.Next, k.Dropdown.Dismiss, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dropdown.Toggle, k.Dropdown.Select, k.Dropdown.Dismiss},
		{k.Dropdown.Up, k.Dropdown.Down},
		{k.Bar.Next, k.Bar.Prev},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dropdown: dropdown.DefaultKeyMap(),
		Bar:      menubar.DefaultKeyMap(),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// KeyMapFromConfig returns the default bindings with any keys set in
// cfg replacing the defaults.
func KeyMapFromConfig(cfg config.KeysConfig) KeyMap {
	k := DefaultKeyMap()
	k.Dropdown.Toggle = bindingOr(k.Dropdown.Toggle, cfg.Toggle)
	k.Dropdown.Dismiss = bindingOr(k.Dropdown.Dismiss, cfg.Dismiss)
	k.Dropdown.Up = bindingOr(k.Dropdown.Up, cfg.Up)
	k.Dropdown.Down = bindingOr(k.Dropdown.Down, cfg.Down)
	k.Dropdown.Select = bindingOr(k.Dropdown.Select, cfg.Select)
	k.Bar.Next = bindingOr(k.Bar.Next, cfg.Next)
	k.Bar.Prev = bindingOr(k.Bar.Prev, cfg.Prev)
	k.Quit = bindingOr(k.Quit, cfg.Quit)
	return k
}

// bindingOr rebinds b to keys, keeping its help description. An empty
// list leaves b unchanged.
func bindingOr(b key.Binding, keys []string) key.Binding {
	if len(keys) == 0 {
		return b
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), b.Help().Desc),
	)
}
