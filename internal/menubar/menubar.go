// Package menubar lays out a row of dropdowns and keeps at most one open.
package menubar

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/dropmenu/internal/dropdown"
	"github.com/jmylchreest/dropmenu/internal/placement"
	"github.com/jmylchreest/dropmenu/internal/theme"
)

// KeyMap defines the bar's focus keys.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next menu"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/shift+tab", "previous menu"),
		),
	}
}

// Options configures a Bar.
type Options struct {
	Origin placement.Point // Top-left cell of the first trigger
	Gap    int             // Columns between triggers
	KeyMap *KeyMap
	Logger *slog.Logger
}

// Bar is a horizontal row of dropdowns.
type Bar struct {
	dropdowns []*dropdown.Dropdown
	origin    placement.Point
	gap       int
	keys      KeyMap
	focus     int
	logger    *slog.Logger
}

// New creates a bar and mounts every dropdown's trigger. The first
// dropdown receives keyboard focus.
func New(dropdowns []*dropdown.Dropdown, opts Options) *Bar {
	b := &Bar{
		dropdowns: dropdowns,
		origin:    opts.Origin,
		gap:       opts.Gap,
		keys:      DefaultKeyMap(),
		logger:    opts.Logger,
	}
	if opts.KeyMap != nil {
		b.keys = *opts.KeyMap
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if len(dropdowns) > 0 {
		dropdowns[0].SetFocused(true)
	}
	b.layout()
	return b
}

// Dropdowns returns the bar's dropdowns in display order.
func (b *Bar) Dropdowns() []*dropdown.Dropdown { return b.dropdowns }

// Focused returns the index of the focused dropdown.
func (b *Bar) Focused() int { return b.focus }

// Open returns the dropdown whose panel is shown, or nil.
func (b *Bar) Open() *dropdown.Dropdown {
	for _, d := range b.dropdowns {
		if d.Visible() {
			return d
		}
	}
	return nil
}

// BlurAll collapses every dropdown.
func (b *Bar) BlurAll() {
	for _, d := range b.dropdowns {
		d.Handle().Blur()
	}
}

// SetTheme restyles every dropdown and lays the row out again, since
// trigger widths may change.
func (b *Bar) SetTheme(t *theme.Theme) {
	for _, d := range b.dropdowns {
		d.SetTheme(t)
	}
	b.layout()
}

// Close releases every dropdown's resources.
func (b *Bar) Close() {
	for _, d := range b.dropdowns {
		d.Close()
	}
}

// layout mounts each trigger at its position in the row.
func (b *Bar) layout() {
	x := b.origin.X
	for _, d := range b.dropdowns {
		d.SetOrigin(x, b.origin.Y)
		x += d.TriggerBounds().Width + b.gap
	}
}

// Update routes a message to the dropdowns and collapses any dropdown
// whose sibling opened as a result.
func (b *Bar) Update(msg tea.Msg) tea.Cmd {
	if len(b.dropdowns) == 0 {
		return nil
	}

	wasOpen := b.Open()
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Next):
			b.moveFocus(1, wasOpen != nil)
			return nil
		case key.Matches(msg, b.keys.Prev):
			b.moveFocus(-1, wasOpen != nil)
			return nil
		}
		cmds = append(cmds, b.dropdowns[b.focus].Update(msg))

	case tea.MouseMsg:
		// An open panel sits above the row; clicks on it belong to it alone.
		if wasOpen != nil && msg.Action == tea.MouseActionPress && wasOpen.PanelBounds().Contains(msg.X, msg.Y) {
			cmds = append(cmds, wasOpen.Update(msg))
			break
		}
		for _, d := range b.dropdowns {
			cmds = append(cmds, d.Update(msg))
		}

	case dropdown.ScrollMsg:
		// The row scrolls with the host content; layout places triggers
		// from the shifted origin.
		b.origin.X += msg.DX
		b.origin.Y += msg.DY
		for _, d := range b.dropdowns {
			cmds = append(cmds, d.Update(msg))
		}

	default:
		for _, d := range b.dropdowns {
			cmds = append(cmds, d.Update(msg))
		}
	}

	b.collapseSiblings(wasOpen)
	b.layout()
	return tea.Batch(cmds...)
}

// collapseSiblings keeps only the most recently opened dropdown shown.
func (b *Bar) collapseSiblings(wasOpen *dropdown.Dropdown) {
	for i, d := range b.dropdowns {
		if !d.Visible() || d == wasOpen {
			continue
		}
		for _, other := range b.dropdowns {
			if other != d {
				other.Handle().Blur()
			}
		}
		b.setFocus(i)
		b.logger.Debug("menu opened", "id", d.ID())
		return
	}
}

func (b *Bar) moveFocus(delta int, reopen bool) {
	n := len(b.dropdowns)
	next := ((b.focus+delta)%n + n) % n
	b.BlurAll()
	b.setFocus(next)
	if reopen {
		b.dropdowns[next].Toggle()
	}
}

func (b *Bar) setFocus(i int) {
	if i == b.focus {
		return
	}
	b.dropdowns[b.focus].SetFocused(false)
	b.focus = i
	b.dropdowns[i].SetFocused(true)
}

// View renders the row of triggers.
func (b *Bar) View() string {
	parts := make([]string, 0, 2*len(b.dropdowns))
	for i, d := range b.dropdowns {
		if i > 0 && b.gap > 0 {
			parts = append(parts, strings.Repeat(" ", b.gap))
		}
		parts = append(parts, d.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Overlay draws the open panel, if any, over base.
func (b *Bar) Overlay(base string) string {
	if d := b.Open(); d != nil {
		return d.Overlay(base)
	}
	return base
}
