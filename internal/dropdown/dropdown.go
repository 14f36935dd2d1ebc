// Package dropdown provides a popover menu button for bubbletea programs.
//
// A Dropdown renders a trigger line and, while shown, a panel listing its
// items. The panel is positioned against the trigger by a
// placement.Positioner which exists only while the dropdown is shown.
// Clicking the trigger toggles the panel; pressing the mouse anywhere
// outside the trigger and panel dismisses it.
//
// The host program owns layout: it tells the dropdown where its trigger
// was drawn with SetOrigin, forwards messages to Update, and draws the
// panel over its frame with Overlay.
package dropdown

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/dropmenu/internal/overlay"
	"github.com/jmylchreest/dropmenu/internal/placement"
	"github.com/jmylchreest/dropmenu/internal/theme"
)

// Visibility is the shown/hidden state of a dropdown's panel.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

func (v Visibility) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

// Item is a single menu entry.
type Item struct {
	ID       string
	Label    string
	Value    string
	Disabled bool
}

// Handle is the reference a parent holds to collapse a dropdown from outside.
type Handle interface {
	// Blur hides the panel if it is shown. It is a no-op otherwise.
	Blur()
}

// SelectedMsg is emitted when an enabled item is chosen.
type SelectedMsg struct {
	DropdownID string
	Item       Item
}

// ScrollMsg tells a dropdown its host scrolled by (DX, DY) cells. The
// trigger moves with the content and a shown panel follows it.
type ScrollMsg struct {
	DX, DY int
}

// Options configures a Dropdown. Items is required; everything else has
// a usable zero value.
type Options struct {
	ID        string // Identifies the dropdown in SelectedMsg; defaults to Label
	Label     string
	Icon      string
	Items     []Item
	Active    bool
	Placement placement.Placement // Zero value is placement.Default

	// StyleFunc adjusts the trigger style after theme and state styling
	// are applied.
	StyleFunc func(lipgloss.Style) lipgloss.Style

	Theme           *theme.Theme
	KeyMap          *KeyMap
	MaxItems        int  // Rows shown before the panel scrolls (0 = all)
	DismissOnSelect bool // Hide the panel after an item is chosen

	Logger        *slog.Logger
	NewPositioner placement.Factory // Defaults to placement.New
}

// Dropdown is a trigger button with a popover item panel.
type Dropdown struct {
	id            string
	opts          Options
	styles        theme.Styles
	keys          KeyMap
	logger        *slog.Logger
	newPositioner placement.Factory

	visibility Visibility
	positioner placement.Positioner

	// Trigger element: mounted once the host has laid it out.
	origin  placement.Point
	mounted bool

	// Content element: mounted once the viewport size is known.
	viewport       placement.Size
	contentMounted bool

	focused bool
	hovered bool
	cursor  int
	offset  int

	// Rendered visual state, refreshed by apply.
	trigger     string
	triggerSize placement.Size
	panel       string
	panelSize   placement.Size
}

// New creates a hidden, unmounted dropdown.
func New(opts Options) *Dropdown {
	d := &Dropdown{
		id:            opts.ID,
		opts:          opts,
		keys:          DefaultKeyMap(),
		logger:        opts.Logger,
		newPositioner: opts.NewPositioner,
	}
	if d.id == "" {
		d.id = opts.Label
	}
	if opts.KeyMap != nil {
		d.keys = *opts.KeyMap
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.newPositioner == nil {
		d.newPositioner = placement.New
	}
	d.styles = opts.Theme.Styles()
	d.cursor = d.firstEnabled()
	d.apply()
	return d
}

// ID returns the dropdown's identifier.
func (d *Dropdown) ID() string { return d.id }

// Visibility returns the current panel state.
func (d *Dropdown) Visibility() Visibility { return d.visibility }

// Visible reports whether the panel is shown.
func (d *Dropdown) Visible() bool { return d.visibility == Shown }

// Positioner returns the live positioner, or nil while hidden.
func (d *Dropdown) Positioner() placement.Positioner { return d.positioner }

// Placement returns the configured placement preference.
func (d *Dropdown) Placement() placement.Placement { return d.opts.Placement }

// Items returns the menu items.
func (d *Dropdown) Items() []Item { return d.opts.Items }

// Cursor returns the index of the highlighted item, or -1 if none.
func (d *Dropdown) Cursor() int { return d.cursor }

// Handle returns a reference that can only collapse this dropdown.
func (d *Dropdown) Handle() Handle { return handle{d} }

type handle struct{ d *Dropdown }

func (h handle) Blur() { h.d.ForceDismiss() }

// Blur is equivalent to ForceDismiss.
func (d *Dropdown) Blur() { d.ForceDismiss() }

// Toggle flips the panel between shown and hidden. Every call flips
// exactly once. Showing is silently skipped while the trigger or content
// element is not mounted.
func (d *Dropdown) Toggle() {
	if d.visibility == Shown {
		d.ForceDismiss()
		return
	}
	d.show()
}

func (d *Dropdown) show() {
	if !d.mounted || !d.contentMounted {
		d.logger.Debug("dropdown show skipped, not mounted",
			"id", d.id, "trigger", d.mounted, "content", d.contentMounted)
		return
	}

	pos, err := d.newPositioner(d.TriggerBounds(), d.panelSize, d.viewport, d.opts.Placement)
	if err != nil {
		d.logger.Debug("dropdown show skipped, positioner failed", "id", d.id, "error", err)
		return
	}

	d.positioner = pos
	d.visibility = Shown
	d.cursor = d.firstEnabled()
	d.offset = 0
	d.apply()

	d.logger.Debug("dropdown shown",
		"id", d.id,
		"positioner", pos.ID(),
		"placement", pos.Placement().String(),
	)
}

// ForceDismiss hides the panel and destroys its positioner. It is a
// no-op when the panel is already hidden.
func (d *Dropdown) ForceDismiss() {
	if d.visibility == Hidden {
		return
	}

	id := d.positioner.ID()
	d.positioner.Destroy()
	d.positioner = nil
	d.visibility = Hidden
	d.apply()

	d.logger.Debug("dropdown hidden", "id", d.id, "positioner", id)
}

// SetOrigin mounts the trigger with its top-left cell at (x, y).
func (d *Dropdown) SetOrigin(x, y int) {
	d.origin = placement.Point{X: x, Y: y}
	d.mounted = true
	d.reposition()
}

// SetViewport records the terminal size and mounts the content element.
func (d *Dropdown) SetViewport(width, height int) {
	d.viewport = placement.Size{Width: width, Height: height}
	d.contentMounted = true
	d.reposition()
}

// Unmount detaches the trigger, hiding the panel first.
func (d *Dropdown) Unmount() {
	d.ForceDismiss()
	d.mounted = false
}

// Close releases any live positioner. The dropdown must be remounted
// before it can be shown again.
func (d *Dropdown) Close() {
	d.Unmount()
	d.contentMounted = false
}

// Mounted reports whether both trigger and content elements are mounted.
func (d *Dropdown) Mounted() bool {
	return d.mounted && d.contentMounted
}

// SetFocused gives or removes keyboard focus.
func (d *Dropdown) SetFocused(focused bool) {
	if d.focused == focused {
		return
	}
	d.focused = focused
	d.apply()
}

// Focused reports whether the dropdown has keyboard focus.
func (d *Dropdown) Focused() bool { return d.focused }

// SetActive switches the trigger between active and inactive styling.
func (d *Dropdown) SetActive(active bool) {
	d.opts.Active = active
	d.apply()
}

// SetLabel replaces the trigger label.
func (d *Dropdown) SetLabel(label string) {
	d.opts.Label = label
	d.apply()
}

// SetItems replaces the menu items.
func (d *Dropdown) SetItems(items []Item) {
	d.opts.Items = items
	if d.cursor >= len(items) || (d.cursor >= 0 && items[d.cursor].Disabled) {
		d.cursor = d.firstEnabled()
	}
	d.offset = 0
	d.apply()
}

// SetTheme restyles the dropdown.
func (d *Dropdown) SetTheme(t *theme.Theme) {
	d.opts.Theme = t
	d.styles = t.Styles()
	d.apply()
}

// TriggerBounds returns the cells covered by the trigger.
func (d *Dropdown) TriggerBounds() placement.Rect {
	return placement.Rect{Point: d.origin, Size: d.triggerSize}
}

// PanelBounds returns the cells covered by the panel, or an empty Rect
// while hidden.
func (d *Dropdown) PanelBounds() placement.Rect {
	if d.positioner == nil {
		return placement.Rect{}
	}
	return placement.Rect{Point: d.positioner.Position(), Size: d.panelSize}
}

// Contains reports whether (x, y) lies inside the dropdown's rendered
// region: the trigger, or the panel while shown.
func (d *Dropdown) Contains(x, y int) bool {
	return d.TriggerBounds().Contains(x, y) || d.PanelBounds().Contains(x, y)
}

// Update handles mouse, keyboard, resize and scroll messages.
func (d *Dropdown) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetViewport(msg.Width, msg.Height)

	case ScrollMsg:
		d.origin.X += msg.DX
		d.origin.Y += msg.DY
		d.reposition()

	case tea.MouseMsg:
		return d.handleMouse(msg)

	case tea.KeyMsg:
		if d.focused {
			return d.handleKey(msg)
		}
	}
	return nil
}

func (d *Dropdown) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionMotion {
		hovered := d.TriggerBounds().Contains(msg.X, msg.Y)
		if hovered != d.hovered {
			d.hovered = hovered
			d.apply()
		}
		return nil
	}

	if msg.Action != tea.MouseActionPress {
		return nil
	}

	if tea.MouseEvent(msg).IsWheel() {
		if d.PanelBounds().Contains(msg.X, msg.Y) {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				d.scroll(-1)
			case tea.MouseButtonWheelDown:
				d.scroll(1)
			}
		}
		return nil
	}

	// A clamped panel can be drawn over the trigger; the panel is on top.
	if d.PanelBounds().Contains(msg.X, msg.Y) {
		idx := d.itemAt(msg.Y)
		if idx < 0 || d.opts.Items[idx].Disabled {
			return nil
		}
		d.cursor = idx
		d.apply()
		if msg.Button == tea.MouseButtonLeft {
			return d.selectCursor()
		}
		return nil
	}

	if d.TriggerBounds().Contains(msg.X, msg.Y) {
		if msg.Button == tea.MouseButtonLeft {
			d.Toggle()
		}
		return nil
	}

	if d.visibility == Hidden {
		return nil
	}

	d.ForceDismiss()
	return nil
}

func (d *Dropdown) handleKey(msg tea.KeyMsg) tea.Cmd {
	shown := d.visibility == Shown

	switch {
	case shown && key.Matches(msg, d.keys.Select) && d.cursorSelectable():
		return d.selectCursor()
	case key.Matches(msg, d.keys.Toggle):
		d.Toggle()
	case key.Matches(msg, d.keys.Dismiss):
		d.ForceDismiss()
	case shown && key.Matches(msg, d.keys.Up):
		d.moveCursor(-1)
	case shown && key.Matches(msg, d.keys.Down):
		d.moveCursor(1)
	}
	return nil
}

func (d *Dropdown) selectCursor() tea.Cmd {
	if !d.cursorSelectable() {
		return nil
	}
	item := d.opts.Items[d.cursor]
	if d.opts.DismissOnSelect {
		d.ForceDismiss()
	}
	id := d.id
	return func() tea.Msg {
		return SelectedMsg{DropdownID: id, Item: item}
	}
}

func (d *Dropdown) cursorSelectable() bool {
	return d.cursor >= 0 && d.cursor < len(d.opts.Items) && !d.opts.Items[d.cursor].Disabled
}

func (d *Dropdown) firstEnabled() int {
	for i, it := range d.opts.Items {
		if !it.Disabled {
			return i
		}
	}
	return -1
}

// moveCursor moves the highlight by delta, skipping disabled items.
func (d *Dropdown) moveCursor(delta int) {
	for i := d.cursor + delta; i >= 0 && i < len(d.opts.Items); i += delta {
		if !d.opts.Items[i].Disabled {
			d.cursor = i
			d.ensureCursorVisible()
			d.apply()
			return
		}
	}
}

func (d *Dropdown) scroll(delta int) {
	window := d.window()
	limit := max(0, len(d.opts.Items)-window)
	offset := max(0, min(d.offset+delta, limit))
	if offset != d.offset {
		d.offset = offset
		d.apply()
	}
}

func (d *Dropdown) window() int {
	if d.opts.MaxItems > 0 && d.opts.MaxItems < len(d.opts.Items) {
		return d.opts.MaxItems
	}
	return len(d.opts.Items)
}

func (d *Dropdown) ensureCursorVisible() {
	window := d.window()
	if d.cursor < d.offset {
		d.offset = d.cursor
	} else if d.cursor >= d.offset+window {
		d.offset = d.cursor - window + 1
	}
}

// itemAt maps a screen row inside the panel to an item index.
func (d *Dropdown) itemAt(y int) int {
	row := y - d.PanelBounds().Y - d.panelInsetTop()
	if row < 0 || row >= d.window() {
		return -1
	}
	idx := d.offset + row
	if idx >= len(d.opts.Items) {
		return -1
	}
	return idx
}

func (d *Dropdown) reposition() {
	if d.positioner != nil {
		d.positioner.Update(d.TriggerBounds(), d.viewport)
	}
}

// View renders the trigger.
func (d *Dropdown) View() string {
	return d.trigger
}

// PanelView renders the item panel, or "" while hidden.
func (d *Dropdown) PanelView() string {
	if d.visibility == Hidden {
		return ""
	}
	return d.panel
}

// Overlay draws the panel over base at the positioner's coordinates.
// base is returned unchanged while hidden.
func (d *Dropdown) Overlay(base string) string {
	if d.positioner == nil {
		return base
	}
	pos := d.positioner.Position()
	return overlay.At(base, d.panel, pos.X, pos.Y)
}
