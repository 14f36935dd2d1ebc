package dropdown

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dropmenu/internal/placement"
	"github.com/jmylchreest/dropmenu/internal/theme"
)

// fakePositioner records lifecycle calls instead of computing layout.
type fakePositioner struct {
	id        string
	anchor    placement.Rect
	content   placement.Size
	updates   int
	destroyed bool
}

func (f *fakePositioner) ID() string { return f.id }
func (f *fakePositioner) Update(anchor placement.Rect, _ placement.Size) {
	if !f.destroyed {
		f.anchor = anchor
		f.updates++
	}
}
func (f *fakePositioner) Resize(content placement.Size) { f.content = content }
func (f *fakePositioner) Position() placement.Point {
	return placement.Point{X: f.anchor.X, Y: f.anchor.Bottom()}
}
func (f *fakePositioner) Placement() placement.Placement { return placement.Default }
func (f *fakePositioner) Destroy()                       { f.destroyed = true }
func (f *fakePositioner) Destroyed() bool                { return f.destroyed }

type fakeFactory struct {
	created []*fakePositioner
	err     error
}

func (f *fakeFactory) New(anchor placement.Rect, content, _ placement.Size, _ placement.Placement) (placement.Positioner, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := &fakePositioner{id: string(rune('a' + len(f.created))), anchor: anchor, content: content}
	f.created = append(f.created, p)
	return p, nil
}

func testItems() []Item {
	return []Item{
		{ID: "1", Label: "Open", Value: "open"},
		{ID: "2", Label: "Save", Value: "save", Disabled: true},
		{ID: "3", Label: "Quit", Value: "quit"},
	}
}

func newTestDropdown(t *testing.T, opts Options) *Dropdown {
	t.Helper()
	if opts.Label == "" {
		opts.Label = "File"
	}
	if opts.Items == nil {
		opts.Items = testItems()
	}
	d := New(opts)
	d.SetOrigin(0, 0)
	d.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.True(t, d.Mounted())
	return d
}

// itemRow returns the screen row of item i while the panel is shown.
func itemRow(d *Dropdown, i int) int {
	return d.PanelBounds().Y + d.panelInsetTop() + i - d.offset
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func assertInvariant(t *testing.T, d *Dropdown) {
	t.Helper()
	assert.Equal(t, d.Visible(), d.Positioner() != nil, "positioner must exist exactly while shown")
}

func TestNew_StartsHidden(t *testing.T) {
	d := New(Options{Label: "File", Items: testItems()})

	assert.Equal(t, Hidden, d.Visibility())
	assert.False(t, d.Visible())
	assert.Empty(t, d.PanelView())
	assert.Nil(t, d.Positioner())
	assert.Contains(t, d.View(), "File")
	assert.Equal(t, "File", d.ID())
	assert.Equal(t, 0, d.Cursor())
}

func TestToggle_ShowThenHide(t *testing.T) {
	f := &fakeFactory{}
	d := newTestDropdown(t, Options{NewPositioner: f.New})

	d.Toggle()
	assert.Equal(t, Shown, d.Visibility())
	assertInvariant(t, d)
	panel := ansi.Strip(d.PanelView())
	assert.Contains(t, panel, "Open")
	assert.Contains(t, panel, "Quit")
	require.Len(t, f.created, 1)

	d.Toggle()
	assert.Equal(t, Hidden, d.Visibility())
	assertInvariant(t, d)
	assert.Empty(t, d.PanelView())
	assert.True(t, f.created[0].destroyed)
}

func TestToggle_SkippedWhenTriggerNotMounted(t *testing.T) {
	f := &fakeFactory{}
	d := New(Options{Label: "File", Items: testItems(), NewPositioner: f.New})
	d.SetViewport(80, 24)

	d.Toggle()
	assert.False(t, d.Visible())
	assert.Empty(t, f.created)
	assertInvariant(t, d)
}

func TestToggle_SkippedWhenContentNotMounted(t *testing.T) {
	f := &fakeFactory{}
	d := New(Options{Label: "File", Items: testItems(), NewPositioner: f.New})
	d.SetOrigin(0, 0)

	d.Toggle()
	assert.False(t, d.Visible())
	assert.Empty(t, f.created)
}

func TestToggle_SkippedWhenPositionerFails(t *testing.T) {
	f := &fakeFactory{err: errors.New("no layout")}
	d := newTestDropdown(t, Options{NewPositioner: f.New})

	d.Toggle()
	assert.False(t, d.Visible())
	assertInvariant(t, d)
}

func TestToggle_RapidActivationsFlipOncePerCall(t *testing.T) {
	f := &fakeFactory{}
	d := newTestDropdown(t, Options{NewPositioner: f.New})

	for i := 1; i <= 5; i++ {
		d.Toggle()
		assert.Equal(t, i%2 == 1, d.Visible(), "after %d toggles", i)
		assertInvariant(t, d)
	}
	assert.Len(t, f.created, 3)
}

func TestMouse_ClickTriggerToggles(t *testing.T) {
	d := newTestDropdown(t, Options{})

	d.Update(click(1, 0))
	assert.True(t, d.Visible())

	d.Update(click(1, 0))
	assert.False(t, d.Visible())
}

func TestMouse_NonLeftButtonOnTriggerIgnored(t *testing.T) {
	d := newTestDropdown(t, Options{})

	d.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.False(t, d.Visible())
}

func TestMouse_OutsideClickDismisses(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.Toggle()
	require.True(t, d.Visible())

	d.Update(click(70, 20))
	assert.False(t, d.Visible())
	assertInvariant(t, d)
}

func TestMouse_OutsideClickWhileHiddenIsNoop(t *testing.T) {
	f := &fakeFactory{}
	d := newTestDropdown(t, Options{NewPositioner: f.New})

	d.Update(click(70, 20))
	assert.False(t, d.Visible())
	assert.Empty(t, f.created)
}

func TestMouse_ReleaseAndMotionDoNotDismiss(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.Toggle()

	d.Update(tea.MouseMsg{X: 70, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	d.Update(tea.MouseMsg{X: 70, Y: 20, Action: tea.MouseActionMotion})
	assert.True(t, d.Visible())
}

func TestMouse_ClickOnItemKeepsPanelOpen(t *testing.T) {
	d := newTestDropdown(t, Options{Theme: theme.NewDefaultTheme()})
	d.Toggle()
	require.True(t, d.Visible())

	cmd := d.Update(click(2, itemRow(d, 2)))
	assert.True(t, d.Visible(), "clicking an item must not count as an outside click")
	assert.Equal(t, 2, d.Cursor())

	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "File", msg.DropdownID)
	assert.Equal(t, "quit", msg.Item.Value)
}

func TestMouse_ClickOnPanelPaddingKeepsPanelOpen(t *testing.T) {
	d := newTestDropdown(t, Options{Theme: theme.NewDefaultTheme()})
	d.Toggle()

	// The row between the trigger and the panel border belongs to the panel.
	cmd := d.Update(click(2, d.PanelBounds().Y))
	assert.True(t, d.Visible())
	assert.Nil(t, cmd)
}

func TestMouse_ItemDrawnOverTriggerIsSelected(t *testing.T) {
	d := newTestDropdown(t, Options{})
	// Too short for the panel above or below the trigger, so it is
	// clamped on top of it.
	d.SetOrigin(0, 2)
	d.SetViewport(80, 5)
	d.Toggle()
	require.True(t, d.Visible())
	require.Equal(t, d.TriggerBounds().Y, itemRow(d, 0), "first item overlaps the trigger row")

	cmd := d.Update(click(1, itemRow(d, 0)))
	assert.True(t, d.Visible())
	assertInvariant(t, d)
	require.NotNil(t, cmd)
	assert.Equal(t, "open", cmd().(SelectedMsg).Item.Value)
}

func TestMouse_ClickOnDisabledItemSelectsNothing(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.Toggle()

	cmd := d.Update(click(1, itemRow(d, 1)))
	assert.Nil(t, cmd)
	assert.True(t, d.Visible())
}

func TestMouse_SelectionDismissesWhenConfigured(t *testing.T) {
	d := newTestDropdown(t, Options{DismissOnSelect: true})
	d.Toggle()

	cmd := d.Update(click(1, itemRow(d, 0)))
	require.NotNil(t, cmd)
	assert.False(t, d.Visible())
	assertInvariant(t, d)
	assert.Equal(t, "open", cmd().(SelectedMsg).Item.Value)
}

func TestMouse_WheelScrollsPanel(t *testing.T) {
	items := make([]Item, 10)
	for i := range items {
		items[i] = Item{Label: strings.Repeat("x", i+1)}
	}
	d := newTestDropdown(t, Options{Items: items, MaxItems: 3})
	d.Toggle()

	y := itemRow(d, 0)
	d.Update(tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, d.offset)
	assert.True(t, d.Visible())

	d.Update(tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	d.Update(tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, d.offset)

	// Wheel outside the panel is not an outside click.
	d.Update(tea.MouseMsg{X: 70, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.True(t, d.Visible())
}

func TestBlur_WhileHiddenIsNoop(t *testing.T) {
	f := &fakeFactory{}
	d := newTestDropdown(t, Options{NewPositioner: f.New})

	d.Handle().Blur()
	d.Blur()
	d.ForceDismiss()

	assert.False(t, d.Visible())
	assert.Empty(t, f.created)
	assertInvariant(t, d)
}

func TestForceDismiss_ReleasesPositioner(t *testing.T) {
	d := newTestDropdown(t, Options{})

	d.Toggle()
	first := d.Positioner()
	require.NotNil(t, first)

	d.Handle().Blur()
	assert.False(t, d.Visible())
	assert.True(t, first.Destroyed())
	assertInvariant(t, d)

	d.Toggle()
	second := d.Positioner()
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID(), second.ID(), "show must create a fresh positioner")
	assert.False(t, second.Destroyed())
}

func TestIndicator_FollowsPlacement(t *testing.T) {
	tests := []struct {
		name      string
		placement placement.Placement
		glyph     string
	}{
		{"default", placement.Default, IndicatorDefault},
		{"left", placement.Left, IndicatorRotated},
		{"right_start", placement.RightStart, IndicatorRotated},
		{"bottom_end", placement.BottomEnd, IndicatorRotated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Options{Label: "File", Items: testItems(), Placement: tt.placement})
			assert.Equal(t, tt.glyph, d.Indicator())
			assert.Contains(t, d.View(), tt.glyph)
		})
	}
}

func TestPanel_SpacingFollowsPlacement(t *testing.T) {
	d := New(Options{Label: "File", Items: testItems()})
	assert.Equal(t, 1, d.panelWrapper().GetPaddingTop())
	assert.Equal(t, 0, d.panelWrapper().GetPaddingLeft())

	d = New(Options{Label: "File", Items: testItems(), Placement: placement.Right})
	assert.Equal(t, 0, d.panelWrapper().GetPaddingTop())
	assert.Equal(t, 1, d.panelWrapper().GetPaddingLeft())
	assert.Equal(t, 1, d.panelWrapper().GetPaddingRight())
}

func TestKeys_FocusedNavigation(t *testing.T) {
	d := newTestDropdown(t, Options{})

	// Unfocused dropdowns ignore keys.
	d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, d.Visible())

	d.SetFocused(true)
	d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, d.Visible())
	assert.Equal(t, 0, d.Cursor())

	// Down skips the disabled item.
	d.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, d.Cursor())

	// Down at the end stays put.
	d.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, d.Cursor())

	d.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, d.Cursor())

	cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "open", cmd().(SelectedMsg).Item.Value)
	assert.True(t, d.Visible())

	d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, d.Visible())
	assertInvariant(t, d)

	// Esc while hidden stays hidden.
	d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, d.Visible())
}

func TestKeys_EnterClosesWhenNothingSelectable(t *testing.T) {
	d := newTestDropdown(t, Options{Items: []Item{{Label: "Nope", Disabled: true}}})
	d.SetFocused(true)

	d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, d.Visible())
	assert.Equal(t, -1, d.Cursor())

	d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, d.Visible())
}

func TestResize_RepositionsLivePanel(t *testing.T) {
	f := &fakeFactory{}
	d := newTestDropdown(t, Options{NewPositioner: f.New})
	d.Toggle()
	before := f.created[0].updates

	d.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Greater(t, f.created[0].updates, before)
}

func TestScroll_PanelFollowsTrigger(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.SetOrigin(5, 5)
	d.Toggle()
	before := d.PanelBounds()

	d.Update(ScrollMsg{DY: -2})
	assert.Equal(t, 3, d.TriggerBounds().Y)
	assert.Equal(t, before.Y-2, d.PanelBounds().Y)
}

func TestClose_DestroysPositioner(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.Toggle()
	p := d.Positioner()

	d.Close()
	assert.False(t, d.Visible())
	assert.True(t, p.Destroyed())
	assert.False(t, d.Mounted())

	d.Toggle()
	assert.False(t, d.Visible(), "closed dropdown must be remounted before showing")
}

func TestUnmount_HidesPanel(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.Toggle()

	d.Unmount()
	assert.False(t, d.Visible())
	assertInvariant(t, d)
}

func TestOverlay(t *testing.T) {
	d := newTestDropdown(t, Options{})
	base := strings.Repeat(strings.Repeat(".", 40)+"\n", 9) + strings.Repeat(".", 40)

	assert.Equal(t, base, d.Overlay(base))

	d.Toggle()
	out := strings.Split(ansi.Strip(d.Overlay(base)), "\n")
	assert.Contains(t, out[itemRow(d, 0)], "Open")
	assert.Contains(t, out[itemRow(d, 2)], "Quit")
	assert.Equal(t, strings.Repeat(".", 40), out[9])
}

func TestTriggerStyle(t *testing.T) {
	d := New(Options{Label: "File", Items: testItems()})
	assert.False(t, d.triggerStyle().GetBold())

	d.SetActive(true)
	assert.True(t, d.triggerStyle().GetBold())

	d.SetFocused(true)
	assert.True(t, d.triggerStyle().GetUnderline())

	d = New(Options{
		Label:     "File",
		Items:     testItems(),
		StyleFunc: func(s lipgloss.Style) lipgloss.Style { return s.Italic(true) },
	})
	assert.True(t, d.triggerStyle().GetItalic())
}

func TestTrigger_WithIconAndFixedWidth(t *testing.T) {
	d := New(Options{Label: "A very long label that will not fit", Icon: "#", Items: testItems(), Theme: theme.NewDefaultTheme()})

	view := ansi.Strip(d.View())
	assert.Equal(t, 36, lipgloss.Width(d.View()))
	assert.Equal(t, 1, lipgloss.Height(d.View()))
	assert.Contains(t, view, "#")
	assert.Contains(t, view, "…")
	assert.Contains(t, view, IndicatorDefault)
}

func TestHover_TracksTrigger(t *testing.T) {
	d := newTestDropdown(t, Options{})

	d.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion})
	assert.True(t, d.hovered)

	d.Update(tea.MouseMsg{X: 60, Y: 10, Action: tea.MouseActionMotion})
	assert.False(t, d.hovered)
}

func TestSetItems_ResetsCursor(t *testing.T) {
	d := newTestDropdown(t, Options{})
	d.SetFocused(true)
	d.Toggle()
	d.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, d.Cursor())

	d.SetItems([]Item{{Label: "Only"}})
	assert.Equal(t, 0, d.Cursor())
	assert.Contains(t, ansi.Strip(d.PanelView()), "Only")
}

func TestSetTheme_ResizesLivePanel(t *testing.T) {
	f := &fakeFactory{}
	d := newTestDropdown(t, Options{NewPositioner: f.New})
	d.Toggle()
	plain := f.created[0].content

	d.SetTheme(theme.NewDefaultTheme())
	assert.NotEqual(t, plain, f.created[0].content)
	assert.Equal(t, d.PanelBounds().Size, f.created[0].content)
}
