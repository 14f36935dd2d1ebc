package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/dropmenu/internal/placement"
)

// Indicator glyphs. The rotated glyph is the default chevron turned a
// quarter counter-clockwise, used for any non-default placement.
const (
	IndicatorDefault = "▾"
	IndicatorRotated = "▸"
)

// apply re-renders the trigger and panel from the current state. It runs
// after every state change.
func (d *Dropdown) apply() {
	d.trigger = d.renderTrigger()
	d.triggerSize = placement.Size{
		Width:  lipgloss.Width(d.trigger),
		Height: lipgloss.Height(d.trigger),
	}

	d.panel = d.renderPanel()
	d.panelSize = placement.Size{
		Width:  lipgloss.Width(d.panel),
		Height: lipgloss.Height(d.panel),
	}

	if d.positioner != nil {
		d.positioner.Update(d.TriggerBounds(), d.viewport)
		d.positioner.Resize(d.panelSize)
	}
}

// Indicator returns the chevron glyph for the configured placement.
func (d *Dropdown) Indicator() string {
	if d.opts.Placement.IsDefault() {
		return IndicatorDefault
	}
	return IndicatorRotated
}

func (d *Dropdown) triggerStyle() lipgloss.Style {
	s := d.styles.Trigger
	if d.hovered {
		s = d.styles.TriggerHover
	}
	if d.opts.Active {
		s = s.Foreground(d.styles.TriggerActive.GetForeground()).Bold(true)
	}
	if d.focused {
		s = s.Underline(true)
	}
	if d.opts.StyleFunc != nil {
		s = d.opts.StyleFunc(s)
	}
	return s
}

func (d *Dropdown) renderTrigger() string {
	style := d.triggerStyle()

	var icon string
	if d.opts.Icon != "" {
		icon = d.styles.Icon.Render(d.opts.Icon)
	}
	indicator := d.styles.Indicator.Render(d.Indicator())

	label := d.opts.Label
	if inner := style.GetWidth() - style.GetHorizontalPadding(); inner > 0 {
		// The label takes whatever the icon and indicator leave.
		room := max(0, inner-lipgloss.Width(icon)-lipgloss.Width(indicator))
		label = ansi.Truncate(label, room, "…")
		label = d.styles.Label.Width(room).Render(label)
	} else {
		label = d.styles.Label.Render(label)
	}

	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, icon, label, indicator))
}

// panelWrapper spaces the panel away from the trigger: one row above it
// for the default placement, one column either side otherwise.
func (d *Dropdown) panelWrapper() lipgloss.Style {
	if d.opts.Placement.IsDefault() {
		return lipgloss.NewStyle().PaddingTop(1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

func (d *Dropdown) panelInsetTop() int {
	return d.panelWrapper().GetPaddingTop() + d.styles.Panel.GetBorderTopSize() + d.styles.Panel.GetPaddingTop()
}

func (d *Dropdown) renderPanel() string {
	items := d.opts.Items
	window := d.window()
	end := min(len(items), d.offset+window)

	width := d.styles.Panel.GetWidth() - d.styles.Panel.GetHorizontalPadding()
	if width <= 0 {
		for _, it := range items {
			width = max(width, lipgloss.Width(it.Label)+d.styles.Item.GetHorizontalPadding())
		}
	}

	rows := make([]string, 0, end-d.offset)
	for i := d.offset; i < end; i++ {
		it := items[i]
		style := d.styles.Item
		switch {
		case it.Disabled:
			style = d.styles.ItemDisabled
		case i == d.cursor && d.visibility == Shown:
			style = d.styles.ItemCursor
		}
		label := ansi.Truncate(it.Label, max(0, width-style.GetHorizontalPadding()), "…")
		rows = append(rows, style.Width(width).Render(label))
	}

	return d.panelWrapper().Render(d.styles.Panel.Render(strings.Join(rows, "\n")))
}
