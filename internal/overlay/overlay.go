// Package overlay composites a rendered popover onto a rendered frame.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// At draws top over base with its top-left cell at (x, y). Lines are
// added to base when top extends below it; parts of top left of column 0
// or above row 0 are clipped. ANSI styling on both sides is preserved.
func At(base, top string, x, y int) string {
	if top == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	topWidth := maxLineWidth(topLines)

	for i, line := range topLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}

		line = padRight(line, topWidth)
		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}

		target := baseLines[row]
		left := padRight(ansi.Truncate(target, col, ""), col)
		right := ansi.TruncateLeft(target, col+ansi.StringWidth(line), "")
		if ansi.StringWidth(target) <= col+ansi.StringWidth(line) {
			right = ""
		}
		baseLines[row] = left + line + right
	}

	return strings.Join(baseLines, "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
