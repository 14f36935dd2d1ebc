// Package placement computes where a popover sits relative to its anchor.
//
// Placement keywords follow the popper vocabulary ("bottom-start", "left",
// "auto-end", ...). A Positioner holds the computed coordinates for one
// popover and recomputes them whenever the anchor moves or the viewport
// is resized, until it is destroyed.
package placement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlacement is returned when parsing an unrecognised keyword.
var ErrUnknownPlacement = errors.New("unknown placement")

// Side is the edge of the anchor the popover is attached to.
type Side int

// The zero Side is SideBottom so that the zero Placement is Default.
const (
	SideBottom Side = iota
	SideTop
	SideLeft
	SideRight
	SideAuto
)

// Align is the alignment of the popover along the anchor's edge.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Placement is a directional hint for laying out a popover.
type Placement struct {
	Side  Side
	Align Align
}

// Predefined placements.
var (
	Auto        = Placement{SideAuto, AlignCenter}
	AutoStart   = Placement{SideAuto, AlignStart}
	AutoEnd     = Placement{SideAuto, AlignEnd}
	Top         = Placement{SideTop, AlignCenter}
	TopStart    = Placement{SideTop, AlignStart}
	TopEnd      = Placement{SideTop, AlignEnd}
	Bottom      = Placement{SideBottom, AlignCenter}
	BottomStart = Placement{SideBottom, AlignStart}
	BottomEnd   = Placement{SideBottom, AlignEnd}
	Right       = Placement{SideRight, AlignCenter}
	RightStart  = Placement{SideRight, AlignStart}
	RightEnd    = Placement{SideRight, AlignEnd}
	Left        = Placement{SideLeft, AlignCenter}
	LeftStart   = Placement{SideLeft, AlignStart}
	LeftEnd     = Placement{SideLeft, AlignEnd}
)

// Default is the placement used when none is configured. It is also the
// zero value of Placement.
var Default = BottomStart

var sideNames = map[Side]string{
	SideAuto:   "auto",
	SideTop:    "top",
	SideBottom: "bottom",
	SideLeft:   "left",
	SideRight:  "right",
}

var alignNames = map[Align]string{
	AlignStart: "start",
	AlignEnd:   "end",
}

// All returns every valid placement in a stable order.
func All() []Placement {
	return []Placement{
		Auto, AutoStart, AutoEnd,
		Top, TopStart, TopEnd,
		Bottom, BottomStart, BottomEnd,
		Right, RightStart, RightEnd,
		Left, LeftStart, LeftEnd,
	}
}

// Parse converts a keyword such as "bottom-start" into a Placement.
// An empty string yields Default.
func Parse(s string) (Placement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	for _, p := range All() {
		if p.String() == s {
			return p, nil
		}
	}
	return Placement{}, fmt.Errorf("%w: %q", ErrUnknownPlacement, s)
}

// String returns the popper keyword for the placement.
func (p Placement) String() string {
	side, ok := sideNames[p.Side]
	if !ok {
		return "invalid"
	}
	if align, ok := alignNames[p.Align]; ok {
		return side + "-" + align
	}
	return side
}

// IsDefault reports whether p equals Default.
func (p Placement) IsDefault() bool {
	return p == Default
}

// Opposite returns the placement mirrored onto the opposite side.
func (p Placement) Opposite() Placement {
	switch p.Side {
	case SideTop:
		p.Side = SideBottom
	case SideBottom:
		p.Side = SideTop
	case SideLeft:
		p.Side = SideRight
	case SideRight:
		p.Side = SideLeft
	}
	return p
}

// Vertical reports whether the popover opens above or below the anchor.
func (p Placement) Vertical() bool {
	return p.Side == SideTop || p.Side == SideBottom
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
