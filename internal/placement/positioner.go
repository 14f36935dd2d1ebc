package placement

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Positioner keeps a popover's coordinates in sync with its anchor.
// A Positioner is live from creation until Destroy; once destroyed it
// ignores further updates and a new one must be created.
type Positioner interface {
	// ID uniquely identifies this positioner instance.
	ID() string
	// Update recomputes the position for a moved anchor or resized viewport.
	Update(anchor Rect, viewport Size)
	// Resize recomputes the position for new popover dimensions.
	Resize(content Size)
	// Position returns the popover's top-left cell.
	Position() Point
	// Placement returns the placement actually used, after any flip.
	Placement() Placement
	Destroy()
	Destroyed() bool
}

// Factory creates a Positioner for a popover of the given size anchored
// to anchor inside viewport.
type Factory func(anchor Rect, content Size, viewport Size, preferred Placement) (Positioner, error)

// New is the default Factory.
func New(anchor Rect, content Size, viewport Size, preferred Placement) (Positioner, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate positioner id: %w", err)
	}

	p := &positioner{
		id:        id.String(),
		anchor:    anchor,
		content:   content,
		viewport:  viewport,
		preferred: preferred,
	}
	p.compute()
	return p, nil
}

type positioner struct {
	id        string
	anchor    Rect
	content   Size
	viewport  Size
	preferred Placement
	effective Placement
	pos       Point
	destroyed bool
}

func (p *positioner) ID() string { return p.id }

func (p *positioner) Update(anchor Rect, viewport Size) {
	if p.destroyed {
		return
	}
	p.anchor = anchor
	p.viewport = viewport
	p.compute()
}

func (p *positioner) Resize(content Size) {
	if p.destroyed {
		return
	}
	p.content = content
	p.compute()
}

func (p *positioner) Position() Point { return p.pos }

func (p *positioner) Placement() Placement { return p.effective }

func (p *positioner) Destroy() { p.destroyed = true }

func (p *positioner) Destroyed() bool { return p.destroyed }

func (p *positioner) compute() {
	pl := p.preferred
	if pl.Side == SideAuto {
		pl.Side = p.roomiest()
	}
	if !p.viewport.Empty() && !p.fits(pl) && p.fits(pl.Opposite()) {
		pl = pl.Opposite()
	}
	p.effective = pl
	p.pos = Compute(p.anchor, p.content, pl)

	if p.viewport.Empty() {
		return
	}
	p.pos.X = clamp(p.pos.X, 0, p.viewport.Width-p.content.Width)
	p.pos.Y = clamp(p.pos.Y, 0, p.viewport.Height-p.content.Height)
}

// fits reports whether the popover fits on pl's side without leaving the viewport.
func (p *positioner) fits(pl Placement) bool {
	switch pl.Side {
	case SideTop:
		return p.anchor.Y-p.content.Height >= 0
	case SideBottom:
		return p.anchor.Bottom()+p.content.Height <= p.viewport.Height
	case SideLeft:
		return p.anchor.X-p.content.Width >= 0
	case SideRight:
		return p.anchor.Right()+p.content.Width <= p.viewport.Width
	}
	return true
}

// roomiest picks the side with the most free space. Ties go to bottom,
// then top, right and left.
func (p *positioner) roomiest() Side {
	best, room := SideBottom, p.viewport.Height-p.anchor.Bottom()
	for _, c := range []struct {
		side Side
		room int
	}{
		{SideTop, p.anchor.Y},
		{SideRight, p.viewport.Width - p.anchor.Right()},
		{SideLeft, p.anchor.X},
	} {
		if c.room > room {
			best, room = c.side, c.room
		}
	}
	return best
}

// Compute returns the unclamped top-left cell for a popover of size
// content placed against anchor. SideAuto is treated as SideBottom.
func Compute(anchor Rect, content Size, pl Placement) Point {
	var pt Point

	switch pl.Side {
	case SideTop:
		pt.Y = anchor.Y - content.Height
	case SideLeft:
		pt.X = anchor.X - content.Width
	case SideRight:
		pt.X = anchor.Right()
	default:
		pt.Y = anchor.Bottom()
	}

	if pl.Side == SideLeft || pl.Side == SideRight {
		switch pl.Align {
		case AlignStart:
			pt.Y = anchor.Y
		case AlignEnd:
			pt.Y = anchor.Bottom() - content.Height
		default:
			pt.Y = anchor.Y + (anchor.Height-content.Height)/2
		}
		return pt
	}

	switch pl.Align {
	case AlignStart:
		pt.X = anchor.X
	case AlignEnd:
		pt.X = anchor.Right() - content.Width
	default:
		pt.X = anchor.X + (anchor.Width-content.Width)/2
	}
	return pt
}
