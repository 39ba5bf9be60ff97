package overlay

import (
	"github.com/atomicstack/menukit/internal/geometry"
)

// HorizontalConnection is a horizontal anchor on a box. Start and End follow
// the writing direction.
type HorizontalConnection string

// VerticalConnection is a vertical anchor on a box.
type VerticalConnection string

const (
	Start   HorizontalConnection = "start"
	End     HorizontalConnection = "end"
	CenterX HorizontalConnection = "center"

	Top     VerticalConnection = "top"
	Bottom  VerticalConnection = "bottom"
	CenterY VerticalConnection = "center"
)

// ConnectedPosition pairs an anchor on the origin with an anchor on the
// overlay; the overlay is placed so both anchors coincide, then offset.
// OffsetX is mirrored under rtl.
type ConnectedPosition struct {
	OriginX  HorizontalConnection
	OriginY  VerticalConnection
	OverlayX HorizontalConnection
	OverlayY VerticalConnection
	OffsetX  float64
	OffsetY  float64
}

// ConnectedStrategy positions an overlay next to an origin box, trying each
// position in order and keeping the first that fits in the viewport.
type ConnectedStrategy struct {
	origin    geometry.Rect
	positions []ConnectedPosition
	dir       geometry.Direction
	locked    bool
	last      *ConnectedPosition
}

// FlexibleConnectedTo returns a strategy anchored to origin. A point origin is
// a zero-sized rect.
func FlexibleConnectedTo(origin geometry.Rect) *ConnectedStrategy {
	return &ConnectedStrategy{origin: origin, dir: geometry.LTR}
}

// WithPositions sets the candidate positions in order of preference.
func (s *ConnectedStrategy) WithPositions(positions []ConnectedPosition) *ConnectedStrategy {
	s.positions = append([]ConnectedPosition(nil), positions...)
	s.last = nil
	return s
}

// WithLockedPosition keeps the position chosen first on later updates.
func (s *ConnectedStrategy) WithLockedPosition() *ConnectedStrategy {
	s.locked = true
	return s
}

// WithDirection sets the writing direction used to resolve Start and End.
func (s *ConnectedStrategy) WithDirection(dir geometry.Direction) *ConnectedStrategy {
	s.dir = dir
	return s
}

// SetOrigin moves the origin. A locked position is released so the overlay
// can pick the best position around the new origin.
func (s *ConnectedStrategy) SetOrigin(origin geometry.Rect) *ConnectedStrategy {
	s.origin = origin
	s.last = nil
	return s
}

// Origin returns the current origin box.
func (s *ConnectedStrategy) Origin() geometry.Rect { return s.origin }

// Positions returns the configured positions.
func (s *ConnectedStrategy) Positions() []ConnectedPosition {
	return append([]ConnectedPosition(nil), s.positions...)
}

// LastPosition returns the position used by the latest Apply.
func (s *ConnectedStrategy) LastPosition() (ConnectedPosition, bool) {
	if s.last == nil {
		return ConnectedPosition{}, false
	}
	return *s.last, true
}

// Apply returns the overlay box for an overlay of the given size.
func (s *ConnectedStrategy) Apply(width, height float64, viewport geometry.Rect) geometry.Rect {
	if len(s.positions) == 0 {
		return geometry.RectXYWH(s.origin.Left, s.origin.Bottom, width, height)
	}
	if s.locked && s.last != nil {
		return push(s.place(*s.last, width, height), viewport)
	}
	bestArea := -1.0
	var best ConnectedPosition
	for _, pos := range s.positions {
		r := s.place(pos, width, height)
		if viewport.Empty() || fits(r, viewport) {
			p := pos
			s.last = &p
			return r
		}
		if a := r.Intersect(viewport).Area(); a > bestArea {
			bestArea = a
			best = pos
		}
	}
	s.last = &best
	return push(s.place(best, width, height), viewport)
}

func (s *ConnectedStrategy) place(pos ConnectedPosition, width, height float64) geometry.Rect {
	ox := s.resolveX(pos.OriginX, s.origin.Left, s.origin.Right)
	oy := resolveY(pos.OriginY, s.origin.Top, s.origin.Bottom)
	var left float64
	switch s.logical(pos.OverlayX) {
	case "left":
		left = ox
	case "right":
		left = ox - width
	default:
		left = ox - width/2
	}
	var top float64
	switch pos.OverlayY {
	case Top:
		top = oy
	case Bottom:
		top = oy - height
	default:
		top = oy - height/2
	}
	offsetX := pos.OffsetX
	if s.dir == geometry.RTL {
		offsetX = -offsetX
	}
	return geometry.RectXYWH(left+offsetX, top+pos.OffsetY, width, height)
}

func (s *ConnectedStrategy) logical(h HorizontalConnection) string {
	switch h {
	case Start:
		if s.dir == geometry.RTL {
			return "right"
		}
		return "left"
	case End:
		if s.dir == geometry.RTL {
			return "left"
		}
		return "right"
	}
	return "center"
}

func (s *ConnectedStrategy) resolveX(h HorizontalConnection, left, right float64) float64 {
	switch s.logical(h) {
	case "left":
		return left
	case "right":
		return right
	}
	return (left + right) / 2
}

func resolveY(v VerticalConnection, top, bottom float64) float64 {
	switch v {
	case Top:
		return top
	case Bottom:
		return bottom
	}
	return (top + bottom) / 2
}

func fits(r, viewport geometry.Rect) bool {
	return r.Left >= viewport.Left && r.Top >= viewport.Top && r.Right <= viewport.Right && r.Bottom <= viewport.Bottom
}

// push moves r back inside viewport where possible.
func push(r, viewport geometry.Rect) geometry.Rect {
	if viewport.Empty() {
		return r
	}
	dx, dy := 0.0, 0.0
	if r.Right > viewport.Right {
		dx = viewport.Right - r.Right
	}
	if r.Left+dx < viewport.Left {
		dx = viewport.Left - r.Left
	}
	if r.Bottom > viewport.Bottom {
		dy = viewport.Bottom - r.Bottom
	}
	if r.Top+dy < viewport.Top {
		dy = viewport.Top - r.Top
	}
	return r.Translate(dx, dy)
}
