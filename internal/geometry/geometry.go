// Package geometry holds the small amount of plane geometry the menu engine
// needs: pointer positions, surface rectangles and the line tests used to
// predict whether the pointer is travelling into a submenu.
package geometry

import (
	"fmt"

	"github.com/deeean/go-vector/vector2"
)

// Point is a pointer position. In the terminal renderer one unit is one cell.
type Point = vector2.Vector2

// Pt builds a Point from its coordinates.
func Pt(x, y float64) Point {
	return *vector2.New(x, y)
}

// Rect is an axis aligned box. Right and Bottom are exclusive for hit tests.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectXYWH builds a Rect from an origin and a size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Translate shifts r by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Area returns the surface of r, zero for empty rects.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

func (r Rect) String() string {
	return fmt.Sprintf("{left:%g top:%g right:%g bottom:%g}", r.Left, r.Top, r.Right, r.Bottom)
}
