package geometry

// Slope returns the slope of the line through a and b. Vertical lines yield
// ±Inf and coincident points NaN; both are handled by LineEntersRect.
func Slope(a, b Point) float64 {
	return (b.Y - a.Y) / (b.X - a.X)
}

// YIntercept returns b in y = m*x + b for the line through p with slope m.
func YIntercept(p Point, m float64) float64 {
	return p.Y - m*p.X
}

// LineEntersRect reports whether the line y = m*x + b crosses any edge of r
// within the edge's span. Edges are closed intervals.
func LineEntersRect(r Rect, m, b float64) bool {
	within := func(v, lo, hi float64) bool { return v >= lo && v <= hi }
	if within(m*r.Left+b, r.Top, r.Bottom) {
		return true
	}
	if within(m*r.Right+b, r.Top, r.Bottom) {
		return true
	}
	if within((r.Top-b)/m, r.Left, r.Right) {
		return true
	}
	return within((r.Bottom-b)/m, r.Left, r.Right)
}
