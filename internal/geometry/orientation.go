package geometry

// Orientation is the axis along which a menu lays out its items.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Direction is the writing direction used to mirror horizontal semantics.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ParseDirection accepts "ltr" or "rtl"; anything else reports false.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case LTR, RTL:
		return Direction(s), true
	}
	return "", false
}
