package common

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	X, Y int
	W, H int
}

// Right returns the x coordinate one past the box's right edge.
func (b Box) Right() int { return b.X + b.W }

// Bottom returns the y coordinate one past the box's bottom edge.
func (b Box) Bottom() int { return b.Y + b.H }

// Offset returns the box moved by (dx, dy).
func (b Box) Offset(dx, dy int) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Intersects reports whether the interiors of b and other overlap.
func (b Box) Intersects(other Box) bool {
	return Overlap(b.X, b.Y, b.W, b.H, other.X, other.Y, other.W, other.H)
}

// Overlap reports whether two boxes overlap on both axes. Boxes that only
// share an edge do not overlap, and boxes with a zero or negative size never
// overlap anything.
func Overlap(x1, y1, w1, h1, x2, y2, w2, h2 int) bool {
	if w1 <= 0 || h1 <= 0 || w2 <= 0 || h2 <= 0 {
		return false
	}

	r1 := x1 + w1
	r2 := x2 + w2
	b1 := y1 + h1
	b2 := y2 + h2

	if b1 <= y2 || y1 >= b2 {
		return false
	}
	if r1 <= x2 || x1 >= r2 {
		return false
	}
	return true
}
