package math

// Rect is an integer screen rectangle. X2 and Y2 are exclusive.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// RectXYWH builds a Rect from origin and size.
func RectXYWH(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// W returns the width.
func (r Rect) W() int { return r.X2 - r.X1 }

// H returns the height.
func (r Rect) H() int { return r.Y2 - r.Y1 }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Box converts r to a float rectangle.
func (r Rect) Box() Box {
	return Box{float32(r.X1), float32(r.Y1), float32(r.X2), float32(r.Y2)}
}

// Union returns the smallest rectangle containing r and o. Empty operands
// are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
		X2: max(r.X2, o.X2),
		Y2: max(r.Y2, o.Y2),
	}
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X1 >= r.X1 && o.Y1 >= r.Y1 && o.X2 <= r.X2 && o.Y2 <= r.Y2
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{r.X1 + dx, r.Y1 + dy, r.X2 + dx, r.Y2 + dy}
}

// Box is a floating point rectangle.
type Box struct {
	X1, Y1, X2, Y2 float32
}

// W returns the width.
func (b Box) W() float32 { return b.X2 - b.X1 }

// H returns the height.
func (b Box) H() float32 { return b.Y2 - b.Y1 }

// Offset returns b moved by (dx, dy).
func (b Box) Offset(dx, dy float32) Box {
	return Box{b.X1 + dx, b.Y1 + dy, b.X2 + dx, b.Y2 + dy}
}

// Grow returns b expanded by d on every side.
func (b Box) Grow(d float32) Box {
	return Box{b.X1 - d, b.Y1 - d, b.X2 + d, b.Y2 + d}
}

// Overlaps reports whether b and o share interior area. Touching edges do
// not count.
func (b Box) Overlaps(o Box) bool {
	return b.X2 > o.X1 && b.Y2 > o.Y1 && b.X1 < o.X2 && b.Y1 < o.Y2
}

// BoundsOf returns the bounding box of a set of points.
func BoundsOf(pts []Vec2) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		b.X1 = min(b.X1, p.X)
		b.Y1 = min(b.Y1, p.Y)
		b.X2 = max(b.X2, p.X)
		b.Y2 = max(b.Y2, p.Y)
	}
	return b
}
