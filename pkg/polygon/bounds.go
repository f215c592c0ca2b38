package polygon

import (
	stdmath "math"

	"github.com/Faultbox/polyfx/pkg/math"
)

// BoundsAccumulator grows a screen-space damage box from projected
// polygon extents.
type BoundsAccumulator struct {
	box   math.Rect
	empty bool
}

// NewBoundsAccumulator returns an empty accumulator.
func NewBoundsAccumulator() *BoundsAccumulator {
	return &BoundsAccumulator{empty: true}
}

// Reset empties the box.
func (b *BoundsAccumulator) Reset() {
	b.box = math.Rect{}
	b.empty = true
}

// Box returns the accumulated box; it is empty until a point was added.
func (b *BoundsAccumulator) Box() math.Rect {
	if b.empty {
		return math.Rect{}
	}
	return b.box
}

// Accumulate projects a cuboid that encloses p for any rotation about its
// axis offset and grows the box by its corners. depthScale converts pixel
// offsets to depth units. It returns false if a corner could not be
// projected; corners added before it are kept.
func (b *BoundsAccumulator) Accumulate(p *Polygon, modelView, projection math.Mat4, vp math.Viewport, screenHeight int, depthScale float32) bool {
	off := p.RotAxisOffset
	center := p.Center.Add(math.Vec3{X: off.X, Y: off.Y, Z: off.Z * depthScale})
	r := p.BoundRadius + 2 + off.MaxAbs()
	zr := r * depthScale

	for _, d := range [8]math.Vec3{
		{X: -r, Y: -r, Z: zr},
		{X: -r, Y: r, Z: zr},
		{X: r, Y: -r, Z: zr},
		{X: r, Y: r, Z: zr},
		{X: -r, Y: -r, Z: -zr},
		{X: -r, Y: r, Z: -zr},
		{X: r, Y: -r, Z: -zr},
		{X: r, Y: r, Z: -zr},
	} {
		win, ok := math.Project(center.Add(d), modelView, projection, vp)
		if !ok {
			return false
		}
		b.expand(win.X+0.5, float32(screenHeight)-win.Y+0.5)
	}
	return true
}

// expand adds a point, truncating to the 16-bit range damage regions use.
func (b *BoundsAccumulator) expand(fx, fy float32) {
	x := clampShort(fx)
	y := clampShort(fy)

	if b.empty {
		b.box = math.Rect{X1: x, Y1: y, X2: x + 1, Y2: y + 1}
		b.empty = false
		return
	}
	b.box.X1 = min(b.box.X1, x)
	b.box.Y1 = min(b.box.Y1, y)
	b.box.X2 = max(b.box.X2, x)
	b.box.Y2 = max(b.box.Y2, y)
}

func clampShort(v float32) int {
	v = min(max(v, stdmath.MinInt16), stdmath.MaxInt16-1)
	return int(v)
}
