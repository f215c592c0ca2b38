package polygon

import (
	"testing"

	"github.com/Faultbox/polyfx/pkg/math"
)

func TestBoundsMonotonic(t *testing.T) {
	m, err := Tessellate(StrategyRectangles, math.RectXYWH(100, 50, 400, 300), TessParams{GridX: 4, GridY: 3})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}

	const sw, sh = 800, 600
	proj := math.Ortho(0, sw, 0, sh, -1, 1)
	vp := math.Viewport{W: sw, H: sh}
	b := NewBoundsAccumulator()

	// Rotate some polygons about offset axes so the cuboid matters.
	for i, p := range m.Polygons {
		if i%2 == 0 {
			p.RotAxisOffset = math.Vec3{X: 12, Y: -3}
			p.RotAngle = 45
			p.RotAxis = math.Vec3{Y: 1}
		}
	}

	var prev math.Rect
	for i, p := range m.Polygons {
		if !b.Accumulate(p, math.Identity(), proj, vp, sh, 1.0/sw) {
			t.Fatalf("polygon %d could not be projected", i)
		}
		box := b.Box()
		if i > 0 && !box.Contains(prev) {
			t.Fatalf("box after polygon %d (%v) lost area of %v", i, box, prev)
		}

		// The polygon's center, flipped to y-down, must be inside.
		cx, cy := int(p.Center.X), sh-int(p.Center.Y)
		if cx < box.X1 || cx > box.X2 || cy < box.Y1 || cy > box.Y2 {
			t.Errorf("polygon %d center (%d, %d) outside %v", i, cx, cy, box)
		}
		prev = box
	}
}

func TestBoundsFirstPointSeedsBox(t *testing.T) {
	b := NewBoundsAccumulator()
	if !b.Box().Empty() {
		t.Fatal("new accumulator should be empty")
	}
	b.expand(10.7, 20.2)
	if got := b.Box(); got != (math.Rect{X1: 10, Y1: 20, X2: 11, Y2: 21}) {
		t.Errorf("seeded box = %v", got)
	}
	b.expand(5, 30)
	if got := b.Box(); got != (math.Rect{X1: 5, Y1: 20, X2: 11, Y2: 30}) {
		t.Errorf("expanded box = %v", got)
	}
	b.Reset()
	if !b.Box().Empty() {
		t.Error("Reset should empty the box")
	}
}

func TestBoundsUnprojectable(t *testing.T) {
	p := testPolygon()
	b := NewBoundsAccumulator()
	var zero math.Mat4
	if b.Accumulate(p, math.Identity(), zero, math.Viewport{W: 100, H: 100}, 100, 0.01) {
		t.Error("expected failure for a projection with zero w")
	}
	if !b.Box().Empty() {
		t.Errorf("box = %v, want empty", b.Box())
	}
}

func TestBoundsClampToShortRange(t *testing.T) {
	b := NewBoundsAccumulator()
	b.expand(1e9, -1e9)
	got := b.Box()
	if got.X1 != 32766 || got.Y1 != -32768 {
		t.Errorf("clamped box = %v", got)
	}
}
