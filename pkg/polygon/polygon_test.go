package polygon

import (
	"errors"
	stdmath "math"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/polyfx/pkg/math"
)

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestTessellateStructure(t *testing.T) {
	rect := math.RectXYWH(10, 20, 400, 300)
	tests := []struct {
		name     string
		strategy Strategy
		params   TessParams
		want     int
	}{
		{"rectangles", StrategyRectangles, TessParams{GridX: 4, GridY: 3, Thickness: 10, ScreenWidth: 1000}, 12},
		{"hexagons", StrategyHexagons, TessParams{GridX: 5, GridY: 4, Thickness: 10, ScreenWidth: 1000}, 5*5 + 5/2},
		{"glass", StrategyGlass, TessParams{SpokeMultiplier: 2, Tiers: 3, Thickness: 10, ScreenWidth: 1000, Rand: rand.New(rand.NewPCG(1, 2))}, 8 * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Tessellate(tt.strategy, rect, tt.params)
			if err != nil {
				t.Fatalf("Tessellate failed: %v", err)
			}
			if len(m.Polygons) != tt.want {
				t.Fatalf("got %d polygons, want %d", len(m.Polygons), tt.want)
			}

			front := 0
			for i, p := range m.Polygons {
				front += p.Sides
				if len(p.Front()) != p.Sides || len(p.Back()) != p.Sides {
					t.Errorf("polygon %d: %d front, %d back vertices, want %d", i, len(p.Front()), len(p.Back()), p.Sides)
				}
				if len(p.SideIndices) != 4*p.Sides {
					t.Errorf("polygon %d: %d side indices, want %d", i, len(p.SideIndices), 4*p.Sides)
				}
				if len(p.Normals) != 2*p.Sides {
					t.Errorf("polygon %d: %d normals, want %d", i, len(p.Normals), 2*p.Sides)
				}
				for k, v := range p.Front() {
					b := p.Vertices[2*p.Sides-1-k]
					if b.X != v.X || b.Y != v.Y || b.Z != -v.Z {
						t.Errorf("polygon %d: back vertex of %d is %v, want mirror of %v", i, k, b, v)
					}
				}
			}
			if m.FrontVertices != front {
				t.Errorf("FrontVertices = %d, want %d", m.FrontVertices, front)
			}
			if abs32(m.Thickness-0.01) > 1e-7 {
				t.Errorf("Thickness = %f, want 0.01", m.Thickness)
			}
		})
	}
}

func TestRectanglesTileWindow(t *testing.T) {
	rect := math.RectXYWH(0, 0, 200, 100)
	m, err := Tessellate(StrategyRectangles, rect, TessParams{GridX: 4, GridY: 2})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(m.Polygons) != 8 {
		t.Fatalf("got %d polygons, want 8", len(m.Polygons))
	}
	if m.GridX != 4 || m.GridY != 2 {
		t.Errorf("grid = %dx%d, want 4x2", m.GridX, m.GridY)
	}

	var area float32
	for i, p := range m.Polygons {
		if p.Bounds.W() != 50 || p.Bounds.H() != 50 {
			t.Errorf("polygon %d: bounds %vx%v, want 50x50", i, p.Bounds.W(), p.Bounds.H())
		}
		area += p.Bounds.W() * p.Bounds.H()

		bi := p.Bounds.Offset(p.CenterStart.X, p.CenterStart.Y)
		if bi.X1 < 0 || bi.Y1 < 0 || bi.X2 > 200 || bi.Y2 > 100 {
			t.Errorf("polygon %d: %v outside window", i, bi)
		}
		for j, q := range m.Polygons[i+1:] {
			bj := q.Bounds.Offset(q.CenterStart.X, q.CenterStart.Y)
			if bi.Overlaps(bj) {
				t.Errorf("polygons %d and %d overlap: %v %v", i, i+1+j, bi, bj)
			}
		}
	}
	if area != 200*100 {
		t.Errorf("total area = %v, want %v", area, 200*100)
	}

	first := m.Polygons[0]
	if first.CenterStart.X != 25 || first.CenterStart.Y != 25 {
		t.Errorf("first center = %v, want (25, 25)", first.CenterStart)
	}
	if first.CenterRel.X != 0.125 || first.CenterRel.Y != 0.25 {
		t.Errorf("first CenterRel = %v, want (0.125, 0.25)", first.CenterRel)
	}
}

func TestRectanglesNormals(t *testing.T) {
	m, err := Tessellate(StrategyRectangles, math.RectXYWH(0, 0, 100, 100), TessParams{GridX: 1, GridY: 1})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	p := m.Polygons[0]

	want := []math.Vec3{
		{X: -1}, // left
		{Y: 1},  // bottom
		{X: 1},  // right
		{Y: -1}, // top
	}
	for f, w := range want {
		got := p.Normals[p.SideIndices[4*f]]
		if got != w {
			t.Errorf("face %d normal = %v, want %v", f, got, w)
		}
	}
	if p.Normals[0] != (math.Vec3{Z: 1}) {
		t.Errorf("front normal = %v", p.Normals[0])
	}
	if p.Normals[p.Sides] != (math.Vec3{Z: -1}) {
		t.Errorf("back normal = %v", p.Normals[p.Sides])
	}
}

func TestRectanglesCoarsenGrid(t *testing.T) {
	m, err := Tessellate(StrategyRectangles, math.RectXYWH(0, 0, 55, 30), TessParams{GridX: 10, GridY: 10})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if m.GridX != 5 || m.GridY != 3 {
		t.Errorf("grid = %dx%d, want 5x3", m.GridX, m.GridY)
	}
	if len(m.Polygons) != 15 {
		t.Errorf("got %d polygons, want 15", len(m.Polygons))
	}
}

func TestHexagonsTileWindow(t *testing.T) {
	m, err := Tessellate(StrategyHexagons, math.RectXYWH(0, 0, 200, 100), TessParams{GridX: 4, GridY: 2})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if want := 3*4 + 1; len(m.Polygons) != want {
		t.Fatalf("got %d polygons, want %d", len(m.Polygons), want)
	}

	var area float64
	for i, p := range m.Polygons {
		if p.Sides != 6 {
			t.Errorf("polygon %d has %d sides", i, p.Sides)
		}
		outline := make([]math.Vec2, p.Sides)
		for k, v := range p.Front() {
			outline[k] = v.XY()
			x, y := v.X+p.CenterStart.X, v.Y+p.CenterStart.Y
			if x < -1e-3 || y < -1e-3 || x > 200+1e-3 || y > 100+1e-3 {
				t.Errorf("polygon %d vertex (%v, %v) outside window", i, x, y)
			}
		}
		area += stdmath.Abs(float64(math.SignedArea(outline)))
	}
	if stdmath.Abs(area-200*100) > 0.5 {
		t.Errorf("total area = %v, want %v", area, 200*100)
	}
}

func TestGlassTileWindow(t *testing.T) {
	rect := math.RectXYWH(0, 0, 300, 200)
	params := TessParams{SpokeMultiplier: 2, Tiers: 3, Rand: rand.New(rand.NewPCG(7, 7))}
	m, err := Tessellate(StrategyGlass, rect, params)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}

	var area float64
	triangles := 0
	for _, p := range m.Polygons {
		if p.Sides == 3 {
			triangles++
		}
		outline := make([]math.Vec2, p.Sides)
		for k, v := range p.Front() {
			outline[k] = v.XY()
		}
		area += stdmath.Abs(float64(math.SignedArea(outline)))
	}
	if triangles != 8 {
		t.Errorf("got %d triangles, want 8", triangles)
	}
	if stdmath.Abs(area-300*200)/(300*200) > 1e-3 {
		t.Errorf("total area = %v, want %v", area, 300*200)
	}
}

func TestGlassDeterministicWithSeed(t *testing.T) {
	rect := math.RectXYWH(0, 0, 300, 200)
	a, err := Tessellate(StrategyGlass, rect, TessParams{SpokeMultiplier: 3, Tiers: 2, Rand: rand.New(rand.NewPCG(42, 1))})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	b, err := Tessellate(StrategyGlass, rect, TessParams{SpokeMultiplier: 3, Tiers: 2, Rand: rand.New(rand.NewPCG(42, 1))})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	for i := range a.Polygons {
		if a.Polygons[i].CenterStart != b.Polygons[i].CenterStart {
			t.Errorf("polygon %d: %v != %v", i, a.Polygons[i].CenterStart, b.Polygons[i].CenterStart)
		}
	}
}

func TestTessellateErrors(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		rect     math.Rect
		params   TessParams
		want     error
	}{
		{"rect too small", StrategyRectangles, math.RectXYWH(0, 0, 5, 50), TessParams{GridX: 2, GridY: 2}, ErrWindowTooSmall},
		{"hex too small", StrategyHexagons, math.RectXYWH(0, 0, 100, 15), TessParams{GridX: 2, GridY: 2}, ErrWindowTooSmall},
		{"glass too small", StrategyGlass, math.RectXYWH(0, 0, 99, 300), TessParams{SpokeMultiplier: 1, Tiers: 1}, ErrWindowTooSmall},
		{"zero grid", StrategyRectangles, math.RectXYWH(0, 0, 100, 100), TessParams{GridX: 0, GridY: 2}, ErrInvalidParams},
		{"zero tiers", StrategyGlass, math.RectXYWH(0, 0, 200, 200), TessParams{SpokeMultiplier: 1}, ErrInvalidParams},
		{"unknown strategy", Strategy(9), math.RectXYWH(0, 0, 200, 200), TessParams{}, ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tessellate(tt.strategy, tt.rect, tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategyRectangles, StrategyHexagons, StrategyGlass} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("voronoi"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}
