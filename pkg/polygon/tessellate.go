package polygon

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/polyfx/pkg/math"
)

// Strategy selects how a window rectangle is cut into polygons.
type Strategy int

const (
	StrategyRectangles Strategy = iota
	StrategyHexagons
	StrategyGlass
)

var strategyNames = map[Strategy]string{
	StrategyRectangles: "rectangular",
	StrategyHexagons:   "hexagonal",
	StrategyGlass:      "glass",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy resolves a tessellation name as used in configuration.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tessellation %q", ErrInvalidParams, name)
}

// Minimum cell sizes in pixels. Grids are coarsened to respect them.
const (
	MinRectCell = 10
	MinHexCell  = 20
	MinGlass    = 100
)

// TessParams holds the numeric tessellation inputs.
type TessParams struct {
	GridX, GridY    int
	SpokeMultiplier int
	Tiers           int
	Thickness       float32 // pixels
	ScreenWidth     int     // converts thickness to depth units
	Rand            *rand.Rand
}

// Mesh is the result of one tessellation.
type Mesh struct {
	Polygons      []*Polygon
	Thickness     float32 // depth units
	GridX, GridY  int     // grid actually used; zero for glass
	FrontVertices int
}

// NewMesh wraps prebuilt polygons.
func NewMesh(polys []*Polygon, thickness float32) *Mesh {
	m := &Mesh{Polygons: polys, Thickness: thickness}
	for _, p := range polys {
		m.FrontVertices += p.Sides
	}
	return m
}

// Tessellate cuts rect into polygons using strategy s.
func Tessellate(s Strategy, rect math.Rect, p TessParams) (*Mesh, error) {
	thickness := p.Thickness
	if p.ScreenWidth > 0 {
		thickness /= float32(p.ScreenWidth)
	}

	switch s {
	case StrategyRectangles:
		return tessellateRectangles(rect, p.GridX, p.GridY, thickness)
	case StrategyHexagons:
		return tessellateHexagons(rect, p.GridX, p.GridY, thickness)
	case StrategyGlass:
		return tessellateGlass(rect, p.SpokeMultiplier, p.Tiers, thickness, p.Rand)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidParams, int(s))
	}
}

// fitGrid coarsens a grid so no cell is smaller than minCell.
func fitGrid(rect math.Rect, gx, gy, minCell int) (int, int, error) {
	if gx <= 0 || gy <= 0 {
		return 0, 0, fmt.Errorf("%w: grid %dx%d", ErrInvalidParams, gx, gy)
	}
	w, h := rect.W(), rect.H()
	if float32(w)/float32(gx) < float32(minCell) {
		gx = w / minCell
	}
	if float32(h)/float32(gy) < float32(minCell) {
		gy = h / minCell
	}
	if gx <= 0 || gy <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d window, minimum cell %d", ErrWindowTooSmall, w, h, minCell)
	}
	return gx, gy, nil
}

func tessellateRectangles(rect math.Rect, gx, gy int, thickness float32) (*Mesh, error) {
	gx, gy, err := fitGrid(rect, gx, gy, MinRectCell)
	if err != nil {
		return nil, err
	}

	cellW := float32(rect.W()) / float32(gx)
	cellH := float32(rect.H()) / float32(gy)
	halfW, halfH := cellW/2, cellH/2
	halfThick := thickness / 2

	outline := []math.Vec2{
		{X: -halfW, Y: -halfH},
		{X: -halfW, Y: halfH},
		{X: halfW, Y: halfH},
		{X: halfW, Y: -halfH},
	}

	polys := make([]*Polygon, 0, gx*gy)
	for y := 0; y < gy; y++ {
		posY := float32(rect.Y1) + cellH*(float32(y)+0.5)
		for x := 0; x < gx; x++ {
			center := math.Vec3{X: float32(rect.X1) + cellW*(float32(x)+0.5), Y: posY, Z: -halfThick}
			p := NewPolygon(outline, center, halfThick)
			p.CenterRel = math.Vec2{
				X: (float32(x) + 0.5) / float32(gx),
				Y: (float32(y) + 0.5) / float32(gy),
			}
			polys = append(polys, p)
		}
	}

	m := NewMesh(polys, thickness)
	m.GridX, m.GridY = gx, gy
	return m, nil
}

// relativeTo returns c relative to rect in [0, 1].
func relativeTo(rect math.Rect, c math.Vec3) math.Vec2 {
	return math.Vec2{
		X: (c.X - float32(rect.X1)) / float32(rect.W()),
		Y: (c.Y - float32(rect.Y1)) / float32(rect.H()),
	}
}
