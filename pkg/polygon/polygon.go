// Package polygon implements the polygon window animation engine: it cuts a
// window into thin 3D slabs, advances each slab over normalized progress,
// textures the slabs through the clip rectangles supplied every frame and
// reports the screen area the animation covers.
//
// An Animation is driven by the host with one fixed call sequence per frame:
//
//	a.PrePreparePaint()
//	a.Step(ms)
//	a.UpdateBoundingBox(out)
//	a.PrePaint()
//	a.AddGeometry(boxes, matrix) // zero or more times
//	a.DrawGeometry(renderer)     // zero or more times
//	a.PostPaint()
//
// Nothing in the package is safe for concurrent use; every animated window
// owns its own Animation.
package polygon

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
)

// Window is a sub-range of normalized animation progress.
type Window struct {
	Start    float32
	Duration float32
}

// Progress maps overall forward progress into w, clamped to [0, 1]. A
// non-positive duration leaves the offset progress unscaled.
func (w Window) Progress(forward float32) float32 {
	p := forward - w.Start
	if w.Duration > 0 {
		p /= w.Duration
	}
	return clamp01(p)
}

// Polygon is one extruded facet of a tessellated window. Vertices are in
// local space relative to CenterStart; z is in normalized depth units.
type Polygon struct {
	Sides       int
	Vertices    []math.Vec3 // Sides front vertices followed by Sides back vertices
	SideIndices []uint16    // 4 indices per side face
	Normals     []math.Vec3 // flat normal stored at each face's first vertex

	Bounds      math.Box // local 2D bounds of the front outline
	BoundRadius float32

	CenterStart   math.Vec3
	Center        math.Vec3
	CenterRel     math.Vec2 // center relative to the tessellated rect
	RotAngleStart float32   // degrees
	RotAngle      float32
	RotAxis       math.Vec3
	RotAxisOffset math.Vec3 // pixels; z is scaled by the screen width at draw time

	FinalRelPos   math.Vec3
	FinalRotAngle float32

	Move Window
	Fade Window

	// Params holds effect owned per-polygon state.
	Params any
}

// Front returns the front face vertices.
func (p *Polygon) Front() []math.Vec3 { return p.Vertices[:p.Sides] }

// Back returns the back face vertices, which wind opposite to the front.
func (p *Polygon) Back() []math.Vec3 { return p.Vertices[p.Sides:] }

// back returns the index of the back vertex mirroring front vertex k.
func (p *Polygon) back(k int) int { return 2*p.Sides - 1 - k }

// NewPolygon extrudes a 2D outline into a slab centered on center. The
// outline is in pixels relative to center; halfThickness is in normalized
// depth units.
func NewPolygon(outline []math.Vec2, center math.Vec3, halfThickness float32) *Polygon {
	n := len(outline)
	p := &Polygon{
		Sides:       n,
		Vertices:    make([]math.Vec3, 2*n),
		SideIndices: make([]uint16, 0, 4*n),
		Normals:     make([]math.Vec3, 2*n),
		Bounds:      math.BoundsOf(outline),
		CenterStart: center,
		Center:      center,
		Move:        Window{Start: 0, Duration: 1},
	}

	for k, v := range outline {
		p.Vertices[k] = v.Vec3(halfThickness)
		p.Vertices[p.back(k)] = v.Vec3(-halfThickness)

		r := math32.Sqrt(v.X*v.X + v.Y*v.Y + halfThickness*halfThickness)
		if r > p.BoundRadius {
			p.BoundRadius = r
		}
	}

	p.Normals[0] = math.Vec3{Z: 1}
	p.Normals[n] = math.Vec3{Z: -1}

	flip := math.SignedArea(outline) > 0
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		var face [4]int
		if k == 0 {
			face = [4]int{p.back(0), p.back(1), 1, 0}
		} else {
			face = [4]int{k, p.back(k), p.back(next), next}
		}
		for _, idx := range face {
			p.SideIndices = append(p.SideIndices, uint16(idx))
		}
		p.Normals[face[0]] = edgeNormal(outline[k], outline[next], flip)
	}
	return p
}

// edgeNormal returns the outward normal of the edge a->b.
func edgeNormal(a, b math.Vec2, flip bool) math.Vec3 {
	d := b.Sub(a)
	nrm := math.Vec2{X: -d.Y, Y: d.X}.Normalize()
	if nrm == (math.Vec2{}) {
		return math.Vec3{Z: 1}
	}
	if flip {
		nrm = nrm.Scale(-1)
	}
	return nrm.Vec3(0)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
