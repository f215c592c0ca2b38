package polygon

import "github.com/Faultbox/polyfx/pkg/math"

// FrameState describes the pipeline state for one DrawGeometry call.
type FrameState struct {
	Lighting  bool
	DepthTest bool
	Flat      bool // zero thickness: only the front face carries an image
}

// PolygonDraw is one polygon clipped to one clip rectangle.
type PolygonDraw struct {
	Polygon *Polygon
	// Model maps polygon local space to the host's screen space.
	Model math.Mat4
	// TexCoords has 2*Sides entries laid out like Polygon.Vertices.
	TexCoords []math.Vec2
	// ClipBox is the clip rectangle relative to CenterStart.
	ClipBox     math.Box
	Opacity     float32 // front face
	BackOpacity float32 // back and side faces
	Pass        int     // 0 for opaque polygons, 1 for translucent ones
}

// Renderer draws textured polygon slabs. The PolygonDraw passed to
// DrawPolygon is only valid for the duration of the call.
type Renderer interface {
	BeginGeometry(state FrameState)
	DrawPolygon(d *PolygonDraw)
	EndGeometry()
}

// PerspectiveMode selects how polygons are skewed towards the output center.
type PerspectiveMode int

const (
	PerspectiveNone PerspectiveMode = iota
	PerspectiveWindow
	PerspectivePolygon
)

// FadeMode selects the opacity formula.
type FadeMode int

const (
	// FadeGlobal fades every polygon over the last GlobalFadeDuration of
	// progress.
	FadeGlobal FadeMode = iota
	// FadePerPolygon fades each polygon over its own Fade window.
	FadePerPolygon
)

const (
	opaqueThreshold    = 0.9999
	invisibleThreshold = 1e-5
	skewFactor         = 1.15
)

// fadeFactor returns the remaining opacity fraction after passed progress
// of a fade lasting duration.
func fadeFactor(passed, duration float32, decelerate bool) float32 {
	if passed <= invisibleThreshold {
		return 1
	}
	if duration <= 0 {
		return 0
	}
	t := passed / duration
	if decelerate {
		return clamp01(1 - Decelerate(t))
	}
	return clamp01(1 - t)
}

// skewMatrix shears depth towards the output center as seen from (cx, cy).
func skewMatrix(cx, cy float32, out math.Rect) math.Mat4 {
	m := math.Identity()
	m[8] = -((cx - float32(out.X1)) - float32(out.W()/2)) * skewFactor
	m[9] = -((cy - float32(out.Y1)) - float32(out.H()/2)) * skewFactor
	return m
}
