// Package camera provides the views animations are rendered through.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// DefaultZ is the eye distance at which a 60 degree frustum exactly covers
// one output: tan(30°) * DefaultZ = 0.5.
const DefaultZ = 0.866025404

// ScreenCamera maps screen pixels (y down) onto one output so that the
// z = 0 plane lines up with the pixel grid. Tilting orbits the view around
// the center of that plane to inspect effects from the side.
type ScreenCamera struct {
	Region math.Rect

	// Orbit around the output center, radians
	Yaw   float32
	Pitch float32
	Zoom  float32 // eye distance multiplier

	// Constraints
	MaxAngle float32
	MinZoom  float32
	MaxZoom  float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewScreenCamera creates an untilted camera over region.
func NewScreenCamera(region math.Rect) *ScreenCamera {
	return &ScreenCamera{
		Region:          region,
		Zoom:            1,
		MaxAngle:        1.2,
		MinZoom:         0.5,
		MaxZoom:         4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Projection returns the perspective projection. The aspect ratio is
// folded into the model view, so the frustum is square.
func (c *ScreenCamera) Projection() math.Mat4 {
	return math.Perspective(math32.Pi/3, 1, 0.1, 100)
}

// ModelView returns the screen space transform, orbited by the tilt.
func (c *ScreenCamera) ModelView() math.Mat4 {
	w := float32(max(c.Region.W(), 1))
	h := float32(max(c.Region.H(), 1))
	screen := math.Translate(-0.5, -0.5, 0).Chain(
		math.Scale(1/w, -1/h, 1),
		math.Translate(-float32(c.Region.X1), -float32(c.Region.Y2), 0),
	)
	return math.Translate(0, 0, -DefaultZ*c.Zoom).Chain(
		math.RotateAxis(math.Vec3{X: 1}, c.Pitch),
		math.RotateAxis(math.Vec3{Y: 1}, c.Yaw),
		screen,
	)
}

// Output bundles the camera for polygon.Animation.UpdateBoundingBox.
func (c *ScreenCamera) Output() polygon.Output {
	return polygon.Output{
		Region:     c.Region,
		ModelView:  c.ModelView(),
		Projection: c.Projection(),
	}
}

// Resize changes the covered output, keeping the tilt.
func (c *ScreenCamera) Resize(region math.Rect) { c.Region = region }

// Tilted reports whether the view differs from the flat screen.
func (c *ScreenCamera) Tilted() bool {
	return c.Yaw != 0 || c.Pitch != 0 || c.Zoom != 1
}

// Reset returns to the flat view.
func (c *ScreenCamera) Reset() {
	c.Yaw, c.Pitch, c.Zoom = 0, 0, 1
}

// HandleDrag tilts the view based on mouse drag delta.
func (c *ScreenCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw = clamp(c.Yaw+deltaX*c.DragSensitivity, -c.MaxAngle, c.MaxAngle)
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, -c.MaxAngle, c.MaxAngle)
}

// HandleZoom moves the eye based on scroll wheel delta.
func (c *ScreenCamera) HandleZoom(delta float32) {
	c.Zoom = clamp(c.Zoom-delta*c.Zoom*c.ZoomSensitivity, c.MinZoom, c.MaxZoom)
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
