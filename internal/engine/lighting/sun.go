// Package lighting provides the directional light slab faces are shaded with.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
)

// Sun is a directional light in screen pixel space, where y grows down.
// Longitude turns around the view axis starting at +X, so 270 points up the
// screen. Latitude is the elevation above the screen plane towards the
// viewer. Both are in degrees.
type Sun struct {
	Longitude float32
	Latitude  float32
	Ambient   float32 // share of the color kept on faces turned away, 0 to 1
}

// DefaultSun lights slabs from the upper left, slightly in front.
func DefaultSun() Sun {
	return Sun{Longitude: 233, Latitude: 65, Ambient: 0.4}
}

// Direction returns the normalized vector pointing towards the light.
func (s Sun) Direction() math.Vec3 {
	lon := s.Longitude * math.DegToRad
	lat := s.Latitude * math.DegToRad
	return math.Vec3{
		X: math32.Cos(lat) * math32.Cos(lon),
		Y: math32.Cos(lat) * math32.Sin(lon),
		Z: math32.Sin(lat),
	}
}

// Shade returns the brightness of a face with the given normal. Both sides
// of a face are lit alike.
func (s Sun) Shade(normal math.Vec3) float32 {
	a := min(max(s.Ambient, 0), 1)
	return a + (1-a)*math32.Abs(normal.Normalize().Dot(s.Direction()))
}
