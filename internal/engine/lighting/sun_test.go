package lighting

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
)

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-5 }

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     math.Vec3
	}{
		{"right", 0, 0, math.Vec3{X: 1}},
		{"down the screen", 90, 0, math.Vec3{Y: 1}},
		{"up the screen", 270, 0, math.Vec3{Y: -1}},
		{"towards viewer", 0, 90, math.Vec3{Z: 1}},
		{"left", 180, 0, math.Vec3{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sun{Longitude: tt.lon, Latitude: tt.lat}.Direction()
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultSunIsNormalized(t *testing.T) {
	if l := DefaultSun().Direction().Length(); !near(l, 1) {
		t.Errorf("length = %v, want 1", l)
	}
}

func TestShade(t *testing.T) {
	s := Sun{Longitude: 0, Latitude: 90, Ambient: 0.25}
	if got := s.Shade(math.Vec3{Z: 1}); !near(got, 1) {
		t.Errorf("facing light = %v, want 1", got)
	}
	if got := s.Shade(math.Vec3{Z: -2}); !near(got, 1) {
		t.Errorf("back face = %v, want 1", got)
	}
	if got := s.Shade(math.Vec3{X: 1}); !near(got, 0.25) {
		t.Errorf("edge on = %v, want ambient 0.25", got)
	}
}
