package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
)

func TestScreenCameraMapsPixels(t *testing.T) {
	c := NewScreenCamera(math.RectXYWH(0, 0, 800, 600))
	vp := math.Viewport{W: 800, H: 600}

	tests := []struct {
		name   string
		obj    math.Vec3
		wantX  float32
		wantWY float32 // window y, bottom up
	}{
		{"top left", math.Vec3{}, 0, 600},
		{"bottom right", math.Vec3{X: 800, Y: 600}, 800, 0},
		{"center", math.Vec3{X: 400, Y: 300}, 400, 300},
		{"off center", math.Vec3{X: 100, Y: 450}, 100, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := math.Project(tt.obj, c.ModelView(), c.Projection(), vp)
			if !ok {
				t.Fatal("Project failed")
			}
			if math32.Abs(got.X-tt.wantX) > 0.05 || math32.Abs(got.Y-tt.wantWY) > 0.05 {
				t.Errorf("Project(%v) = (%v, %v), want (%v, %v)", tt.obj, got.X, got.Y, tt.wantX, tt.wantWY)
			}
		})
	}
}

func TestScreenCameraOffsetRegion(t *testing.T) {
	c := NewScreenCamera(math.RectXYWH(1920, 0, 1280, 1024))
	vp := math.Viewport{X: 1920, W: 1280, H: 1024}
	got, ok := math.Project(math.Vec3{X: 1920, Y: 1024}, c.ModelView(), c.Projection(), vp)
	if !ok {
		t.Fatal("Project failed")
	}
	if math32.Abs(got.X-1920) > 0.05 || math32.Abs(got.Y) > 0.05 {
		t.Errorf("bottom left = (%v, %v), want (1920, 0)", got.X, got.Y)
	}
}

func TestDepthMovesTowardsViewer(t *testing.T) {
	c := NewScreenCamera(math.RectXYWH(0, 0, 800, 600))
	vp := math.Viewport{W: 800, H: 600}
	flat, _ := math.Project(math.Vec3{X: 700, Y: 300}, c.ModelView(), c.Projection(), vp)
	near, _ := math.Project(math.Vec3{X: 700, Y: 300, Z: 0.2}, c.ModelView(), c.Projection(), vp)
	if near.X <= flat.X {
		t.Errorf("raised point x = %v, want right of %v", near.X, flat.X)
	}
}

func TestHandleDragClamps(t *testing.T) {
	c := NewScreenCamera(math.RectXYWH(0, 0, 100, 100))
	if c.Tilted() {
		t.Error("new camera is tilted")
	}
	c.HandleDrag(100000, -100000)
	if c.Yaw != c.MaxAngle || c.Pitch != -c.MaxAngle {
		t.Errorf("yaw, pitch = %v, %v, want clamped to ±%v", c.Yaw, c.Pitch, c.MaxAngle)
	}
	c.HandleZoom(-1000)
	if c.Zoom != c.MaxZoom {
		t.Errorf("zoom = %v, want %v", c.Zoom, c.MaxZoom)
	}
	c.Reset()
	if c.Tilted() {
		t.Error("Reset left the camera tilted")
	}
}
