package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/polyfx/pkg/math"
)

func TestStrokeRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	strokeRect(dst, math.Rect{X1: 5, Y1: 5, X2: 15, Y2: 12}, damageColor)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"top left", 5, 5, damageColor},
		{"bottom edge", 10, 11, damageColor},
		{"right edge", 14, 8, damageColor},
		{"inside", 10, 8, color.RGBA{}},
		{"outside", 15, 12, color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestStrokeEmptyRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	strokeRect(dst, math.Rect{}, damageColor)
	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d, want untouched image", i, v)
		}
	}
}

func TestPaintWindow(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	surface := image.NewRGBA(image.Rect(0, 0, 4, 3))
	red := color.RGBA{R: 255, A: 255}
	for i := 0; i < len(surface.Pix); i += 4 {
		copy(surface.Pix[i:], []uint8{red.R, red.G, red.B, red.A})
	}

	paintWindow(dst, surface, math.RectXYWH(2, 3, 4, 3))
	if got := dst.RGBAAt(2, 3); got != red {
		t.Errorf("window corner = %v, want %v", got, red)
	}
	if got := dst.RGBAAt(6, 3); got != (color.RGBA{}) {
		t.Errorf("right of window = %v, want transparent", got)
	}
}
