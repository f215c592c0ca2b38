package main

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/polyfx/pkg/math"
)

var (
	background  = color.RGBA{R: 26, G: 26, B: 38, A: 255}
	damageColor = color.RGBA{R: 255, G: 51, B: 51, A: 255}
)

// paintWindow draws the surface flat over the output rect.
func paintWindow(dst, surface *image.RGBA, output math.Rect) {
	r := image.Rect(output.X1, output.Y1, output.X2, output.Y2)
	draw.Draw(dst, r, surface, surface.Bounds().Min, draw.Over)
}

// strokeRect outlines r with a one pixel border.
func strokeRect(dst *image.RGBA, r math.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.X1, r.Y1, r.X2, r.Y1+1),
		image.Rect(r.X1, r.Y2-1, r.X2, r.Y2),
		image.Rect(r.X1, r.Y1, r.X1+1, r.Y2),
		image.Rect(r.X2-1, r.Y1, r.X2, r.Y2),
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Src)
	}
}
