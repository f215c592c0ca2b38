// Package texture builds the window surfaces animations are textured with.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Style is the look of a synthetic window.
type Style struct {
	Border  color.RGBA
	Title   color.RGBA
	Body    color.RGBA
	Checker color.RGBA
	Shadow  color.RGBA // darkest shadow color, faded out towards the edge

	CheckerSize int
}

// DefaultStyle returns a neutral dark window theme.
func DefaultStyle() Style {
	return Style{
		Border:      color.RGBA{R: 60, G: 63, B: 70, A: 255},
		Title:       color.RGBA{R: 46, G: 110, B: 180, A: 255},
		Body:        color.RGBA{R: 236, G: 236, B: 232, A: 255},
		Checker:     color.RGBA{R: 214, G: 218, B: 226, A: 255},
		Shadow:      color.RGBA{A: 140},
		CheckerSize: 24,
	}
}

// Layout places the window parts inside the surface, in surface pixels.
// Output is the whole surface.
type Layout struct {
	Output  image.Rectangle
	Input   image.Rectangle
	Content image.Rectangle
	Title   int // title bar height inside Input, above Content
}

// Window paints a synthetic window: a soft shadow in the margin between
// Output and Input, a frame with a title bar, and a checkered content area.
func Window(l Layout, s Style) *image.RGBA {
	img := image.NewRGBA(l.Output)
	shadow(img, l.Output, l.Input, s.Shadow)

	draw.Draw(img, l.Input, image.NewUniform(s.Border), image.Point{}, draw.Src)
	if l.Title > 0 {
		bar := image.Rect(l.Content.Min.X, l.Content.Min.Y-l.Title, l.Content.Max.X, l.Content.Min.Y)
		draw.Draw(img, bar.Intersect(l.Input), image.NewUniform(s.Title), image.Point{}, draw.Src)
	}

	draw.Draw(img, l.Content, image.NewUniform(s.Body), image.Point{}, draw.Src)
	if n := s.CheckerSize; n > 0 {
		for y := l.Content.Min.Y; y < l.Content.Max.Y; y += n {
			for x := l.Content.Min.X; x < l.Content.Max.X; x += n {
				if ((x-l.Content.Min.X)/n+(y-l.Content.Min.Y)/n)%2 == 0 {
					continue
				}
				cell := image.Rect(x, y, x+n, y+n).Intersect(l.Content)
				draw.Draw(img, cell, image.NewUniform(s.Checker), image.Point{}, draw.Src)
			}
		}
	}
	return img
}

// shadow fills out minus in with c, its alpha falling off linearly with
// the distance from in.
func shadow(img *image.RGBA, out, in image.Rectangle, c color.RGBA) {
	extent := max(in.Min.X-out.Min.X, in.Min.Y-out.Min.Y, out.Max.X-in.Max.X, out.Max.Y-in.Max.Y)
	if extent <= 0 {
		return
	}
	for y := out.Min.Y; y < out.Max.Y; y++ {
		for x := out.Min.X; x < out.Max.X; x++ {
			if (image.Point{X: x, Y: y}).In(in) {
				continue
			}
			dx := max(in.Min.X-x, x-(in.Max.X-1), 0)
			dy := max(in.Min.Y-y, y-(in.Max.Y-1), 0)
			d := max(dx, dy)
			if d >= extent {
				continue
			}
			a := uint32(c.A) * uint32(extent-d) / uint32(extent)
			// premultiplied
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(uint32(c.R) * a / 255),
				G: uint8(uint32(c.G) * a / 255),
				B: uint8(uint32(c.B) * a / 255),
				A: uint8(a),
			})
		}
	}
}
