// Package raster draws animation frames into an image without a GPU. It is
// used for headless previews and for rendering frame sequences to disk.
//
// Slabs are sorted back to front and only their front and back faces are
// filled; side faces are left out. Lighting shades each face as a whole.
package raster

import (
	"image"
	"image/color"
	"slices"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/Faultbox/polyfx/internal/engine/lighting"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Renderer implements polygon.Renderer on top of an *image.RGBA.
type Renderer struct {
	dst    *image.RGBA
	tex    image.Image
	out    polygon.Output
	state  polygon.FrameState
	ras    *vector.Rasterizer
	interp draw.Interpolator

	queue []queued

	// Sun shades faces when the effect asks for lighting.
	Sun lighting.Sun
}

type queued struct {
	pass    int
	depth   float32 // eye space z of the slab center
	screen  []math.Vec2
	texPx   []math.Vec2
	local   []math.Vec2
	clip    math.Box
	opacity float32
	shade   float32
}

// New returns a renderer drawing into dst. tex is the window surface the
// texture coordinates refer to; nil fills polygons with solid white.
func New(dst *image.RGBA, tex image.Image) *Renderer {
	return &Renderer{
		dst:    dst,
		tex:    tex,
		ras:    &vector.Rasterizer{},
		interp: draw.ApproxBiLinear,
		Sun:    lighting.DefaultSun(),
	}
}

// SetOutput sets the matrices polygons are projected with. Region should
// match the destination bounds.
func (r *Renderer) SetOutput(out polygon.Output) { r.out = out }

// SetTexture replaces the window surface.
func (r *Renderer) SetTexture(tex image.Image) { r.tex = tex }

// Image returns the destination image.
func (r *Renderer) Image() *image.RGBA { return r.dst }

// Clear fills the destination with c.
func (r *Renderer) Clear(c color.Color) {
	draw.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// BeginGeometry implements polygon.Renderer.
func (r *Renderer) BeginGeometry(state polygon.FrameState) {
	r.state = state
	r.queue = r.queue[:0]
}

// DrawPolygon implements polygon.Renderer.
func (r *Renderer) DrawPolygon(d *polygon.PolygonDraw) {
	p := d.Polygon
	vp := math.Viewport{X: r.out.Region.X1, Y: r.out.Region.Y1, W: r.out.Region.W(), H: r.out.Region.H()}
	mv := r.out.ModelView.Mul(d.Model)
	h := float32(r.dst.Bounds().Dy())

	q := queued{
		pass:   d.Pass,
		depth:  mv.TransformVec3(math.Vec3{}).Z,
		screen: make([]math.Vec2, 0, p.Sides),
		local:  make([]math.Vec2, 0, p.Sides),
		texPx:  make([]math.Vec2, 0, p.Sides),
		clip:   d.ClipBox,
		shade:  1,
	}
	if r.state.Lighting {
		n := d.Model.TransformVec3(p.Normals[0]).Sub(d.Model.TransformVec3(math.Vec3{}))
		q.shade = r.Sun.Shade(n)
	}
	tw, th := r.texSize()
	for k, v := range p.Front() {
		w, ok := math.Project(v, mv, r.out.Projection, vp)
		if !ok {
			return
		}
		q.screen = append(q.screen, math.Vec2{X: w.X, Y: h - w.Y})
		q.local = append(q.local, v.XY())
		tc := d.TexCoords[k]
		q.texPx = append(q.texPx, math.Vec2{X: tc.X * tw, Y: tc.Y * th})
	}

	q.opacity = d.Opacity
	// winding flipped on screen: the back face shows through
	if (math.SignedArea(q.screen) > 0) != (math.SignedArea(q.local) > 0) {
		q.opacity = d.BackOpacity
	}
	if q.opacity <= 0 {
		return
	}
	r.queue = append(r.queue, q)
}

// EndGeometry implements polygon.Renderer and flushes the queued slabs.
func (r *Renderer) EndGeometry() {
	if r.state.DepthTest {
		slices.SortStableFunc(r.queue, func(a, b queued) int {
			if a.pass != b.pass {
				return a.pass - b.pass
			}
			switch {
			case a.depth < b.depth:
				return -1
			case a.depth > b.depth:
				return 1
			}
			return 0
		})
	}
	for i := range r.queue {
		r.fill(&r.queue[i])
	}
	r.queue = r.queue[:0]
}

func (r *Renderer) texSize() (float32, float32) {
	if r.tex == nil {
		return 1, 1
	}
	b := r.tex.Bounds()
	return float32(b.Dx()), float32(b.Dy())
}

func (r *Renderer) fill(q *queued) {
	b := math.BoundsOf(q.screen)
	ib := image.Rect(
		int(math32.Floor(b.X1)), int(math32.Floor(b.Y1)),
		int(math32.Ceil(b.X2)), int(math32.Ceil(b.Y2)),
	).Intersect(r.dst.Bounds())
	if ib.Empty() {
		return
	}

	mask := image.NewAlpha(ib)
	r.ras.Reset(ib.Dx(), ib.Dy())
	ox, oy := float32(ib.Min.X), float32(ib.Min.Y)
	r.ras.MoveTo(q.screen[0].X-ox, q.screen[0].Y-oy)
	for _, s := range q.screen[1:] {
		r.ras.LineTo(s.X-ox, s.Y-oy)
	}
	r.ras.ClosePath()
	alpha := uint8(math32.Round(min(max(q.opacity, 0), 1) * 255))
	r.ras.Draw(mask, ib, image.NewUniform(color.Alpha{A: alpha}), image.Point{})

	if r.tex == nil {
		draw.DrawMask(r.dst, ib, image.White, image.Point{}, mask, ib.Min, draw.Over)
		r.darken(ib, mask, q.shade)
		return
	}

	toScreen, ok := solveAffine(q.texPx, q.screen)
	if !ok {
		return
	}
	toTex, ok := solveAffine(q.local, q.texPx)
	if !ok {
		return
	}
	c0 := toTex.apply(math.Vec2{X: q.clip.X1, Y: q.clip.Y1})
	c1 := toTex.apply(math.Vec2{X: q.clip.X2, Y: q.clip.Y2})
	sr := image.Rect(
		int(math32.Floor(min(c0.X, c1.X))), int(math32.Floor(min(c0.Y, c1.Y))),
		int(math32.Ceil(max(c0.X, c1.X))), int(math32.Ceil(max(c0.Y, c1.Y))),
	).Intersect(r.tex.Bounds())
	if sr.Empty() {
		return
	}

	r.interp.Transform(r.dst, toScreen.aff3(), r.tex, sr, draw.Over, &draw.Options{
		DstMask:  mask,
		DstMaskP: image.Point{},
	})
	r.darken(ib, mask, q.shade)
}

// darken dims the masked area towards black by 1-shade.
func (r *Renderer) darken(ib image.Rectangle, mask *image.Alpha, shade float32) {
	if shade >= 1 {
		return
	}
	a := uint8(math32.Round((1 - max(shade, 0)) * 255))
	draw.DrawMask(r.dst, ib, image.NewUniform(color.RGBA{A: a}), image.Point{}, mask, ib.Min, draw.Over)
}

// affine is a 2D affine map: x' = a*x + b*y + c, y' = d*x + e*y + f.
type affine struct {
	a, b, c float32
	d, e, f float32
}

func (m affine) apply(v math.Vec2) math.Vec2 {
	return math.Vec2{X: m.a*v.X + m.b*v.Y + m.c, Y: m.d*v.X + m.e*v.Y + m.f}
}

func (m affine) aff3() f64.Aff3 {
	return f64.Aff3{
		float64(m.a), float64(m.b), float64(m.c),
		float64(m.d), float64(m.e), float64(m.f),
	}
}

// solveAffine finds the affine map taking from[i] to to[i], using the first
// vertex triple that is not collinear in from.
func solveAffine(from, to []math.Vec2) (affine, bool) {
	n := len(from)
	for i := 1; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u := from[i].Sub(from[0])
			v := from[j].Sub(from[0])
			det := u.Cross(v)
			if math32.Abs(det) < 1e-6 {
				continue
			}
			su := to[i].Sub(to[0])
			sv := to[j].Sub(to[0])
			// columns of the inverse of [u v]
			ix := math.Vec2{X: v.Y / det, Y: -u.Y / det}
			iy := math.Vec2{X: -v.X / det, Y: u.X / det}
			m := affine{
				a: su.X*ix.X + sv.X*ix.Y,
				b: su.X*iy.X + sv.X*iy.Y,
				d: su.Y*ix.X + sv.Y*ix.Y,
				e: su.Y*iy.X + sv.Y*iy.Y,
			}
			o := m.apply(from[0])
			m.c = to[0].X - o.X
			m.f = to[0].Y - o.Y
			return m, true
		}
	}
	return affine{}, false
}
