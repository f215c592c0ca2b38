package effects

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Fold folds the window up like a sheet of paper, row by row, and then
// folds the remaining bottom row in from both sides.
type Fold struct {
	GridX, GridY int
	In           bool // fold towards the screen
}

// NewFold builds a Fold from its configuration.
func NewFold(cfg config.FoldConfig) (*Fold, error) {
	f := &Fold{GridX: cfg.GridX, GridY: cfg.GridY}
	switch cfg.Direction {
	case "", "in":
		f.In = true
	case "out":
	default:
		return nil, fmt.Errorf("%w: fold direction %q", polygon.ErrInvalidParams, cfg.Direction)
	}
	return f, nil
}

// foldRole is stored in Polygon.Params.
type foldRole int

const (
	foldRow     foldRole = iota // rows that flip over twice
	foldLastRow                 // the row above the bottom row
	foldLeft
	foldMiddle
	foldRight
)

func (*Fold) Name() string            { return "fold" }
func (*Fold) DurationFactor() float32 { return 1 }

// Setup implements polygon.Effect.
func (f *Fold) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	err := a.Tessellate(polygon.StrategyRectangles, polygon.TessParams{
		GridX:     f.GridX,
		GridY:     f.GridY,
		Thickness: 1,
	})
	if err != nil {
		return polygon.Behavior{}, err
	}

	mesh := a.Mesh()
	gx, gy := mesh.GridX, mesh.GridY
	half := gx / 2
	dir := f.dir()

	var fd, rows float32
	if gy == 1 {
		fd = 1 / float32(2*half+2)
	} else {
		in := 0
		if f.In {
			in = 1
		}
		fd = 1 / float32(gy+2*half+1+in)
		rows = float32(gy-1+in) * fd
	}
	dur := 2 * fd

	polys := mesh.Polygons
	bottom := len(polys) - gx
	for i, p := range polys {
		var start float32
		if i < bottom {
			row := i / gx
			start = float32(row) * fd
			p.RotAxis = math.Vec3{X: 1}
			p.Fade = polygon.Window{Start: start, Duration: fd}
			if row < gy-2 || f.In {
				p.Fade.Start += fd
			}
			if row == gy-2 {
				p.Params = foldLastRow
				p.FinalRotAngle = dir * 180
			} else {
				p.Params = foldRow
				p.FinalRotAngle = dir * 270
			}
		} else {
			j := i - bottom
			switch {
			case j < half:
				start = rows + dur*float32(j)
				p.RotAxis = math.Vec3{Y: -1}
				p.Params = foldLeft
				p.FinalRotAngle = dir * 180
			case j == half:
				start = rows + dur*float32(j)
				p.RotAxis = math.Vec3{Y: 1}
				p.Params = foldMiddle
				p.FinalRotAngle = dir * 90
			default:
				// right pieces mirror the left ones, outermost first
				start = rows + dur*float32(2*half-j)
				p.RotAxis = math.Vec3{Y: 1}
				p.Params = foldRight
				p.FinalRotAngle = dir * 180
			}
			p.Fade = polygon.Window{Start: start + fd, Duration: fd}
		}
		p.Move = polygon.Window{Start: start, Duration: dur}
	}

	rect := a.TessellationRect()
	cw := float32(rect.W()) / float32(gx)
	ch := float32(rect.H()) / float32(gy)

	return polygon.Behavior{
		Law:         foldLaw(dir, cw, ch, float32(a.ScreenWidth())),
		Fade:        polygon.FadePerPolygon,
		Lighting:    true,
		DepthTest:   true,
		Perspective: polygon.PerspectiveWindow,
	}, nil
}

func (f *Fold) dir() float32 {
	if f.In {
		return 1
	}
	return -1
}

// foldLaw hinges every piece on the edge it shares with the piece it folds
// onto. cw and ch are the cell size in pixels.
func foldLaw(dir, cw, ch, sw float32) polygon.LawFunc {
	return func(p *polygon.Polygon, forward float32) {
		mp := p.Move.Progress(forward)
		cs := p.CenterStart
		p.Center = cs

		role, _ := p.Params.(foldRole)
		switch role {
		case foldRow, foldLastRow:
			a := dir * mp * 180
			if role == foldLastRow || math32.Abs(a) < 90 {
				p.RotAngle = a
				p.Center.Y = cs.Y + ch/2 - math32.Cos(rad(a))*ch/2
				p.Center.Z = cs.Z + math32.Sin(-rad(a))*ch/2/sw
				return
			}
			// past vertical the row flips over the one below twice as fast
			alpha := a - dir*90
			alpha2 := 2 * alpha
			p.RotAngle = alpha*2 + dir*90
			p.Center.Y = cs.Y + ch/2 + ch - math32.Cos(rad(alpha))*ch + dir*math32.Sin(rad(alpha2))*ch/2
			p.Center.Z = cs.Z + (-math32.Sin(rad(alpha))*ch-dir*math32.Cos(rad(alpha2))*ch/2)/sw
		case foldLeft:
			a := dir * mp * 180
			p.RotAngle = a
			p.Center.X = cs.X + cw/2 - math32.Cos(rad(a))*cw/2
			p.Center.Z = cs.Z - math32.Sin(rad(a))*cw/2/sw
		case foldRight:
			a := dir * mp * 180
			p.RotAngle = a
			p.Center.X = cs.X - cw/2 + math32.Cos(-rad(a))*cw/2
			p.Center.Z = cs.Z + math32.Sin(-rad(a))*cw/2/sw
		case foldMiddle:
			p.RotAngle = dir * mp * 90
		}
	}
}
