package effects

import (
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// LeafSpread scatters small leaves outwards, top rows first.
type LeafSpread struct{}

const (
	leafGridX     = 20
	leafGridY     = 14
	leafThickness = 15
	leafFade      = 0.26
	leafLife      = 0.4
	leafSpread    = 3.5
	leafRandYMax  = 0.07
)

func (LeafSpread) Name() string            { return "leafspread" }
func (LeafSpread) DurationFactor() float32 { return 1.67 }

// Setup implements polygon.Effect.
func (LeafSpread) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	err := a.Tessellate(polygon.StrategyRectangles, polygon.TessParams{
		GridX:     leafGridX,
		GridY:     leafGridY,
		Thickness: leafThickness,
	})
	if err != nil {
		return polygon.Behavior{}, err
	}

	out := a.Geometry().Output
	facX := float32(out.W()) / 800
	facY := float32(out.H()) / 800
	facZ := float32(out.W()+out.H()) / 2 / 800

	r := a.Rand()
	for _, p := range a.Polygons() {
		p.RotAxis = math.Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}

		speed := reach(a) / 10 * (0.2 + r.Float32())
		xx := 2 * (p.CenterRel.X - 0.5)
		yy := 2 * (p.CenterRel.Y - 0.5)
		p.FinalRelPos = math.Vec3{
			X: speed * facX * leafSpread * (xx + 0.5*(r.Float32()-0.5)),
			Y: speed * facY * leafSpread * (yy + 0.5*(r.Float32()-0.5)),
			Z: a.Depth(speed * facZ * 7 * ((r.Float32() - 0.5) / 0.5)),
		}
		p.FinalRotAngle = 150

		p.Move = polygon.Window{
			Start:    p.CenterRel.Y*(1-leafFade-leafRandYMax) + leafRandYMax*r.Float32(),
			Duration: 1,
		}
		p.Fade = polygon.Window{
			Start:    min(p.Move.Start+leafLife, 1-leafFade),
			Duration: leafFade,
		}
	}

	return polygon.Behavior{
		Fade:        polygon.FadePerPolygon,
		Lighting:    true,
		DepthTest:   true,
		Perspective: polygon.PerspectivePolygon,
	}, nil
}
