package effects

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Explode shatters the window and throws the pieces towards the viewer.
type Explode struct {
	Strategy     polygon.Strategy
	GridX, GridY int
	Spokes       int
	Tiers        int
	Thickness    float32 // pixels
}

// NewExplode builds an Explode from its configuration.
func NewExplode(cfg config.ExplodeConfig) (*Explode, error) {
	s, err := polygon.ParseStrategy(cfg.Tessellation)
	if err != nil {
		return nil, err
	}
	return &Explode{
		Strategy:  s,
		GridX:     cfg.GridX,
		GridY:     cfg.GridY,
		Spokes:    cfg.Spokes,
		Tiers:     cfg.Tiers,
		Thickness: cfg.Thickness,
	}, nil
}

func (*Explode) Name() string            { return "explode" }
func (*Explode) DurationFactor() float32 { return 1 }

// Setup implements polygon.Effect.
func (e *Explode) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	err := a.Tessellate(e.Strategy, polygon.TessParams{
		GridX:           e.GridX,
		GridY:           e.GridY,
		SpokeMultiplier: e.Spokes,
		Tiers:           e.Tiers,
		Thickness:       e.Thickness,
	})
	if err != nil {
		return polygon.Behavior{}, err
	}

	r := a.Rand()
	sqrt2 := math32.Sqrt(2)
	for _, p := range a.Polygons() {
		p.RotAxis = math.Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}

		speed := reach(a) / 10 * (0.2 + r.Float32())
		xx := 2 * (p.CenterRel.X - 0.5)
		yy := 2 * (p.CenterRel.Y - 0.5)
		x := speed * 2 * (xx + 0.5*(r.Float32()-0.5))
		y := speed * 2 * (yy + 0.5*(r.Float32()-0.5))

		// pieces near the middle fly further out of the screen
		dist := math32.Sqrt(xx*xx+yy*yy) / sqrt2
		z := speed * 10 * (0.1 + r.Float32()*math32.Sqrt(max(0, 1-dist)))

		p.FinalRelPos = math.Vec3{X: x, Y: y, Z: a.Depth(z)}
		p.FinalRotAngle = r.Float32()*540 - 270
	}

	return polygon.Behavior{
		Fade:                     polygon.FadeGlobal,
		GlobalFadeDuration:       0.3,
		BackAndSidesFadeDuration: 0.2,
		Lighting:                 true,
		DepthTest:                true,
		Perspective:              polygon.PerspectivePolygon,
	}, nil
}
