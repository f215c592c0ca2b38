package effects

import (
	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Glide tilts the whole window back and slides it into the screen.
type Glide struct {
	AwayPosition float32 // fraction of the camera distance
	AwayAngle    float32 // degrees
	Thickness    float32 // pixels; zero glides the shadow along
}

// NewGlide builds a Glide from its configuration.
func NewGlide(cfg config.GlideConfig) *Glide {
	return &Glide{
		AwayPosition: cfg.AwayPosition,
		AwayAngle:    cfg.AwayAngle,
		Thickness:    cfg.Thickness,
	}
}

func (*Glide) Name() string            { return "glide" }
func (*Glide) DurationFactor() float32 { return 1.82 }

// Setup implements polygon.Effect.
func (g *Glide) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	a.SetIncludeShadows(g.Thickness < 1e-5)
	err := a.Tessellate(polygon.StrategyRectangles, polygon.TessParams{
		GridX:     1,
		GridY:     1,
		Thickness: g.Thickness,
	})
	if err != nil {
		return polygon.Behavior{}, err
	}

	z := a.Depth(g.AwayPosition * reach(a))
	for _, p := range a.Polygons() {
		p.RotAxis = math.Vec3{X: 1}
		p.FinalRelPos = math.Vec3{Z: z}
		p.FinalRotAngle = g.AwayAngle
	}

	return polygon.Behavior{
		Fade:                     polygon.FadeGlobal,
		GlobalFadeDuration:       1,
		BackAndSidesFadeDuration: 0.2,
		Decelerate:               true,
		Lighting:                 true,
		Perspective:              polygon.PerspectivePolygon,
	}, nil
}
