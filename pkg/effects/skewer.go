package effects

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// SkewerDirection lists the directions skewer pieces may fly in.
type SkewerDirection int

const (
	SkewerLeft SkewerDirection = iota
	SkewerRight
	SkewerLeftRight
	SkewerUp
	SkewerDown
	SkewerUpDown
	SkewerIn
	SkewerOut
	SkewerInOut
	SkewerRandom
)

var skewerNames = [...]string{
	SkewerLeft:      "left",
	SkewerRight:     "right",
	SkewerLeftRight: "left-right",
	SkewerUp:        "up",
	SkewerDown:      "down",
	SkewerUpDown:    "up-down",
	SkewerIn:        "in",
	SkewerOut:       "out",
	SkewerInOut:     "in-out",
	SkewerRandom:    "random",
}

func (d SkewerDirection) String() string {
	if d >= 0 && int(d) < len(skewerNames) {
		return skewerNames[d]
	}
	return fmt.Sprintf("SkewerDirection(%d)", int(d))
}

// ParseSkewerDirection resolves a skewer direction name.
func ParseSkewerDirection(name string) (SkewerDirection, error) {
	for i, n := range skewerNames {
		if n == name {
			return SkewerDirection(i), nil
		}
	}
	return 0, fmt.Errorf("%w: skewer direction %q", polygon.ErrInvalidParams, name)
}

type skewerMove int

const (
	moveLeft skewerMove = iota
	moveRight
	moveUp
	moveDown
	moveIn
	moveOut
)

// moves returns the single moves a direction picks from.
func (d SkewerDirection) moves(r *rand.Rand) []skewerMove {
	switch d {
	case SkewerLeft:
		return []skewerMove{moveLeft}
	case SkewerRight:
		return []skewerMove{moveRight}
	case SkewerLeftRight:
		return []skewerMove{moveLeft, moveRight}
	case SkewerUp:
		return []skewerMove{moveUp}
	case SkewerDown:
		return []skewerMove{moveDown}
	case SkewerUpDown:
		return []skewerMove{moveUp, moveDown}
	case SkewerIn:
		return []skewerMove{moveIn}
	case SkewerOut:
		return []skewerMove{moveOut}
	case SkewerInOut:
		return []skewerMove{moveIn, moveOut}
	case SkewerRandom:
		return SkewerDirection(r.IntN(int(SkewerInOut))).moves(r)
	}
	return nil
}

// Skewer shoots the pieces off screen one after another in a random order.
type Skewer struct {
	Direction    SkewerDirection
	Strategy     polygon.Strategy // rectangles or hexagons
	GridX, GridY int
	Thickness    float32 // pixels
	Rotation     float32 // degrees
}

// NewSkewer builds a Skewer from its configuration.
func NewSkewer(cfg config.SkewerConfig) (*Skewer, error) {
	d, err := ParseSkewerDirection(cfg.Direction)
	if err != nil {
		return nil, err
	}
	s, err := polygon.ParseStrategy(cfg.Tessellation)
	if err != nil {
		return nil, err
	}
	if s == polygon.StrategyGlass {
		return nil, fmt.Errorf("%w: skewer cannot use %s tessellation", polygon.ErrInvalidParams, s)
	}
	return &Skewer{
		Direction: d,
		Strategy:  s,
		GridX:     cfg.GridX,
		GridY:     cfg.GridY,
		Thickness: cfg.Thickness,
		Rotation:  float32(cfg.Rotation),
	}, nil
}

func (*Skewer) Name() string            { return "skewer" }
func (*Skewer) DurationFactor() float32 { return 1.67 }

// Setup implements polygon.Effect.
func (s *Skewer) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	err := a.Tessellate(s.Strategy, polygon.TessParams{
		GridX:     s.GridX,
		GridY:     s.GridY,
		Thickness: s.Thickness,
	})
	if err != nil {
		return polygon.Behavior{}, err
	}

	r := a.Rand()
	moves := s.Direction.moves(r)
	sw := float32(a.ScreenWidth())
	sh := float32(a.Geometry().Screen.H())
	maxZ := a.Depth(float32(int(reach(a))))

	polys := a.Polygons()
	n := len(polys)
	// start slots are drawn without replacement
	slots := make([]int, n)
	for i := range slots {
		slots[i] = i
	}
	last := n - 1

	for _, p := range polys {
		if len(moves) > 0 {
			switch moves[r.IntN(len(moves))] {
			case moveLeft:
				p.FinalRelPos.X = -sw
				p.RotAxis.X = s.Rotation
			case moveRight:
				p.FinalRelPos.X = sw
				p.RotAxis.X = s.Rotation
			case moveUp:
				p.FinalRelPos.Y = -sh
				p.RotAxis.Y = s.Rotation
			case moveDown:
				p.FinalRelPos.Y = sh
				p.RotAxis.Y = s.Rotation
			case moveIn:
				p.FinalRelPos.Z = -maxZ
				p.RotAxis.X, p.RotAxis.Y = s.Rotation, s.Rotation
			case moveOut:
				p.FinalRelPos.Z = maxZ
				p.RotAxis.X, p.RotAxis.Y = s.Rotation, s.Rotation
			}
			p.FinalRotAngle = s.Rotation
		}

		k := int(r.Float32() * float32(last))
		p.Move.Start = 0.8 / float32(n) * float32(slots[k])
		p.Move.Duration = 1 - p.Move.Start
		p.Fade.Start = p.Move.Start + 0.2
		p.Fade.Duration = 1 - p.Fade.Start
		slots[k] = slots[last]
		last--
	}

	return polygon.Behavior{
		Law:         polygon.LawFunc(skewerStep),
		Fade:        polygon.FadePerPolygon,
		Lighting:    true,
		DepthTest:   true,
		Perspective: polygon.PerspectiveWindow,
	}, nil
}

// skewerStep accelerates pieces quadratically.
func skewerStep(p *polygon.Polygon, forward float32) {
	mp := p.Move.Progress(forward)
	polygon.Interpolate(p, mp*mp)
}
