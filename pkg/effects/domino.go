package effects

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Domino knocks the window over as a field of domino pieces. In razr mode
// the pieces instead flip over on a hinge like a folding phone.
type Domino struct {
	Direction Direction
	razr      bool
}

// NewDomino builds a Domino from its configuration.
func NewDomino(cfg config.DominoConfig) (*Domino, error) {
	d, err := ParseDirection(cfg.Direction)
	if err != nil {
		return nil, err
	}
	return &Domino{Direction: d}, nil
}

// NewRazr builds the hinged variant of Domino.
func NewRazr(cfg config.DominoConfig) (*Domino, error) {
	d, err := NewDomino(cfg)
	if err != nil {
		return nil, err
	}
	d.razr = true
	return d, nil
}

const (
	dominoGrid     = 20
	dominoMinCell  = 30
	riseTimeRandom = 0.2
)

func (d *Domino) Name() string {
	if d.razr {
		return "razr"
	}
	return "domino"
}

func (*Domino) DurationFactor() float32 { return 1.25 }

// Setup implements polygon.Effect.
func (d *Domino) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	fall := d.Direction.Resolve(a, true)
	a.Logger().Debug("fall direction resolved",
		zap.String("effect", d.Name()),
		zap.Stringer("direction", fall))

	out := a.Geometry().Output
	w, h := float32(out.W()), float32(out.H())
	if w <= 0 || h <= 0 {
		return polygon.Behavior{}, fmt.Errorf("%w: output %dx%d", polygon.ErrWindowTooSmall, out.W(), out.H())
	}

	aspect := float32(1.25)
	if d.razr {
		aspect = 1
	}

	// size pieces so they are at least dominoMinCell along the fall edge
	var gx, gy, fallCells int
	var cellW, cellH float32
	vertical := fall == DirectionUp || fall == DirectionDown
	if vertical {
		minCell := min(float32(dominoMinCell), w)
		gx = dominoGrid
		if w/dominoGrid < minCell {
			gx = int(w / minCell)
		}
		cellW = w / float32(gx)
		gy = max(int(h/(cellW*aspect)), 1)
		cellH = h / float32(gy)
		fallCells = gy
	} else {
		minCell := min(float32(dominoMinCell), h)
		gy = dominoGrid
		if h/dominoGrid < minCell {
			gy = int(h / minCell)
		}
		cellH = h / float32(gy)
		gx = max(int(w/(cellH*aspect)), 1)
		cellW = w / float32(gx)
		fallCells = gx
	}

	thickness := min(cellW, cellH) / 3.5
	err := a.Tessellate(polygon.StrategyRectangles, polygon.TessParams{
		GridX:     gx,
		GridY:     gy,
		Thickness: thickness,
	})
	if err != nil {
		return polygon.Behavior{}, err
	}

	var axis math.Vec3
	var pos math.Vec3 // final offset of a piece lying flat, pixels
	offset := math.Vec3{Z: thickness / 2}
	halfW, halfH := cellW/2, cellH/2
	columns := gx
	switch fall {
	case DirectionDown:
		axis.X = -1
		if d.razr {
			offset.Y = -halfH
		} else {
			pos = math.Vec3{Y: -(halfH + thickness), Z: halfH - thickness/2}
		}
	case DirectionUp:
		axis.X = 1
		if d.razr {
			offset.Y = halfH
		} else {
			pos = math.Vec3{Y: halfH + thickness, Z: halfH - thickness/2}
		}
	case DirectionLeft:
		axis.Y = -1
		if d.razr {
			offset.X = halfW
		} else {
			pos = math.Vec3{X: halfW + thickness, Z: halfW - thickness/2}
		}
		columns = gy
	case DirectionRight:
		axis.Y = 1
		if d.razr {
			offset.X = -halfW
		} else {
			pos = math.Vec3{X: -(halfW + thickness), Z: halfW - thickness/2}
		}
		columns = gy
	}
	pos.Z = a.Depth(pos.Z)

	var rise, fade float32
	if d.razr {
		rise = (1 - riseTimeRandom) / float32(fallCells)
		fade = rise / 2
	} else {
		rise = 0.2
		fade = 0.18
	}

	seeds := make([]float32, columns)
	for i := range seeds {
		seeds[i] = a.Rand().Float32()
	}

	minDist := 1 / float32(fallCells) / 2
	for _, p := range a.Polygons() {
		p.RotAxis = axis
		p.FinalRelPos = pos

		// distance from the edge the fall starts at, and across the fall
		var startDist, across float32
		switch fall {
		case DirectionUp:
			startDist, across = p.CenterRel.Y, p.CenterRel.X
		case DirectionDown:
			startDist, across = 1-p.CenterRel.Y, p.CenterRel.X
		case DirectionLeft:
			startDist, across = p.CenterRel.X, p.CenterRel.Y
		case DirectionRight:
			startDist, across = 1-p.CenterRel.X, p.CenterRel.Y
		}
		col := min(max(int(across*float32(columns)), 0), columns-1)
		jitter := seeds[col] * riseTimeRandom

		mult := float32(1)
		if fallCells > 1 {
			mult = (startDist - minDist) / (1 - 2*minDist)
		}
		p.Move = polygon.Window{
			Start:    mult*(1-rise-riseTimeRandom) + jitter,
			Duration: rise,
		}
		if d.razr {
			p.Fade.Start = p.Move.Start + rise/2
			p.FinalRotAngle = -180
			p.RotAxisOffset = offset
		} else {
			p.Fade.Start = p.Move.Start + rise - jitter + 0.03
			p.FinalRotAngle = -90
		}
		p.Fade.Start = min(p.Fade.Start, 1-fade)
		p.Fade.Duration = fade
	}

	return polygon.Behavior{
		Fade:        polygon.FadePerPolygon,
		Lighting:    true,
		DepthTest:   true,
		Perspective: polygon.PerspectivePolygon,
	}, nil
}
