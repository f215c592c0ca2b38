package effects

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Airplane folds the window into a paper airplane and flies it away.
type Airplane struct {
	PathLength   float32
	FlyToTaskbar bool // minimize flies to the icon instead of off screen
}

// NewAirplane builds an Airplane from its configuration.
func NewAirplane(cfg config.AirplaneConfig) *Airplane {
	return &Airplane{PathLength: cfg.PathLength, FlyToTaskbar: cfg.FlyToTaskbar}
}

func (*Airplane) Name() string { return "airplane" }

// DurationFactor stretches the animation with the length of the flight.
func (ap *Airplane) DurationFactor() float32 { return 1.82 * (2 + ap.PathLength) }

// Folding and flight phases in forward progress.
const (
	foldFlapsEnd = 0.19
	foldWings    = 0.38
	flyStart     = 0.58
	flyTurn      = 0.09
	flyDuration  = 0.41
)

// airplanePiece is stored in Polygon.Params. The fold pivots A and B are
// applied in the model transform after the fly rotation.
type airplanePiece struct {
	flapDuration  float32
	wingsDuration float32

	axisA, offsetA math.Vec3
	finalA, angleA float32
	axisB, offsetB math.Vec3
	finalB, angleB float32

	flyRotation math.Vec3 // degrees about x, y and z
	flyScale    float32
	finalScale  float32
}

// Setup implements polygon.Effect.
func (ap *Airplane) Setup(a *polygon.Animation) (polygon.Behavior, error) {
	rect := a.Geometry().Input
	if rect.Empty() {
		return polygon.Behavior{}, polygon.ErrWindowTooSmall
	}

	w := float32(rect.W())
	h := float32(rect.H())
	h2, h3, h4, h6 := h/2, h/3, h/4, h/6
	center := math.Vec3{X: float32(rect.X1) + h2, Y: float32(rect.Y1) + h2}
	finalScale := 6 * (w / (float32(a.ScreenWidth()) / 2))

	// The eight faces of the folded sheet, ordered top-left, bottom-left,
	// bottom-right, top-right around the center of the nose crease.
	outlines := [8][4]math.Vec2{
		{{X: -h2, Y: 0}, {X: -h2, Y: h2}, {X: -h3, Y: h2}, {X: -h3, Y: h6}},
		{{X: -h3, Y: h6}, {X: -h3, Y: h2}, {X: 0, Y: h2}, {X: 0, Y: h2}},
		{{X: -h3, Y: h6}, {X: 0, Y: h2}, {X: w - h2, Y: h2}, {X: w - h2, Y: h6}},
		{{X: -h2, Y: 0}, {X: -h3, Y: h6}, {X: w - h2, Y: h6}, {X: w - h2, Y: 0}},
		{{X: -h3, Y: -h6}, {X: -h2, Y: 0}, {X: w - h2, Y: 0}, {X: w - h2, Y: -h6}},
		{{X: 0, Y: -h2}, {X: -h3, Y: -h6}, {X: w - h2, Y: -h6}, {X: w - h2, Y: -h2}},
		{{X: -h3, Y: -h2}, {X: -h3, Y: -h6}, {X: -h3, Y: -h6}, {X: 0, Y: -h2}},
		{{X: -h2, Y: -h2}, {X: -h2, Y: 0}, {X: -h3, Y: -h6}, {X: -h3, Y: -h2}},
	}

	polys := make([]*polygon.Polygon, len(outlines))
	for i := range outlines {
		p := polygon.NewPolygon(outlines[i][:], center, 0)
		piece := &airplanePiece{
			flapDuration:  foldFlapsEnd,
			wingsDuration: foldFlapsEnd,
			axisA:         math.Vec3{X: 1},
			finalScale:    finalScale,
		}

		switch i {
		case 0:
			p.RotAxisOffset = math.Vec3{X: -h4, Y: h4}
			p.RotAxis = math.Vec3{X: 1, Y: 1}
			p.FinalRotAngle = 179.5
			piece.finalA = 84
		case 1:
			p.RotAxisOffset = math.Vec3{X: -h4, Y: h4}
			p.RotAxis = math.Vec3{X: 1, Y: 1}
			p.FinalRotAngle = 179.5
			piece.finalA = 84
			piece.offsetB, piece.axisB, piece.finalB = math.Vec3{Y: h6}, math.Vec3{X: 1}, -84
		case 2:
			piece.flapDuration = 0
			piece.finalA = 84
			piece.offsetB, piece.axisB, piece.finalB = math.Vec3{Y: h6}, math.Vec3{X: 1}, -84
		case 3:
			piece.flapDuration = 0
			piece.wingsDuration = 0
			piece.finalA = 84
		case 4:
			piece.flapDuration = 0
			piece.wingsDuration = 0
			piece.finalA = -84
		case 5:
			piece.flapDuration = 0
			piece.finalA = -84
			piece.offsetB, piece.axisB, piece.finalB = math.Vec3{Y: -h6}, math.Vec3{X: 1}, 84
		case 6:
			p.RotAxisOffset = math.Vec3{X: -h4, Y: -h4}
			p.RotAxis = math.Vec3{X: 1, Y: -1}
			p.FinalRotAngle = -179.5
			piece.finalA = -84
			piece.offsetB, piece.axisB, piece.finalB = math.Vec3{Y: -h6}, math.Vec3{X: 1}, 84
		case 7:
			p.RotAxisOffset = math.Vec3{X: -h4, Y: -h4}
			p.RotAxis = math.Vec3{X: 1, Y: -1}
			p.FinalRotAngle = -179.5
			piece.finalA = -84
		}
		p.Params = piece
		polys[i] = p
	}
	a.SetPolygons(polys, 0)

	fade := float32(0.3)
	if ap.PathLength >= 1 {
		fade /= ap.PathLength
	}
	return polygon.Behavior{
		Law:                polygon.LawFunc(ap.flight(a)),
		Transform:          airplaneTransform,
		Fade:               polygon.FadeGlobal,
		GlobalFadeDuration: fade,
		Lighting:           true,
		DepthTest:          true,
		Perspective:        polygon.PerspectivePolygon,
		FullScreenBounds:   true,
	}, nil
}

func phase(forward, start, duration float32) float32 {
	if duration <= 0 {
		return 0
	}
	return polygon.Window{Start: start, Duration: duration}.Progress(forward)
}

// flight returns the law for both phases: folding before flyStart and flying
// along a sine path afterwards.
func (ap *Airplane) flight(a *polygon.Animation) func(p *polygon.Polygon, forward float32) {
	sw := float32(a.ScreenWidth())
	sh := float32(a.Geometry().Screen.H())
	icon := a.Icon()
	iconX := float32(icon.X1) + float32(icon.W())/2
	iconY := float32(icon.Y1) + float32(icon.H())/2
	ev := a.Event()
	toIcon := ev == polygon.EventOpen || ev == polygon.EventClose ||
		(ev == polygon.EventMinimize || ev == polygon.EventUnminimize) && ap.FlyToTaskbar
	arrival := ev == polygon.EventOpen || ev == polygon.EventUnminimize
	pathLen := ap.PathLength

	return func(p *polygon.Polygon, forward float32) {
		piece := p.Params.(*airplanePiece)
		cs := p.CenterStart

		if forward < flyStart {
			p.Center = cs
			p.RotAngle = phase(forward, 0, piece.flapDuration) * p.FinalRotAngle
			piece.angleA = phase(forward, foldFlapsEnd, foldFlapsEnd) * piece.finalA
			piece.angleB = phase(forward, foldWings, piece.wingsDuration) * piece.finalB
			piece.flyRotation = math.Vec3{}
			piece.flyScale = 0
			return
		}

		turn := phase(forward, flyStart, flyTurn)
		mp := phase(forward, flyStart+0.01, flyDuration)
		p.RotAngle = p.FinalRotAngle
		piece.angleA = piece.finalA
		piece.angleB = piece.finalB

		theta := mp * -math32.Pi / 2 * pathLen
		fly := math.Vec3{X: sw * 0.4 * math32.Sin(2*theta)}
		var towardIcon float32
		if toIcon {
			sign := float32(1)
			if arrival {
				sign = -1
			}
			end := sw * 0.4 * math32.Sin(2*-math32.Pi/2*pathLen)
			towardIcon = (iconX - (cs.X + sign*end)) * mp
			fly.Y = (iconY - cs.Y) * math32.Sin(mp*math32.Pi/2)
		} else {
			amp := float32(0.4)
			if cs.Y < sh*0.33 || cs.Y > sh*0.66 {
				amp = 0.6
			}
			fly.Y = sh * amp * math32.Sin(theta/3.4)
			if cs.Y < sh*0.33 {
				fly.Y = -fly.Y
			}
		}

		roll := ((math32.Atan(2)+math32.Pi/2)*math32.Sin(theta)-math32.Pi/2)*180/math32.Pi + 90
		if ev == polygon.EventMinimize || ev == polygon.EventClose {
			roll = -roll
		} else if arrival {
			fly.X = -fly.X
		}

		piece.flyRotation = math.Vec3{X: turn * 90, Y: turn * 10, Z: roll}
		p.Center = math.Vec3{X: cs.X + fly.X + towardIcon, Y: cs.Y + fly.Y, Z: cs.Z}
		piece.flyScale = mp * piece.finalScale
	}
}

// airplaneTransform applies the fly attitude, shrinks the plane with the
// distance and folds the A and B creases.
func airplaneTransform(p *polygon.Polygon, _ float32) math.Mat4 {
	piece, ok := p.Params.(*airplanePiece)
	if !ok {
		return math.Identity()
	}
	s := 1 / (1 + piece.flyScale)
	return math.Rotate(piece.flyRotation.X, math.Vec3{X: 1}).Chain(
		math.Rotate(-piece.flyRotation.Y, math.Vec3{Y: 1}),
		math.Rotate(piece.flyRotation.Z, math.Vec3{Z: 1}),
		math.Scale(s, s, s),
		math.TranslateVec(piece.offsetA),
		math.Rotate(piece.angleA, piece.axisA),
		math.TranslateVec(piece.offsetA.Negate()),
		math.TranslateVec(piece.offsetB),
		math.Rotate(piece.angleB, piece.axisB),
		math.TranslateVec(piece.offsetB.Negate()),
	)
}
