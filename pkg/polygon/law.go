package polygon

import "github.com/chewxy/math32"

// Law advances one polygon to the given forward progress. Implementations
// must be pure in forward and the polygon's static fields so that frames
// can be dropped.
type Law interface {
	Step(p *Polygon, forward float32)
}

// LawFunc adapts a function to Law.
type LawFunc func(p *Polygon, forward float32)

// Step calls f.
func (f LawFunc) Step(p *Polygon, forward float32) { f(p, forward) }

// LinearLaw interpolates position and angle towards the final state over
// the polygon's move window.
type LinearLaw struct{}

// Step implements Law.
func (LinearLaw) Step(p *Polygon, forward float32) {
	Interpolate(p, p.Move.Progress(forward))
}

// DeceleratingLaw is LinearLaw shaped by Decelerate.
type DeceleratingLaw struct{}

// Step implements Law.
func (DeceleratingLaw) Step(p *Polygon, forward float32) {
	Interpolate(p, Decelerate(p.Move.Progress(forward)))
}

// Interpolate places p at fraction mp of the way to its final state.
func Interpolate(p *Polygon, mp float32) {
	p.Center = p.CenterStart.Add(p.FinalRelPos.Scale(mp))
	p.RotAngle = p.RotAngleStart + mp*p.FinalRotAngle
}

// Phase is one segment of a PhasedLaw, active from Start onwards.
type Phase struct {
	Start float32
	Step  LawFunc
}

// PhasedLaw runs the last phase whose Start has been reached. The first
// phase also covers progress before its start. Phases must be sorted by
// Start.
type PhasedLaw struct {
	Phases []Phase
}

// Step implements Law.
func (l PhasedLaw) Step(p *Polygon, forward float32) {
	if len(l.Phases) == 0 {
		return
	}
	active := l.Phases[0]
	for _, ph := range l.Phases[1:] {
		if forward < ph.Start {
			break
		}
		active = ph
	}
	active.Step(p, forward)
}

// Decelerate accelerates forward progress, which reads as deceleration when
// the event plays in reverse. Decelerate(0) is 0 and Decelerate(1) is 1.
func Decelerate(progress float32) float32 {
	return DecelerateCustom(progress, 0.5, 0.75)
}

// DecelerateCustom maps progress through the sigmoid segment [minx, maxx].
func DecelerateCustom(progress, minx, maxx float32) float32 {
	const slope = 8
	x := 1 - progress
	lo := sigmoid(minx, slope)
	hi := sigmoid(maxx, slope)
	return 1 - (sigmoid(minx+x*(maxx-minx), slope)-lo)/(hi-lo)
}

func sigmoid(x, s float32) float32 {
	return 1 / (1 + math32.Exp(-s*(x-0.5)))
}
