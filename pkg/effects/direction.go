package effects

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Direction is a screen direction used by directional effects.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionRandom
	DirectionAuto
)

var directionNames = [...]string{
	DirectionUp:     "up",
	DirectionDown:   "down",
	DirectionLeft:   "left",
	DirectionRight:  "right",
	DirectionRandom: "random",
	DirectionAuto:   "auto",
}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection resolves a direction name. The empty string means auto.
func ParseDirection(name string) (Direction, error) {
	if name == "" {
		return DirectionAuto, nil
	}
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q", polygon.ErrInvalidParams, name)
}

// Resolve turns Random and Auto into a concrete direction for a. Auto
// points away from the icon when away is set and towards it otherwise.
func (d Direction) Resolve(a *polygon.Animation, away bool) Direction {
	switch d {
	case DirectionRandom:
		return Direction(a.Rand().IntN(4))
	case DirectionAuto:
		d = awayFromIcon(a)
		if !away {
			d = d.opposite()
		}
	}
	return d
}

func awayFromIcon(a *polygon.Animation) Direction {
	icon := a.Icon()
	if ev := a.Event(); ev == polygon.EventMinimize || ev == polygon.EventUnminimize {
		// minimize always travels vertically
		if icon.Y1 < a.Geometry().Screen.H()-icon.Y1 {
			return DirectionDown
		}
		return DirectionUp
	}

	out := a.Geometry().Output
	dx := float32(out.X1+out.W()/2-icon.X1) / float32(max(out.W(), 1))
	dy := float32(out.Y1+out.H()/2-icon.Y1) / float32(max(out.H(), 1))
	if math32.Abs(dy) > math32.Abs(dx) {
		if dy > 0 {
			return DirectionDown
		}
		return DirectionUp
	}
	if dx > 0 {
		return DirectionRight
	}
	return DirectionLeft
}

func (d Direction) opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return d
}
