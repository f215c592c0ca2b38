package polygon

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
)

// tessellateGlass cuts the rect into radial shards. Angles grow clockwise
// on screen since y points down.
func tessellateGlass(rect math.Rect, mult, tiers int, thickness float32, rnd *rand.Rand) (*Mesh, error) {
	if mult <= 0 || tiers <= 0 {
		return nil, fmt.Errorf("%w: %d spokes per quadrant, %d tiers", ErrInvalidParams, mult, tiers)
	}
	w, h := rect.W(), rect.H()
	if w < MinGlass || h < MinGlass {
		return nil, fmt.Errorf("%w: %dx%d window, glass needs %dx%d", ErrWindowTooSmall, w, h, MinGlass, MinGlass)
	}

	numSpokes := 4 * mult
	halfW, halfH := float32(w)/2, float32(h)/2
	center := math.Vec2{X: float32(rect.X1) + halfW, Y: float32(rect.Y1) + halfH}

	a0 := math32.Atan(halfH / halfW)
	corners := [4]float32{a0, math32.Pi - a0, math32.Pi + a0, 2*math32.Pi - a0}

	spokes := make([][]math.Vec2, numSpokes)
	for i := range spokes {
		quadrant := i / mult
		dir := corners[quadrant]
		if i%mult != 0 {
			span := corners[(quadrant+1)%4] - corners[quadrant]
			if span < 0 {
				span += 2 * math32.Pi
			}
			dir += float32(i%mult) * span / float32(mult)
			if dir > 2*math32.Pi {
				dir -= 2 * math32.Pi
			}
			dir += span * randFloat(rnd) / 3
		}

		length := spokeLength(dir, halfW, halfH)
		spokes[i] = make([]math.Vec2, tiers)
		for j := range spokes[i] {
			d := length * float32(j+1) / float32(tiers)
			spokes[i][j] = math.Vec2{
				X: center.X + d*math32.Cos(dir),
				Y: center.Y + d*math32.Sin(dir),
			}
		}
	}

	halfThick := thickness / 2
	polys := make([]*Polygon, 0, numSpokes*tiers)
	for i := 0; i < numSpokes; i++ {
		cur, next := spokes[i], spokes[(i+1)%numSpokes]
		for j := 0; j < tiers; j++ {
			var pts []math.Vec2
			if j == 0 {
				pts = []math.Vec2{next[0], cur[0], center}
			} else {
				pts = []math.Vec2{next[j-1], next[j], cur[j], cur[j-1]}
			}

			var c math.Vec2
			for _, pt := range pts {
				c = c.Add(pt)
			}
			c = c.Scale(1 / float32(len(pts)))

			outline := make([]math.Vec2, len(pts))
			for k, pt := range pts {
				outline[k] = pt.Sub(c)
			}
			p := NewPolygon(outline, c.Vec3(-halfThick), halfThick)
			p.CenterRel = relativeTo(rect, p.CenterStart)
			polys = append(polys, p)
		}
	}

	return NewMesh(polys, thickness), nil
}

// spokeLength returns the distance from the rect center to its edge in
// direction dir.
func spokeLength(dir, halfW, halfH float32) float32 {
	topBottom := math32.Abs(halfH / math32.Sin(dir))
	leftRight := math32.Abs(halfW / math32.Cos(dir))
	return math32.Min(topBottom, leftRight)
}

func randFloat(r *rand.Rand) float32 {
	if r == nil {
		return rand.Float32()
	}
	return r.Float32()
}
