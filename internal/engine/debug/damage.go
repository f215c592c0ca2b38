// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/polyfx/pkg/math"

// Outline returns the corners of r as a closed line loop, inset by half a
// pixel so the stroke stays inside the damaged area.
func Outline(r math.Rect) []math.Vec2 {
	if r.Empty() {
		return nil
	}
	x1, y1 := float32(r.X1)+0.5, float32(r.Y1)+0.5
	x2, y2 := float32(r.X2)-0.5, float32(r.Y2)-0.5
	return []math.Vec2{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

// DamageTrail remembers the damage boxes of the last few frames.
type DamageTrail struct {
	rects []math.Rect
	next  int
	full  bool
	total math.Rect
}

// NewDamageTrail keeps up to n boxes.
func NewDamageTrail(n int) *DamageTrail {
	return &DamageTrail{rects: make([]math.Rect, max(n, 1))}
}

// Push records one frame's damage.
func (t *DamageTrail) Push(r math.Rect) {
	t.rects[t.next] = r
	t.next = (t.next + 1) % len(t.rects)
	if t.next == 0 {
		t.full = true
	}
	t.total = t.total.Union(r)
}

// Rects returns the remembered boxes, oldest first.
func (t *DamageTrail) Rects() []math.Rect {
	if !t.full {
		return append([]math.Rect(nil), t.rects[:t.next]...)
	}
	return append(append([]math.Rect(nil), t.rects[t.next:]...), t.rects[:t.next]...)
}

// Total returns the union of every box pushed since the last Reset.
func (t *DamageTrail) Total() math.Rect { return t.total }

// Reset forgets all boxes.
func (t *DamageTrail) Reset() {
	clear(t.rects)
	t.next, t.full = 0, false
	t.total = math.Rect{}
}
