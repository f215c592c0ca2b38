package polygon

import (
	"fmt"

	"github.com/Faultbox/polyfx/pkg/math"
)

// TexMatrix maps screen coordinates to texture coordinates:
//
//	tx = XX*x + XY*y + X0
//	ty = YX*x + YY*y + Y0
type TexMatrix struct {
	XX, YX float32
	XY, YY float32
	X0, Y0 float32
}

// Apply maps (x, y) to texture space.
func (m TexMatrix) Apply(x, y float32) math.Vec2 {
	if m.XY != 0 || m.YX != 0 {
		return math.Vec2{X: m.XX*x + m.XY*y + m.X0, Y: m.YX*x + m.YY*y + m.Y0}
	}
	return math.Vec2{X: m.XX*x + m.X0, Y: m.YY*y + m.Y0}
}

// Clip is one clip rectangle of a frame with its texture matrix and the
// cached texture coordinates of the polygons it intersects.
type Clip struct {
	Box    math.Rect
	BoxF   math.Box // Box, grown slightly when it is the window's input rect
	Matrix TexMatrix

	// IntersectsAll is set for the content rect clip. TexCoords then holds
	// 2*Sides coordinates per polygon in mesh order; otherwise Hits lists
	// the polygons whose bounds overlap Box.
	IntersectsAll bool
	TexCoords     []math.Vec2
	Hits          []ClipHit

	resolved bool
}

// ClipHit pairs a polygon with its coordinates for one clip: front vertex k
// at k, its mirrored back vertex at 2*Sides-1-k.
type ClipHit struct {
	Polygon   *Polygon
	TexCoords []math.Vec2
}

// ClipIntersector keeps the ordered clip list of an animation across
// frames. A submitted clip that matches the cached one at the same position
// reuses its coordinates; the first mismatch drops the cached tail.
type ClipIntersector struct {
	content  math.Rect
	input    math.Rect
	polygons []*Polygon
	front    int

	clips   []*Clip
	passed  int
	updated bool

	groups       []int // last clip index drawn by each draw call
	firstUndrawn int
	drawCalls    int

	recomputed int
}

// NewClipIntersector creates an intersector over polygons. content is the
// window's content rect and input its decorated rect.
func NewClipIntersector(content, input math.Rect, polygons []*Polygon) *ClipIntersector {
	ci := &ClipIntersector{content: content, input: input, polygons: polygons}
	for _, p := range polygons {
		ci.front += p.Sides
	}
	return ci
}

// BeginFrame starts clip submission for a new frame.
func (ci *ClipIntersector) BeginFrame() {
	ci.passed = 0
	ci.updated = false
}

// BeginPaint resets the draw cursor before the frame's draw calls.
func (ci *ClipIntersector) BeginPaint() {
	ci.drawCalls = 0
	ci.firstUndrawn = 0
}

// Add submits clip boxes sharing one texture matrix. Empty boxes are
// ignored.
func (ci *ClipIntersector) Add(boxes []math.Rect, m TexMatrix) {
	valid := make([]math.Rect, 0, len(boxes))
	for _, b := range boxes {
		if !b.Empty() {
			valid = append(valid, b)
		}
	}
	if len(valid) == 0 {
		return
	}

	if ci.cachedMatch(valid, m) {
		ci.passed += len(valid)
		return
	}

	for _, c := range ci.clips[ci.passed:] {
		c.Hits, c.TexCoords = nil, nil
	}
	ci.clips = ci.clips[:ci.passed]

	for _, b := range valid {
		c := &Clip{Box: b, BoxF: b.Box(), Matrix: m}
		if b == ci.input {
			c.BoxF = c.BoxF.Grow(0.1)
		}
		ci.clips = append(ci.clips, c)
	}
	ci.passed += len(valid)
	ci.updated = true
}

func (ci *ClipIntersector) cachedMatch(boxes []math.Rect, m TexMatrix) bool {
	if ci.passed+len(boxes) > len(ci.clips) {
		return false
	}
	for i, b := range boxes {
		c := ci.clips[ci.passed+i]
		if c.Box != b || c.Matrix != m {
			return false
		}
	}
	return true
}

// Resolve computes coordinates for every clip from index from onwards that
// has none cached yet.
func (ci *ClipIntersector) Resolve(from int) {
	for _, c := range ci.clips[from:] {
		if c.resolved {
			continue
		}
		ci.resolve(c)
		c.resolved = true
		ci.recomputed++
	}
}

func (ci *ClipIntersector) resolve(c *Clip) {
	if c.Box == ci.content {
		c.IntersectsAll = true
		c.TexCoords = make([]math.Vec2, 2*ci.front)
		off := 0
		for _, p := range ci.polygons {
			fillTexCoords(p, c.Matrix, c.TexCoords[2*off:2*(off+p.Sides)])
			off += p.Sides
		}
		return
	}

	cb := c.Box.Box()
	for _, p := range ci.polygons {
		pb := p.Bounds.Offset(p.CenterStart.X, p.CenterStart.Y)
		if !pb.Overlaps(cb) {
			continue
		}
		hit := ClipHit{Polygon: p, TexCoords: make([]math.Vec2, 2*p.Sides)}
		fillTexCoords(p, c.Matrix, hit.TexCoords)
		c.Hits = append(c.Hits, hit)
	}
}

func fillTexCoords(p *Polygon, m TexMatrix, dst []math.Vec2) {
	for k, v := range p.Front() {
		tc := m.Apply(v.X+p.CenterStart.X, v.Y+p.CenterStart.Y)
		dst[k] = tc
		dst[p.back(k)] = tc
	}
}

// NextGroup returns the clips the next draw call of this frame consumes.
// After new clips were submitted the group runs to the end of the list;
// otherwise it repeats the grouping recorded when the clips were first
// drawn. It panics with ErrProtocol when no grouping was recorded.
func (ci *ClipIntersector) NextGroup() []*Clip {
	if ci.firstUndrawn >= len(ci.clips) {
		return nil
	}
	call := ci.drawCalls
	ci.drawCalls++

	var last int
	if ci.updated {
		ci.Resolve(ci.firstUndrawn)
		last = len(ci.clips) - 1
		ci.groups = append(ci.groups[:min(call, len(ci.groups))], last)
	} else {
		if call >= len(ci.groups) {
			panic(fmt.Errorf("%w: draw call %d has no recorded clip group (%d groups)", ErrProtocol, call, len(ci.groups)))
		}
		last = min(ci.groups[call], len(ci.clips)-1)
	}

	group := ci.clips[ci.firstUndrawn : last+1]
	ci.firstUndrawn = last + 1
	return group
}

// Trim drops clips submitted during this frame that no draw call consumed.
func (ci *ClipIntersector) Trim() {
	if ci.updated && ci.drawCalls == 0 {
		ci.clips = ci.clips[:ci.firstUndrawn]
	}
}

// Translate shifts the window rects and drops the cache.
func (ci *ClipIntersector) Translate(dx, dy int) {
	ci.content = ci.content.Translate(dx, dy)
	ci.input = ci.input.Translate(dx, dy)
	ci.Reset()
}

// Reset drops every clip.
func (ci *ClipIntersector) Reset() {
	ci.clips = nil
	ci.groups = nil
	ci.passed = 0
	ci.firstUndrawn = 0
	ci.drawCalls = 0
	ci.updated = false
}

// Clips returns the cached clips.
func (ci *ClipIntersector) Clips() []*Clip { return ci.clips }

// Recomputed returns how many clips have had coordinates computed.
func (ci *ClipIntersector) Recomputed() int { return ci.recomputed }
