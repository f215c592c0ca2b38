package polygon

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/pkg/math"
)

// DefaultTimeStep is the progress quantum subtracted from the duration.
const DefaultTimeStep = 10 * time.Millisecond

// WindowGeometry describes the animated window. Input is the content rect
// plus decorations, Output additionally includes shadows.
type WindowGeometry struct {
	Content math.Rect
	Input   math.Rect
	Output  math.Rect
	Screen  math.Rect
}

// Output is the render target the damage box is projected onto.
type Output struct {
	Region     math.Rect
	ModelView  math.Mat4
	Projection math.Mat4
}

// Options configures a new Animation.
type Options struct {
	Geometry WindowGeometry
	Event    Event
	Duration time.Duration
	TimeStep time.Duration // zero means DefaultTimeStep
	Icon     math.Rect
	Opacity  float32 // window opacity, zero means opaque
	Rand     *rand.Rand
	Logger   *zap.Logger
}

// TransformFunc returns an extra model transform applied between the
// polygon's depth scaling and its rotation.
type TransformFunc func(p *Polygon, forward float32) math.Mat4

// Behavior is what an effect's Setup selects for the animation.
type Behavior struct {
	Law       Law // nil selects LinearLaw, or DeceleratingLaw with Decelerate
	Transform TransformFunc

	Fade                     FadeMode
	GlobalFadeDuration       float32
	BackAndSidesFadeDuration float32

	Decelerate       bool
	Lighting         bool
	DepthTest        bool
	Perspective      PerspectiveMode
	FullScreenBounds bool
}

// Effect configures an animation: it tessellates the window and assigns
// per-polygon targets.
type Effect interface {
	Name() string
	DurationFactor() float32
	Setup(a *Animation) (Behavior, error)
}

// Animation is the per-window animation context.
type Animation struct {
	geom     WindowGeometry
	event    Event
	icon     math.Rect
	opacity  float32
	rnd      *rand.Rand
	log      *zap.Logger
	baseTime float32 // ms
	timeStep float32 // ms

	total     float32
	remaining float32

	name           string
	includeShadows bool
	mesh           *Mesh
	behavior       Behavior
	clips          *ClipIntersector
	bounds         *BoundsAccumulator
	output         *Output
}

// NewAnimation creates an animation that does nothing until Init succeeds.
func NewAnimation(opts Options) *Animation {
	a := &Animation{
		geom:     opts.Geometry,
		event:    opts.Event,
		icon:     opts.Icon,
		opacity:  opts.Opacity,
		rnd:      opts.Rand,
		log:      opts.Logger,
		baseTime: float32(opts.Duration) / float32(time.Millisecond),
		timeStep: float32(opts.TimeStep) / float32(time.Millisecond),
		bounds:   NewBoundsAccumulator(),
	}
	if a.opacity <= 0 {
		a.opacity = 1
	}
	if a.timeStep <= 0 {
		a.timeStep = float32(DefaultTimeStep) / float32(time.Millisecond)
	}
	if a.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		a.rnd = rand.New(rand.NewPCG(seed, seed>>32))
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	a.total = a.baseTime
	a.remaining = a.baseTime
	return a
}

// Init sets up e. On failure the animation stays a no-op that only runs
// out its timer, and Init returns false.
func (a *Animation) Init(e Effect) bool {
	a.release()
	a.name = e.Name()
	a.total = a.baseTime * e.DurationFactor()
	a.remaining = a.total

	b, err := e.Setup(a)
	if err == nil && (a.mesh == nil || len(a.mesh.Polygons) == 0) {
		err = ErrNoPolygons
	}
	if err != nil {
		a.log.Warn("effect setup failed",
			zap.String("effect", a.name),
			zap.Stringer("event", a.event),
			zap.Error(err))
		a.release()
		return false
	}

	if b.Law == nil {
		if b.Decelerate {
			b.Law = DeceleratingLaw{}
		} else {
			b.Law = LinearLaw{}
		}
	}
	a.behavior = b
	a.clips = NewClipIntersector(a.geom.Content, a.geom.Input, a.mesh.Polygons)

	a.log.Debug("effect initialized",
		zap.String("effect", a.name),
		zap.Stringer("event", a.event),
		zap.Int("polygons", len(a.mesh.Polygons)),
		zap.Int("grid_x", a.mesh.GridX),
		zap.Int("grid_y", a.mesh.GridY),
		zap.Float32("duration_ms", a.total))
	return true
}

// SetIncludeShadows makes later tessellation cover the output rect instead
// of the input rect.
func (a *Animation) SetIncludeShadows(v bool) { a.includeShadows = v }

// TessellationRect returns the rect Tessellate cuts up.
func (a *Animation) TessellationRect() math.Rect {
	if a.includeShadows {
		r := a.geom.Output
		r.X2-- // keeps the right edge off the shadow texture's border
		return r
	}
	return a.geom.Input
}

// Tessellate replaces the animation's polygons with a fresh tessellation.
// The screen width and random source are filled in when unset.
func (a *Animation) Tessellate(s Strategy, p TessParams) error {
	if p.ScreenWidth == 0 {
		p.ScreenWidth = a.ScreenWidth()
	}
	if p.Rand == nil {
		p.Rand = a.rnd
	}
	m, err := Tessellate(s, a.TessellationRect(), p)
	if err != nil {
		return err
	}
	a.mesh = m
	return nil
}

// SetPolygons installs a custom layout; thickness is in depth units.
func (a *Animation) SetPolygons(polys []*Polygon, thickness float32) {
	a.mesh = NewMesh(polys, thickness)
}

// Step advances the animation by ms milliseconds and moves every polygon.
func (a *Animation) Step(ms float32) {
	a.remaining = max(a.remaining-ms, 0)
	if a.mesh == nil {
		return
	}
	fp := a.ForwardProgress()
	for _, p := range a.mesh.Polygons {
		a.behavior.Law.Step(p, fp)
	}
}

// ForwardProgress returns progress in [0, 1] in the effect's direction.
func (a *Animation) ForwardProgress() float32 {
	fp := float32(1)
	if span := a.total - a.timeStep; span > 0 {
		fp = clamp01(1 - a.remaining/span)
	}
	if a.event.Reversed() {
		fp = 1 - fp
	}
	return fp
}

// Reverse plays the animation backwards from where it is.
func (a *Animation) Reverse() {
	a.remaining = a.total - a.remaining
	if a.remaining <= 0 {
		a.remaining = 1
	}
	a.event = a.event.Opposite()
}

// Done reports whether the time has run out.
func (a *Animation) Done() bool { return a.remaining <= 0 }

// Active reports whether an effect is set up.
func (a *Animation) Active() bool { return a.mesh != nil }

// PrePreparePaint starts a frame.
func (a *Animation) PrePreparePaint() {
	if a.clips != nil {
		a.clips.BeginFrame()
	}
}

// PrePaint resets the draw cursor before the window is painted.
func (a *Animation) PrePaint() {
	if a.clips != nil {
		a.clips.BeginPaint()
	}
}

// AddGeometry submits the clip boxes of one paint pass.
func (a *Animation) AddGeometry(boxes []math.Rect, m TexMatrix) {
	if a.clips != nil {
		a.clips.Add(boxes, m)
	}
}

// PostPaint drops clips that were submitted but never drawn.
func (a *Animation) PostPaint() {
	if a.clips != nil {
		a.clips.Trim()
	}
}

// DrawGeometry draws the next group of clips. Perspective correction uses
// the output last passed to UpdateBoundingBox.
func (a *Animation) DrawGeometry(r Renderer) {
	if a.mesh == nil || a.clips == nil {
		return
	}
	group := a.clips.NextGroup()
	if len(group) == 0 {
		return
	}

	fp := a.ForwardProgress()
	b := &a.behavior

	opacity := a.opacity
	if b.Fade == FadeGlobal {
		opacity *= fadeFactor(fp-(1-b.GlobalFadeDuration), b.GlobalFadeDuration, b.Decelerate)
	}

	out := a.outputRegion()
	var skew math.Mat4
	if b.Perspective == PerspectiveWindow {
		skew = skewMatrix(
			float32(a.geom.Output.X1)+float32(a.geom.Output.W()/2),
			float32(a.geom.Output.Y1)+float32(a.geom.Output.H()/2),
			out)
	}

	r.BeginGeometry(FrameState{
		Lighting:  b.Lighting,
		DepthTest: b.DepthTest,
		Flat:      a.mesh.Thickness <= 0,
	})
	var d PolygonDraw
	for pass := 0; pass < 2; pass++ {
		for _, c := range group {
			if c.IntersectsAll {
				off := 0
				for _, p := range a.mesh.Polygons {
					a.drawPolygon(r, &d, p, c, c.TexCoords[2*off:2*(off+p.Sides)], pass, fp, opacity, skew, out)
					off += p.Sides
				}
				continue
			}
			for _, h := range c.Hits {
				a.drawPolygon(r, &d, h.Polygon, c, h.TexCoords, pass, fp, opacity, skew, out)
			}
		}
	}
	r.EndGeometry()
}

// inPass reports whether a polygon at opacity belongs to pass: opaque
// polygons go to pass 0, translucent ones to pass 1.
func inPass(pass int, opacity float32) bool {
	if pass == 0 {
		return opacity >= opaqueThreshold
	}
	return opacity < opaqueThreshold
}

func (a *Animation) drawPolygon(r Renderer, d *PolygonDraw, p *Polygon, c *Clip, tc []math.Vec2, pass int, fp, opacity float32, skew math.Mat4, out math.Rect) {
	b := &a.behavior
	if b.Fade == FadePerPolygon {
		opacity *= fadeFactor(fp-p.Fade.Start, p.Fade.Duration, b.Decelerate)
	}
	if opacity < invisibleThreshold {
		return
	}
	if !inPass(pass, opacity) {
		return
	}

	back := opacity
	if b.BackAndSidesFadeDuration > 0 && fp <= b.BackAndSidesFadeDuration {
		back *= fp / b.BackAndSidesFadeDuration
	}

	model := math.Identity()
	switch b.Perspective {
	case PerspectiveWindow:
		model = skew
	case PerspectivePolygon:
		model = skewMatrix(p.Center.X, p.Center.Y, out)
	}

	*d = PolygonDraw{
		Polygon:     p,
		Model:       model.Mul(a.PolygonTransform(p, fp)),
		TexCoords:   tc,
		ClipBox:     c.BoxF.Offset(-p.CenterStart.X, -p.CenterStart.Y),
		Opacity:     opacity,
		BackOpacity: back,
		Pass:        pass,
	}
	r.DrawPolygon(d)
}

// PolygonTransform returns p's model matrix without perspective correction.
func (a *Animation) PolygonTransform(p *Polygon, fp float32) math.Mat4 {
	sw := float32(a.ScreenWidth())
	extra := math.Identity()
	if a.behavior.Transform != nil {
		extra = a.behavior.Transform(p, fp)
	}
	return math.TranslateVec(p.Center).Chain(
		math.Scale(1, 1, 1/sw),
		extra,
		math.TranslateVec(p.RotAxisOffset),
		math.Rotate(p.RotAngle, p.RotAxis),
		math.TranslateVec(p.RotAxisOffset.Negate()),
		math.Scale(1, 1, sw),
	)
}

// UpdateBoundingBox returns the screen area the polygons cover on out.
func (a *Animation) UpdateBoundingBox(out Output) math.Rect {
	a.output = &out
	if a.behavior.FullScreenBounds && a.mesh != nil {
		return a.geom.Screen
	}
	a.bounds.Reset()
	if a.mesh == nil {
		return a.bounds.Box()
	}

	vp := math.Viewport{X: out.Region.X1, Y: out.Region.Y1, W: out.Region.W(), H: out.Region.H()}
	mv := out.ModelView
	if a.behavior.Perspective == PerspectiveWindow {
		mv = mv.Mul(skewMatrix(
			float32(a.geom.Output.X1)+float32(a.geom.Output.W()/2),
			float32(a.geom.Output.Y1)+float32(a.geom.Output.H()/2),
			out.Region))
	}
	depth := 1 / float32(a.ScreenWidth())
	for _, p := range a.mesh.Polygons {
		m := mv
		if a.behavior.Perspective == PerspectivePolygon {
			m = out.ModelView.Mul(skewMatrix(p.Center.X, p.Center.Y, out.Region))
		}
		if !a.bounds.Accumulate(p, m, out.Projection, vp, a.geom.Screen.H(), depth) {
			break
		}
	}
	return a.bounds.Box()
}

// MoveUpdate shifts every polygon by (dx, dy) without re-tessellating.
func (a *Animation) MoveUpdate(dx, dy int) {
	a.geom.Content = a.geom.Content.Translate(dx, dy)
	a.geom.Input = a.geom.Input.Translate(dx, dy)
	a.geom.Output = a.geom.Output.Translate(dx, dy)
	if a.mesh == nil {
		return
	}
	d := math.Vec3{X: float32(dx), Y: float32(dy)}
	for _, p := range a.mesh.Polygons {
		p.CenterStart = p.CenterStart.Add(d)
		p.Center = p.Center.Add(d)
	}
	if a.clips != nil {
		a.clips.Translate(dx, dy)
	}
}

// Close ends the animation and releases its polygons and clips.
func (a *Animation) Close() {
	a.release()
	a.remaining = 0
}

func (a *Animation) release() {
	a.mesh = nil
	if a.clips != nil {
		a.clips.Reset()
	}
	a.clips = nil
	a.behavior = Behavior{}
	a.bounds.Reset()
}

func (a *Animation) outputRegion() math.Rect {
	if a.output != nil {
		return a.output.Region
	}
	return a.geom.Screen
}

// Depth converts a pixel distance to depth units.
func (a *Animation) Depth(px float32) float32 { return px / float32(a.ScreenWidth()) }

// ScreenWidth returns the screen width, at least 1.
func (a *Animation) ScreenWidth() int { return max(a.geom.Screen.W(), 1) }

// Name returns the effect name passed to Init.
func (a *Animation) Name() string { return a.name }

// Geometry returns the window rects.
func (a *Animation) Geometry() WindowGeometry { return a.geom }

// Event returns the window event being animated.
func (a *Animation) Event() Event { return a.event }

// Icon returns the taskbar icon rect minimize effects aim at.
func (a *Animation) Icon() math.Rect { return a.icon }

// Rand returns the animation's random stream.
func (a *Animation) Rand() *rand.Rand { return a.rnd }

// Logger returns the animation logger.
func (a *Animation) Logger() *zap.Logger { return a.log }

// Behavior returns what the effect's Setup chose.
func (a *Animation) Behavior() Behavior { return a.behavior }

// Mesh returns the tessellation, nil when inactive.
func (a *Animation) Mesh() *Mesh { return a.mesh }

// Polygons returns the current polygons, nil when inactive.
func (a *Animation) Polygons() []*Polygon {
	if a.mesh == nil {
		return nil
	}
	return a.mesh.Polygons
}

// Clips returns the clip intersector, nil when inactive.
func (a *Animation) Clips() *ClipIntersector { return a.clips }
