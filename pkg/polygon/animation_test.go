package polygon

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Faultbox/polyfx/pkg/math"
)

// recorder is a Renderer that keeps a copy of every draw.
type recorder struct {
	states []FrameState
	draws  []PolygonDraw
	ended  int
}

func (r *recorder) BeginGeometry(s FrameState) { r.states = append(r.states, s) }
func (r *recorder) DrawPolygon(d *PolygonDraw) { r.draws = append(r.draws, *d) }
func (r *recorder) EndGeometry()               { r.ended++ }

// gridEffect tessellates into rectangles and slides every polygon.
type gridEffect struct {
	gx, gy   int
	behavior Behavior
	move     math.Vec3
	err      error
}

func (e *gridEffect) Name() string            { return "grid" }
func (e *gridEffect) DurationFactor() float32 { return 1 }

func (e *gridEffect) Setup(a *Animation) (Behavior, error) {
	if e.err != nil {
		return Behavior{}, e.err
	}
	if err := a.Tessellate(StrategyRectangles, TessParams{GridX: e.gx, GridY: e.gy, Thickness: 8}); err != nil {
		return Behavior{}, err
	}
	for _, p := range a.Polygons() {
		p.FinalRelPos = e.move
		p.FinalRotAngle = 90
		p.RotAxis = math.Vec3{Z: 1}
	}
	return e.behavior, nil
}

func testGeometry() WindowGeometry {
	content := math.RectXYWH(100, 100, 200, 100)
	return WindowGeometry{
		Content: content,
		Input:   content,
		Output:  math.RectXYWH(90, 90, 220, 120),
		Screen:  math.RectXYWH(0, 0, 800, 600),
	}
}

func newTestAnimation(ev Event) *Animation {
	return NewAnimation(Options{
		Geometry: testGeometry(),
		Event:    ev,
		Duration: 100 * time.Millisecond,
		Rand:     rand.New(rand.NewPCG(1, 1)),
	})
}

func TestAnimationRunsToFinalState(t *testing.T) {
	a := newTestAnimation(EventClose)
	if !a.Init(&gridEffect{gx: 4, gy: 2, move: math.Vec3{X: 10, Y: 20}}) {
		t.Fatal("Init failed")
	}
	if len(a.Polygons()) != 8 {
		t.Fatalf("got %d polygons, want 8", len(a.Polygons()))
	}

	for !a.Done() {
		a.Step(16)
	}
	if got := a.ForwardProgress(); got != 1 {
		t.Errorf("final progress = %v, want 1", got)
	}
	for i, p := range a.Polygons() {
		if want := p.CenterStart.Add(p.FinalRelPos); p.Center != want {
			t.Errorf("polygon %d center = %v, want %v", i, p.Center, want)
		}
		if p.RotAngle != 90 {
			t.Errorf("polygon %d angle = %v, want 90", i, p.RotAngle)
		}
	}
}

func TestForwardProgress(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		ms    float32
		want  float32
	}{
		// 100ms total minus the 10ms time step.
		{"close start", EventClose, 0, 0},
		{"close midway", EventClose, 55, 0.5},
		{"close end", EventClose, 100, 1},
		{"open reversed", EventOpen, 55, 0.5},
		{"open start", EventOpen, 0, 1},
		{"minimize clamps", EventMinimize, 120, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnimation(tt.event)
			a.Init(&gridEffect{gx: 2, gy: 2})
			a.Step(tt.ms)
			if got := a.ForwardProgress(); abs32(got-tt.want) > 1e-5 {
				t.Errorf("ForwardProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnimationReverse(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 2, gy: 2})
	a.Step(30)
	a.Reverse()
	if a.Event() != EventOpen {
		t.Errorf("event = %v, want open", a.Event())
	}
	// 70ms were left; reversing leaves 30ms to play back.
	a.Step(30)
	if !a.Done() {
		t.Error("reversed animation should be done")
	}
}

func TestInitFailureIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		effect *gridEffect
	}{
		{"too small", &gridEffect{gx: 50, gy: 50}},
		{"setup error", &gridEffect{err: ErrInvalidParams}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom := testGeometry()
			geom.Input = math.RectXYWH(100, 100, 8, 8)
			a := NewAnimation(Options{Geometry: geom, Event: EventClose, Duration: 50 * time.Millisecond})
			if a.Init(tt.effect) {
				t.Fatal("Init should fail")
			}
			if a.Active() || a.Polygons() != nil || a.Clips() != nil {
				t.Error("failed animation kept state")
			}

			r := &recorder{}
			a.PrePreparePaint()
			a.Step(20)
			a.PrePaint()
			a.AddGeometry([]math.Rect{geom.Content}, testMatrix)
			a.DrawGeometry(r)
			a.PostPaint()
			if len(r.draws) != 0 {
				t.Errorf("no-op animation drew %d polygons", len(r.draws))
			}
			a.Step(40)
			if !a.Done() {
				t.Error("timer should still run out")
			}
		})
	}
}

func TestNoPolygonsError(t *testing.T) {
	a := newTestAnimation(EventClose)
	empty := effectFunc(func(a *Animation) (Behavior, error) {
		a.SetPolygons(nil, 0)
		return Behavior{}, nil
	})
	if a.Init(empty) {
		t.Error("Init should fail without polygons")
	}
}

type effectFunc func(a *Animation) (Behavior, error)

func (f effectFunc) Name() string                         { return "func" }
func (f effectFunc) DurationFactor() float32              { return 1 }
func (f effectFunc) Setup(a *Animation) (Behavior, error) { return f(a) }

func runFrame(a *Animation, r Renderer, ms float32) {
	a.PrePreparePaint()
	a.Step(ms)
	a.PrePaint()
	a.AddGeometry([]math.Rect{a.Geometry().Content}, testMatrix)
	a.DrawGeometry(r)
	a.PostPaint()
}

func TestDrawGeometryPasses(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 4, gy: 2, behavior: Behavior{
		Fade:               FadeGlobal,
		GlobalFadeDuration: 1,
		Lighting:           true,
	}})

	r := &recorder{}
	runFrame(a, r, 0)
	if len(r.draws) != 8 {
		t.Fatalf("got %d draws, want 8", len(r.draws))
	}
	for _, d := range r.draws {
		if d.Pass != 0 || d.Opacity != 1 {
			t.Errorf("opaque frame drew pass %d opacity %v", d.Pass, d.Opacity)
		}
		if len(d.TexCoords) != 2*d.Polygon.Sides {
			t.Errorf("draw has %d tex coords", len(d.TexCoords))
		}
	}
	if len(r.states) != 1 || !r.states[0].Lighting || r.ended != 1 {
		t.Errorf("frame state %v, ended %d", r.states, r.ended)
	}

	r = &recorder{}
	runFrame(a, r, 55) // progress 0.5
	if len(r.draws) != 8 {
		t.Fatalf("got %d draws, want 8", len(r.draws))
	}
	for _, d := range r.draws {
		if d.Pass != 1 || abs32(d.Opacity-0.5) > 1e-5 {
			t.Errorf("fading frame drew pass %d opacity %v, want pass 1 opacity 0.5", d.Pass, d.Opacity)
		}
	}
	if got := a.Clips().Recomputed(); got != 1 {
		t.Errorf("content clip recomputed %d times, want 1", got)
	}
}

func TestOpacityPicksOnePass(t *testing.T) {
	tests := []struct {
		opacity float32
		want    int
	}{
		{1, 0},
		{opaqueThreshold, 0},
		{opaqueThreshold - 1e-6, 1},
		{0.5, 1},
		{invisibleThreshold, 1},
	}
	for _, tt := range tests {
		var passes []int
		for pass := range 2 {
			if inPass(pass, tt.opacity) {
				passes = append(passes, pass)
			}
		}
		if len(passes) != 1 || passes[0] != tt.want {
			t.Errorf("opacity %v drawn in passes %v, want only %d", tt.opacity, passes, tt.want)
		}
	}
}

func TestDrawGeometryPerPolygonFade(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(effectFunc(func(a *Animation) (Behavior, error) {
		if err := a.Tessellate(StrategyRectangles, TessParams{GridX: 2, GridY: 1}); err != nil {
			return Behavior{}, err
		}
		a.Polygons()[0].Fade = Window{Start: 0, Duration: 0.25}
		a.Polygons()[1].Fade = Window{Start: 0.8, Duration: 0.2}
		return Behavior{Fade: FadePerPolygon}, nil
	}))

	r := &recorder{}
	runFrame(a, r, 55) // progress 0.5
	if len(r.draws) != 1 {
		t.Fatalf("got %d draws, want 1 (first polygon faded out)", len(r.draws))
	}
	if r.draws[0].Polygon != a.Polygons()[1] || r.draws[0].Opacity != 1 {
		t.Errorf("drew %v at opacity %v", r.draws[0].Polygon.CenterStart, r.draws[0].Opacity)
	}
}

func TestBackAndSidesFadeIn(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 1, gy: 1, behavior: Behavior{BackAndSidesFadeDuration: 0.5}})

	r := &recorder{}
	runFrame(a, r, 32.5) // progress 0.25
	d := r.draws[0]
	if d.Opacity != 1 || abs32(d.BackOpacity-0.5) > 1e-5 {
		t.Errorf("opacity %v back %v, want 1 and 0.5", d.Opacity, d.BackOpacity)
	}
}

func TestModelMatrixPlacesVertices(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 2, gy: 1, move: math.Vec3{X: 7, Y: -3}})

	r := &recorder{}
	runFrame(a, r, 0)
	for _, d := range r.draws {
		p := d.Polygon
		for _, v := range p.Front() {
			got := d.Model.TransformVec3(v)
			want := p.Center.Add(v)
			if abs32(got.X-want.X) > 1e-3 || abs32(got.Y-want.Y) > 1e-3 || abs32(got.Z-want.Z) > 1e-6 {
				t.Errorf("vertex %v mapped to %v, want %v", v, got, want)
			}
		}
		if d.ClipBox != a.Geometry().Content.Box().Grow(0.1).Offset(-p.CenterStart.X, -p.CenterStart.Y) {
			t.Errorf("clip box %v not relative to polygon", d.ClipBox)
		}
	}
}

func TestMoveUpdate(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 2, gy: 1, move: math.Vec3{X: 10}})
	a.Step(55)
	before := make([]math.Vec3, len(a.Polygons()))
	for i, p := range a.Polygons() {
		before[i] = p.Center
	}

	a.MoveUpdate(5, -4)
	for i, p := range a.Polygons() {
		if want := before[i].Add(math.Vec3{X: 5, Y: -4}); p.Center != want {
			t.Errorf("polygon %d center = %v, want %v", i, p.Center, want)
		}
	}
	if a.Geometry().Content != testGeometry().Content.Translate(5, -4) {
		t.Errorf("content rect not moved: %v", a.Geometry().Content)
	}

	r := &recorder{}
	runFrame(a, r, 0)
	if len(r.draws) != 2 {
		t.Errorf("got %d draws after move, want 2", len(r.draws))
	}
}

func TestUpdateBoundingBox(t *testing.T) {
	out := Output{
		Region:     math.RectXYWH(0, 0, 800, 600),
		ModelView:  math.Identity(),
		Projection: math.Ortho(0, 800, 0, 600, -1, 1),
	}

	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 2, gy: 2})
	a.Step(0)
	box := a.UpdateBoundingBox(out)
	if box.Empty() {
		t.Fatal("bounding box is empty")
	}
	// y is flipped against the screen height.
	win := testGeometry().Content
	flipped := math.Rect{X1: win.X1, Y1: 600 - win.Y2, X2: win.X2, Y2: 600 - win.Y1}
	if !box.Contains(flipped) {
		t.Errorf("box %v does not contain window %v", box, flipped)
	}

	full := newTestAnimation(EventClose)
	full.Init(&gridEffect{gx: 2, gy: 2, behavior: Behavior{FullScreenBounds: true}})
	if got := full.UpdateBoundingBox(out); got != testGeometry().Screen {
		t.Errorf("full screen bounds = %v", got)
	}
}

func TestCloseReleases(t *testing.T) {
	a := newTestAnimation(EventClose)
	a.Init(&gridEffect{gx: 2, gy: 2})
	a.Close()
	if a.Active() || !a.Done() || a.Clips() != nil {
		t.Error("Close left state behind")
	}
}
