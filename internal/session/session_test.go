package session

import (
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/effects"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

type counter struct {
	begun, draws int
}

func (c *counter) BeginGeometry(polygon.FrameState) { c.begun++ }
func (c *counter) DrawPolygon(*polygon.PolygonDraw) { c.draws++ }
func (c *counter) EndGeometry()                     {}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Animation.Seed = 3
	return cfg
}

func testOutput() polygon.Output {
	return polygon.Output{
		Region:     math.RectXYWH(0, 0, 1280, 720),
		ModelView:  math.Identity(),
		Projection: math.Ortho(0, 1280, 720, 0, -1, 1),
	}
}

func TestGeometry(t *testing.T) {
	g := Geometry(testConfig())
	if want := math.RectXYWH(340, 160, 600, 400); g.Content != want {
		t.Errorf("content = %v, want %v", g.Content, want)
	}
	if want := (math.Rect{X1: 336, Y1: 132, X2: 944, Y2: 564}); g.Input != want {
		t.Errorf("input = %v, want %v", g.Input, want)
	}
	if want := (math.Rect{X1: 324, Y1: 120, X2: 956, Y2: 576}); g.Output != want {
		t.Errorf("output = %v, want %v", g.Output, want)
	}
	if g.Screen.W() != 1280 || g.Screen.H() != 720 {
		t.Errorf("screen = %v", g.Screen)
	}
}

func TestDecorationsTileTheFrame(t *testing.T) {
	g := Geometry(testConfig())
	area := 0
	for _, r := range Decorations(g) {
		if !g.Output.Contains(r) || r.Empty() {
			t.Errorf("strip %v outside output %v", r, g.Output)
		}
		area += r.W() * r.H()
	}
	want := g.Output.W()*g.Output.H() - g.Content.W()*g.Content.H()
	if area != want {
		t.Errorf("strips cover %d pixels, want %d", area, want)
	}
}

func TestTexMatrixNormalizesOutput(t *testing.T) {
	s, err := New(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	o := s.Window().Output
	m := s.TexMatrix()
	near := func(a, b math.Vec2) bool {
		return max(a.X-b.X, b.X-a.X, a.Y-b.Y, b.Y-a.Y) < 1e-5
	}
	if got := m.Apply(float32(o.X1), float32(o.Y1)); !near(got, math.Vec2{}) {
		t.Errorf("top left = %v, want origin", got)
	}
	if got := m.Apply(float32(o.X2), float32(o.Y2)); !near(got, math.Vec2{X: 1, Y: 1}) {
		t.Errorf("bottom right = %v, want (1, 1)", got)
	}
}

func TestEveryEffectRuns(t *testing.T) {
	for _, name := range effects.Names() {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Animation.Effect = name
			s, err := New(cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !s.Start() {
				t.Fatal("Start failed")
			}

			r := &counter{}
			frames := 0
			first := s.Frame(0, testOutput(), r)
			if first.Empty() {
				t.Error("first frame has no damage")
			}
			for s.Animating() {
				s.Frame(16*time.Millisecond, testOutput(), r)
				frames++
				if frames > 10000 {
					t.Fatal("animation never finished")
				}
			}
			if r.draws == 0 {
				t.Error("nothing was drawn")
			}
			if s.Visible() {
				t.Error("window visible after closing")
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Animation.Effect = "wobbly"
	if _, err := New(cfg, nil); !errors.Is(err, effects.ErrUnknownEffect) {
		t.Errorf("unknown effect error = %v", err)
	}

	cfg = testConfig()
	cfg.Animation.Event = "explode"
	if _, err := New(cfg, nil); err == nil {
		t.Error("expected error for unknown event")
	}
}

func TestReverseFlipsEvent(t *testing.T) {
	s, err := New(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Visible() {
		t.Error("window hidden before the first start")
	}
	s.Start()
	s.Frame(100*time.Millisecond, testOutput(), &counter{})
	before := s.Animation().ForwardProgress()

	s.Reverse()
	if s.Event() != polygon.EventOpen {
		t.Errorf("event = %v, want open", s.Event())
	}
	s.Frame(0, testOutput(), &counter{})
	// one time step of slack
	if got := s.Animation().ForwardProgress(); got > before+0.03 || got < before-0.03 {
		t.Errorf("progress after reverse = %v, want about %v", got, before)
	}
	if !s.Visible() {
		t.Error("window should stay visible after an open")
	}
}

func TestMoveShiftsWindow(t *testing.T) {
	s, err := New(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	s.Move(10, -5)
	if want := Geometry(testConfig()).Content.Translate(10, -5); s.Window().Content != want {
		t.Errorf("content = %v, want %v", s.Window().Content, want)
	}
	if got := s.Animation().Geometry().Content; got != s.Window().Content {
		t.Errorf("animation content = %v, want %v", got, s.Window().Content)
	}
}

func TestSyntheticSurface(t *testing.T) {
	s, err := New(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := s.Surface()
	if err != nil {
		t.Fatal(err)
	}
	o := s.Window().Output
	if img.Bounds().Dx() != o.W() || img.Bounds().Dy() != o.H() {
		t.Errorf("surface %v, want %dx%d", img.Bounds(), o.W(), o.H())
	}

	s.SetSurface("does-not-exist.png")
	if _, err := s.Surface(); err == nil {
		t.Error("expected error for missing surface image")
	}
}

func TestLengthScalesWithEffect(t *testing.T) {
	cfg := testConfig()
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range effects.Names() {
		if err := s.SetEffect(name); err != nil {
			t.Fatal(err)
		}
		want := time.Duration(float32(cfg.Animation.Duration) * s.Effect().DurationFactor())
		if got := s.Length(); got != want || got <= 0 {
			t.Errorf("%s: length = %v, want %v", name, got, want)
		}
	}
}
