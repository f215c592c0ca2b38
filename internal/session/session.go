// Package session hosts one animated window: it builds the window geometry
// from configuration, creates and restarts animations, and runs the paint
// sequence each frame.
package session

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/texture"
	"github.com/Faultbox/polyfx/pkg/effects"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Session owns the animated window and its current animation.
type Session struct {
	cfg    *config.Config
	log    *zap.Logger
	geom   polygon.WindowGeometry
	icon   math.Rect
	event  polygon.Event
	effect polygon.Effect
	seed   uint64
	runs   uint64
	anim   *polygon.Animation
}

// Geometry derives the window rects from the configuration. The screen is
// the viewer's size.
func Geometry(cfg *config.Config) polygon.WindowGeometry {
	w := cfg.Animation.Window
	content := math.RectXYWH(w.X, w.Y, w.Width, w.Height)
	input := math.Rect{
		X1: content.X1 - w.Border,
		Y1: content.Y1 - w.Border - w.Title,
		X2: content.X2 + w.Border,
		Y2: content.Y2 + w.Border,
	}
	output := math.Rect{
		X1: input.X1 - w.Shadow,
		Y1: input.Y1 - w.Shadow,
		X2: input.X2 + w.Shadow,
		Y2: input.Y2 + w.Shadow,
	}
	return polygon.WindowGeometry{
		Content: content,
		Input:   input,
		Output:  output,
		Screen:  math.RectXYWH(0, 0, cfg.Viewer.Width, cfg.Viewer.Height),
	}
}

// New prepares a session for the configured effect and event. Nothing
// animates until Start.
func New(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ev, err := polygon.ParseEvent(cfg.Animation.Event)
	if err != nil {
		return nil, err
	}
	eff, err := effects.New(cfg.Animation.Effect, cfg.Effects)
	if err != nil {
		return nil, err
	}

	seed := uint64(cfg.Animation.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	w := cfg.Animation.Window
	return &Session{
		cfg:    cfg,
		log:    log,
		geom:   Geometry(cfg),
		icon:   math.RectXYWH(w.IconX, w.IconY, w.IconWidth, w.IconHeight),
		event:  ev,
		effect: eff,
		seed:   seed,
	}, nil
}

// Start begins a new animation and reports whether the effect set up.
// Every start draws from its own random stream.
func (s *Session) Start() bool {
	s.anim = polygon.NewAnimation(polygon.Options{
		Geometry: s.geom,
		Event:    s.event,
		Duration: s.cfg.Animation.Duration,
		Icon:     s.icon,
		Rand:     rand.New(rand.NewPCG(s.seed, s.runs)),
		Logger:   s.log,
	})
	s.runs++
	ok := s.anim.Init(s.effect)
	s.log.Info("animation started",
		zap.String("effect", s.effect.Name()),
		zap.Stringer("event", s.event),
		zap.Bool("ok", ok),
		zap.Int("polygons", len(s.anim.Polygons())))
	return ok
}

// SetEffect switches to the named effect for the next Start.
func (s *Session) SetEffect(name string) error {
	eff, err := effects.New(name, s.cfg.Effects)
	if err != nil {
		return err
	}
	s.effect = eff
	return nil
}

// SetSurface switches the window image for the next Surface call. An empty
// path selects the synthetic window.
func (s *Session) SetSurface(path string) { s.cfg.Animation.Window.Surface = path }

// Length returns how long an animation of the current effect plays.
func (s *Session) Length() time.Duration {
	return time.Duration(float32(s.cfg.Animation.Duration) * s.effect.DurationFactor())
}

// SetEvent switches the window event for the next Start.
func (s *Session) SetEvent(ev polygon.Event) { s.event = ev }

// Reverse turns the running animation around.
func (s *Session) Reverse() {
	if s.anim == nil {
		return
	}
	s.anim.Reverse()
	s.event = s.event.Opposite()
}

// Move shifts the window by (dx, dy) pixels.
func (s *Session) Move(dx, dy int) {
	s.geom.Content = s.geom.Content.Translate(dx, dy)
	s.geom.Input = s.geom.Input.Translate(dx, dy)
	s.geom.Output = s.geom.Output.Translate(dx, dy)
	if s.anim != nil {
		s.anim.MoveUpdate(dx, dy)
	}
}

// Animating reports whether an animation is running.
func (s *Session) Animating() bool { return s.anim != nil && !s.anim.Done() }

// Visible reports whether the window is painted normally while no
// animation runs: before the first start and after appearing events.
func (s *Session) Visible() bool { return s.anim == nil || s.event.Reversed() }

// Effect returns the effect the next Start uses.
func (s *Session) Effect() polygon.Effect { return s.effect }

// Event returns the current window event.
func (s *Session) Event() polygon.Event { return s.event }

// Animation returns the current animation, nil before Start.
func (s *Session) Animation() *polygon.Animation { return s.anim }

// Window returns the window rects.
func (s *Session) Window() polygon.WindowGeometry { return s.geom }

// TexMatrix maps screen coordinates onto the window surface, which covers
// the output rect with normalized coordinates.
func (s *Session) TexMatrix() polygon.TexMatrix {
	o := s.geom.Output
	w, h := float32(max(o.W(), 1)), float32(max(o.H(), 1))
	return polygon.TexMatrix{
		XX: 1 / w, X0: -float32(o.X1) / w,
		YY: 1 / h, Y0: -float32(o.Y1) / h,
	}
}

// Surface returns the window image: the configured picture scaled to the
// output rect, or a synthetic window.
func (s *Session) Surface() (*image.RGBA, error) {
	o := s.geom.Output
	if path := s.cfg.Animation.Window.Surface; path != "" {
		img, err := texture.Load(path)
		if err != nil {
			return nil, fmt.Errorf("window surface: %w", err)
		}
		return texture.Fit(img, o.W(), o.H()), nil
	}

	local := func(r math.Rect) image.Rectangle {
		return image.Rect(r.X1-o.X1, r.Y1-o.Y1, r.X2-o.X1, r.Y2-o.Y1)
	}
	return texture.Window(texture.Layout{
		Output:  local(o),
		Input:   local(s.geom.Input),
		Content: local(s.geom.Content),
		Title:   s.cfg.Animation.Window.Title,
	}, texture.DefaultStyle()), nil
}

// Frame advances the animation by elapsed and paints the decorations and
// then the content through r. It returns the damaged screen area.
func (s *Session) Frame(elapsed time.Duration, out polygon.Output, r polygon.Renderer) math.Rect {
	a := s.anim
	if a == nil {
		return math.Rect{}
	}
	a.PrePreparePaint()
	a.Step(float32(elapsed) / float32(time.Millisecond))
	damage := a.UpdateBoundingBox(out)

	m := s.TexMatrix()
	a.PrePaint()
	a.AddGeometry(Decorations(s.geom), m)
	a.DrawGeometry(r)
	a.AddGeometry([]math.Rect{s.geom.Content}, m)
	a.DrawGeometry(r)
	a.PostPaint()
	return damage
}

// Decorations returns the frame strips between the input and content
// rects followed by the shadow strips between the output and input rects.
func Decorations(g polygon.WindowGeometry) []math.Rect {
	return append(frame(g.Input, g.Content), frame(g.Output, g.Input)...)
}

// frame splits outer minus inner into top, bottom, left and right strips.
func frame(outer, inner math.Rect) []math.Rect {
	return []math.Rect{
		{X1: outer.X1, Y1: outer.Y1, X2: outer.X2, Y2: inner.Y1},
		{X1: outer.X1, Y1: inner.Y2, X2: outer.X2, Y2: outer.Y2},
		{X1: outer.X1, Y1: inner.Y1, X2: inner.X1, Y2: inner.Y2},
		{X1: inner.X2, Y1: inner.Y1, X2: outer.X2, Y2: inner.Y2},
	}
}
