// Package viewer implements the interactive animation viewer loop.
package viewer

import (
	"fmt"
	"image"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/audio"
	"github.com/Faultbox/polyfx/internal/engine/camera"
	"github.com/Faultbox/polyfx/internal/engine/debug"
	"github.com/Faultbox/polyfx/internal/engine/framebuffer"
	"github.com/Faultbox/polyfx/internal/engine/input"
	"github.com/Faultbox/polyfx/internal/engine/picker"
	"github.com/Faultbox/polyfx/internal/engine/renderer"
	"github.com/Faultbox/polyfx/internal/engine/window"
	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/internal/session"
	"github.com/Faultbox/polyfx/pkg/effects"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

var damageColor = [4]float32{1, 0.2, 0.2, 1}

var events = []polygon.Event{
	polygon.EventOpen,
	polygon.EventClose,
	polygon.EventMinimize,
	polygon.EventUnminimize,
	polygon.EventShade,
	polygon.EventUnshade,
	polygon.EventFocus,
}

// Viewer plays window animations in an SDL window.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window    *window.Window
	renderer  *renderer.Renderer
	input     *input.Input
	camera    *camera.ScreenCamera
	session   *session.Session
	offscreen *framebuffer.Framebuffer

	watcher *config.Watcher
	reloads chan *config.Config

	trail   *debug.DamageTrail
	capture *debug.Capture
	picker  picker.Picker
	sound   *audio.Player
	soundOn bool

	effects    []string
	paused     bool
	showDamage bool
	snapshot   bool
}

// New opens the viewer window and prepares the configured animation.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:        cfg,
		log:        logger.Named("viewer"),
		input:      input.New(),
		trail:      debug.NewDamageTrail(8),
		capture:    debug.NewCapture("screenshots", "polyview"),
		effects:    effects.Names(),
		showDamage: cfg.Viewer.ShowDamage,
		reloads:    make(chan *config.Config, 1),
	}

	var err error
	v.session, err = session.New(cfg, logger.Named("animation"))
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.FromViewer("polyview", cfg.Viewer))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer and framebuffer need the OpenGL context
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.offscreen, err = framebuffer.New(int32(dw), int32(dh))
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create framebuffer: %w", err)
	}

	surface, err := v.session.Surface()
	if err != nil {
		v.Close()
		return nil, err
	}
	v.renderer.UploadSurface(surface)

	w, h := v.window.Size()
	v.camera = camera.NewScreenCamera(math.RectXYWH(0, 0, w, h))

	if cfg.Viewer.Sound {
		v.enableSound()
	}
	if path := config.Path(); path != "" {
		v.watch(path)
	}

	v.log.Info("viewer initialized",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Strings("effects", v.effects))
	return v, nil
}

// Run starts the main loop and plays the configured animation once.
func (v *Viewer) Run() error {
	v.running = true
	v.restart()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			break
		}
		v.handleInput()

		// 2. Render
		if v.paused {
			dt = 0
		}
		if v.snapshot {
			v.snapshot = false
			if err := v.saveSnapshot(dt); err != nil {
				v.log.Warn("screenshot failed", zap.Error(err))
			}
			dt = 0
		}
		v.render(dt)

		// 3. Present
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if limit := v.cfg.Viewer.FPSLimit; limit > 0 {
			if rest := time.Second/time.Duration(limit) - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

// Close releases viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.sound != nil {
		v.sound.Close()
	}
	if a := v.session.Animation(); a != nil {
		a.Close()
	}
	if v.offscreen != nil {
		v.offscreen.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleInput() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.resize(e.Width, e.Height)
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.WheelY)
		}
	}
	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(float32(dx), float32(dy))
	}

	for _, a := range v.input.Actions() {
		switch a {
		case input.ActionQuit:
			v.running = false
		case input.ActionReplay:
			v.restart()
		case input.ActionReverse:
			v.session.Reverse()
			v.updateTitle()
		case input.ActionPause:
			v.paused = !v.paused
		case input.ActionNextEffect:
			v.cycleEffect(1)
		case input.ActionPrevEffect:
			v.cycleEffect(-1)
		case input.ActionNextEvent:
			i := slices.Index(events, v.session.Event())
			v.session.SetEvent(events[(i+1)%len(events)])
			v.restart()
		case input.ActionToggleDamage:
			v.showDamage = !v.showDamage
		case input.ActionResetView:
			v.camera.Reset()
		case input.ActionCapture:
			v.snapshot = true
		case input.ActionOpenSurface:
			v.picker.Open("Open Window Image", picker.Images)
		case input.ActionToggleSound:
			if v.soundOn {
				v.soundOn = false
			} else {
				v.enableSound()
			}
		}
	}

	if path, ok := v.picker.Poll(); ok {
		v.loadSurface(path)
	}
	select {
	case cfg := <-v.reloads:
		v.reload(cfg)
	default:
	}
}

// watch hands every valid edit of the config file to the main loop.
func (v *Viewer) watch(path string) {
	w, err := config.Watch(path, func(cfg *config.Config, err error) {
		if err != nil {
			v.log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		// keep only the newest edit
		select {
		case <-v.reloads:
		default:
		}
		v.reloads <- cfg
	})
	if err != nil {
		v.log.Warn("config changes will not be picked up", zap.Error(err))
		return
	}
	v.watcher = w
	v.log.Info("watching config", zap.String("path", w.Path()))
}

// reload replaces the animation and effect settings and restarts. Viewer
// settings need a restart of the program.
func (v *Viewer) reload(cfg *config.Config) {
	prev := *v.cfg
	v.cfg.Animation = cfg.Animation
	v.cfg.Effects = cfg.Effects

	s, err := session.New(v.cfg, logger.Named("animation"))
	if err == nil {
		var surface *image.RGBA
		if surface, err = s.Surface(); err == nil {
			v.renderer.UploadSurface(surface)
		}
	}
	if err != nil {
		*v.cfg = prev
		v.log.Warn("config reload rejected", zap.Error(err))
		return
	}

	if a := v.session.Animation(); a != nil {
		a.Close()
	}
	v.session = s
	v.log.Info("config reloaded",
		zap.String("effect", cfg.Animation.Effect),
		zap.String("event", cfg.Animation.Event))
	v.restart()
}

func (v *Viewer) loadSurface(path string) {
	prev := v.cfg.Animation.Window.Surface
	v.session.SetSurface(path)
	img, err := v.session.Surface()
	if err != nil {
		v.log.Warn("cannot use window image", zap.String("path", path), zap.Error(err))
		v.session.SetSurface(prev)
		return
	}
	v.renderer.UploadSurface(img)
	v.log.Info("window image loaded", zap.String("path", path))
}

// enableSound opens the audio device on first use; later calls only unmute.
func (v *Viewer) enableSound() {
	if v.sound == nil {
		v.sound = audio.New(v.cfg.Viewer.Volume)
		if path := v.cfg.Viewer.SoundFile; path != "" {
			f, err := os.Open(path)
			if err == nil {
				err = v.sound.LoadCue(f)
				f.Close()
			}
			if err != nil {
				v.log.Warn("sound cue unavailable, using sweep", zap.String("path", path), zap.Error(err))
			}
		}
	}
	if err := v.sound.Init(); err != nil {
		v.log.Warn("audio disabled", zap.Error(err))
		return
	}
	v.soundOn = true
}

func (v *Viewer) cycleEffect(step int) {
	i := slices.Index(v.effects, v.session.Effect().Name())
	next := v.effects[(i+step+len(v.effects))%len(v.effects)]
	if err := v.session.SetEffect(next); err != nil {
		v.log.Warn("effect unavailable", zap.String("effect", next), zap.Error(err))
		return
	}
	v.restart()
}

func (v *Viewer) restart() {
	if a := v.session.Animation(); a != nil {
		a.Close()
	}
	v.trail.Reset()
	v.paused = false
	if !v.session.Start() {
		v.log.Warn("effect could not start", zap.String("effect", v.session.Effect().Name()))
	}
	if v.soundOn {
		if err := v.sound.Play(v.session.Length(), v.session.Event().Reversed()); err != nil {
			v.log.Debug("cue not played", zap.Error(err))
		}
	}
	v.updateTitle()
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(fmt.Sprintf("polyview - %s (%s)", v.session.Effect().Name(), v.session.Event()))
}

func (v *Viewer) resize(width, height int) {
	dw, dh := v.window.DrawableSize()
	v.renderer.Resize(dw, dh)
	v.offscreen.Resize(int32(dw), int32(dh))
	v.camera.Resize(math.RectXYWH(0, 0, width, height))
}

// render draws one frame, advancing the animation by dt.
func (v *Viewer) render(dt time.Duration) {
	out := v.camera.Output()
	v.renderer.SetOutput(out)
	v.renderer.Begin()

	switch {
	case v.session.Animating():
		if damage := v.session.Frame(dt, out, v.renderer); !damage.Empty() {
			v.trail.Push(damage)
		}
	case v.session.Visible():
		v.renderer.DrawWindow(v.session.Window().Output)
	}

	if v.showDamage {
		for _, r := range v.trail.Rects() {
			v.renderer.DrawOutline(debug.Outline(r), damageColor)
		}
	}
	v.renderer.End()
}

// saveSnapshot renders a frame offscreen and writes it to disk.
func (v *Viewer) saveSnapshot(dt time.Duration) error {
	restore := v.offscreen.Bind()
	v.render(dt)
	img, err := v.offscreen.ReadImage()
	restore()
	if err != nil {
		return err
	}
	path, err := v.capture.Screenshot(img)
	if err != nil {
		return err
	}
	v.log.Info("screenshot saved", zap.String("path", path))
	return nil
}
