// polylab is an interactive effect lab: pick an effect and event, tune the
// timing and view, and watch the software rendered result.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/audio"
	"github.com/Faultbox/polyfx/internal/engine/camera"
	"github.com/Faultbox/polyfx/internal/engine/debug"
	"github.com/Faultbox/polyfx/internal/engine/picker"
	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/internal/raster"
	"github.com/Faultbox/polyfx/internal/session"
	"github.com/Faultbox/polyfx/pkg/effects"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

func main() {
	runtime.LockOSThread()

	configPath := flag.String("config", "", "Path to config file")
	debugLog := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *debugLog {
		cfg.Logging.Level = "debug"
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start lab", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}

var eventList = []polygon.Event{
	polygon.EventOpen,
	polygon.EventClose,
	polygon.EventMinimize,
	polygon.EventUnminimize,
	polygon.EventShade,
	polygon.EventUnshade,
	polygon.EventFocus,
}

// App holds the lab state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config
	log     *zap.Logger

	session *session.Session
	effects []string
	event   polygon.Event

	// Preview state
	canvas    *image.RGBA
	surface   *image.RGBA
	raster    *raster.Renderer
	camera    *camera.ScreenCamera
	texture   *backend.Texture
	lastFrame time.Time
	trail     *debug.DamageTrail
	capture   *debug.Capture

	// Controls
	durationMs int32
	seed       int32
	yaw        float32 // degrees
	pitch      float32 // degrees
	speed      float32
	paused     bool
	loop       bool
	showDamage bool

	picker  picker.Picker
	sound   *audio.Player
	soundOn bool
	status  string
}

// NewApp creates the lab window and the first session.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:        cfg,
		log:        logger.Named("polylab"),
		effects:    effects.Names(),
		canvas:     image.NewRGBA(image.Rect(0, 0, cfg.Viewer.Width, cfg.Viewer.Height)),
		trail:      debug.NewDamageTrail(16),
		capture:    debug.NewCapture("screenshots", "polylab"),
		durationMs: int32(cfg.Animation.Duration / time.Millisecond),
		seed:       int32(cfg.Animation.Seed),
		speed:      1,
		loop:       true,
		showDamage: cfg.Viewer.ShowDamage,
	}
	if app.seed == 0 {
		app.seed = 1
	}

	ev, err := polygon.ParseEvent(cfg.Animation.Event)
	if err != nil {
		return nil, err
	}
	app.event = ev
	if err := app.rebuild(cfg.Animation.Effect); err != nil {
		return nil, err
	}

	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("polylab", 1600, 900)
	return app, nil
}

// Run starts the main application loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.backend.Run(app.render)
}

// Close releases the preview texture and audio.
func (app *App) Close() {
	if app.texture != nil {
		app.texture.Release()
		app.texture = nil
	}
	if app.sound != nil {
		app.sound.Close()
	}
}

// rebuild creates a fresh session for effect with the current controls and
// starts it.
func (app *App) rebuild(effect string) error {
	app.cfg.Animation.Effect = effect
	app.cfg.Animation.Event = app.event.String()
	app.cfg.Animation.Duration = time.Duration(max(app.durationMs, 1)) * time.Millisecond
	app.cfg.Animation.Seed = int64(app.seed)

	s, err := session.New(app.cfg, logger.Named("animation"))
	if err != nil {
		return err
	}
	surface, err := s.Surface()
	if err != nil {
		return err
	}
	if old := app.session; old != nil && old.Animation() != nil {
		old.Animation().Close()
	}
	app.session = s
	app.surface = surface
	app.raster = raster.New(app.canvas, surface)
	app.camera = camera.NewScreenCamera(s.Window().Screen)
	app.restart()
	return nil
}

func (app *App) restart() {
	app.trail.Reset()
	if !app.session.Start() {
		app.status = fmt.Sprintf("%s cannot run on this window", app.session.Effect().Name())
		return
	}
	app.status = ""
	if app.soundOn {
		if err := app.sound.Play(app.session.Length(), app.session.Event().Reversed()); err != nil {
			app.log.Debug("cue not played", zap.Error(err))
		}
	}
}

func (app *App) setSound(on bool) {
	if !on {
		app.soundOn = false
		return
	}
	if app.sound == nil {
		app.sound = audio.New(app.cfg.Viewer.Volume)
	}
	if err := app.sound.Init(); err != nil {
		app.status = fmt.Sprintf("audio unavailable: %v", err)
		return
	}
	app.soundOn = true
}

// render is called by the backend once per frame.
func (app *App) render() {
	now := time.Now()
	dt := time.Duration(float32(now.Sub(app.lastFrame)) * app.speed)
	app.lastFrame = now
	if app.paused {
		dt = 0
	}

	if path, ok := app.picker.Poll(); ok {
		app.cfg.Animation.Window.Surface = path
		if err := app.rebuild(app.session.Effect().Name()); err != nil {
			app.status = err.Error()
			app.cfg.Animation.Window.Surface = ""
		}
	}

	app.drawPreview(dt)

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	const panelWidth = float32(320)

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, workSize.Y))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-panelWidth, workSize.Y))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()
}

func (app *App) renderControls() {
	current := app.session.Effect().Name()

	imgui.Text("Effect:")
	for _, name := range app.effects {
		if imgui.SelectableBoolV(name, name == current, 0, imgui.NewVec2(0, 0)) && name != current {
			if err := app.rebuild(name); err != nil {
				app.status = err.Error()
			}
		}
	}

	imgui.Separator()
	imgui.Text("Event:")
	for _, ev := range eventList {
		if imgui.SelectableBoolV(ev.String()+"##event", ev == app.session.Event(), 0, imgui.NewVec2(0, 0)) {
			app.event = ev
			app.session.SetEvent(ev)
			app.restart()
		}
	}

	imgui.Separator()
	imgui.Text("Timing:")
	if imgui.SliderIntV("Duration##ms", &app.durationMs, 100, 3000, "%d ms", imgui.SliderFlagsNone) {
		app.cfg.Animation.Duration = time.Duration(app.durationMs) * time.Millisecond
	}
	imgui.SliderFloatV("Speed", &app.speed, 0.1, 3.0, "%.1fx", imgui.SliderFlagsNone)
	if imgui.SliderIntV("Seed", &app.seed, 1, 1000, "%d", imgui.SliderFlagsNone) {
		if err := app.rebuild(current); err != nil {
			app.status = err.Error()
		}
	}

	imgui.Separator()
	imgui.Text("View:")
	imgui.SliderFloatV("Yaw", &app.yaw, -60, 60, "%.0f deg", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Pitch", &app.pitch, -60, 60, "%.0f deg", imgui.SliderFlagsNone)
	if imgui.Button("Reset View") {
		app.yaw, app.pitch = 0, 0
	}

	imgui.Separator()
	if imgui.ButtonV("Play", imgui.NewVec2(70, 0)) {
		app.paused = false
		app.restart()
	}
	imgui.SameLine()
	if imgui.ButtonV("Reverse", imgui.NewVec2(70, 0)) {
		app.session.Reverse()
		app.event = app.session.Event()
	}
	imgui.SameLine()
	label := "Pause"
	if app.paused {
		label = "Resume"
	}
	if imgui.ButtonV(label, imgui.NewVec2(70, 0)) {
		app.paused = !app.paused
	}
	imgui.Checkbox("Loop", &app.loop)
	imgui.Checkbox("Damage boxes", &app.showDamage)
	soundOn := app.soundOn
	if imgui.Checkbox("Sound", &soundOn) {
		app.setSound(soundOn)
	}

	imgui.Separator()
	if imgui.Button("Window Image...") {
		app.picker.Open("Open Window Image", picker.Images)
	}
	imgui.SameLine()
	if imgui.Button("Synthetic") && app.cfg.Animation.Window.Surface != "" {
		app.cfg.Animation.Window.Surface = ""
		if err := app.rebuild(current); err != nil {
			app.status = err.Error()
		}
	}
	if imgui.Button("Save Frame") {
		if path, err := app.capture.SaveFrame(app.canvas); err != nil {
			app.status = err.Error()
		} else {
			app.status = "saved " + path
		}
	}

	if app.status != "" {
		imgui.Spacing()
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0, 1), app.status)
	}
}

func (app *App) renderPreview() {
	if a := app.session.Animation(); a != nil {
		imgui.Text(fmt.Sprintf("%s (%s)  polygons: %d  clips: %d",
			a.Name(), a.Event(), len(a.Polygons()), len(a.Clips().Clips())))
		imgui.ProgressBarV(a.ForwardProgress(), imgui.NewVec2(-1, 0), "")
		imgui.Text(fmt.Sprintf("Damage: %v", app.trail.Total()))
	}
	imgui.Separator()

	if app.texture == nil {
		imgui.TextDisabled("No frame")
		return
	}
	avail := imgui.ContentRegionAvail()
	b := app.canvas.Bounds()
	scale := min(avail.X/float32(b.Dx()), avail.Y/float32(b.Dy()), 1)
	w, h := float32(b.Dx())*scale, float32(b.Dy())*scale
	if w < avail.X {
		imgui.SetCursorPosX(imgui.CursorPosX() + (avail.X-w)/2)
	}

	imgui.ImageWithBgV(
		app.texture.ID,
		imgui.NewVec2(w, h),
		imgui.NewVec2(0, 0),
		imgui.NewVec2(1, 1),
		imgui.NewVec4(0.15, 0.15, 0.18, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// drawPreview paints the next frame into the canvas and uploads it.
func (app *App) drawPreview(dt time.Duration) {
	app.camera.Yaw = app.yaw * math.DegToRad
	app.camera.Pitch = app.pitch * math.DegToRad
	out := app.camera.Output()
	app.raster.SetOutput(out)
	app.raster.Clear(background)

	s := app.session
	switch {
	case s.Animating():
		if damage := s.Frame(dt, out, app.raster); !damage.Empty() {
			app.trail.Push(damage)
		}
	case app.loop && !app.paused && s.Animation() != nil && s.Animation().Active():
		app.restart()
	case s.Visible():
		paintWindow(app.canvas, app.surface, s.Window().Output)
	}

	if app.showDamage {
		for _, r := range app.trail.Rects() {
			strokeRect(app.canvas, r, damageColor)
		}
	}

	if app.texture != nil {
		app.texture.Release()
	}
	app.texture = backend.NewTextureFromRgba(app.canvas)
}
