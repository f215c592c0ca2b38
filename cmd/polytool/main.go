// polytool is a CLI utility for inspecting and rendering window animations
// without a display.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"os"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/camera"
	"github.com/Faultbox/polyfx/internal/engine/debug"
	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/internal/raster"
	"github.com/Faultbox/polyfx/internal/session"
	"github.com/Faultbox/polyfx/pkg/effects"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "effects", "ls":
		cmdEffects(args)
	case "tessellate", "tess":
		cmdTessellate(args)
	case "simulate", "sim":
		cmdSimulate(args)
	case "render":
		cmdRender(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`polytool - window animation utility

Usage:
  polytool <command> [options]

Commands:
  effects                       List the available effects
  tessellate [options]          Cut a window into polygons and show statistics
  simulate [options]            Run an animation headless and print each frame
  render [options]              Render an animation to a PNG sequence

Examples:
  polytool effects
  polytool tessellate -strategy hexagonal -grid 8x6
  polytool simulate -effect fold -event open -step 20ms
  polytool render -effect explode -out ./frames -pitch 20`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// animationFlags registers the flags shared by simulate and render and
// returns a loader for the resulting configuration.
func animationFlags(fs *flag.FlagSet) func() *config.Config {
	path := fs.String("config", "", "Path to config file")
	effect := fs.String("effect", "", "Effect to play")
	event := fs.String("event", "", "Window event")
	duration := fs.Duration("duration", 0, "Base animation duration")
	seed := fs.Int64("seed", 1, "Random seed (0 = time based)")
	verbose := fs.Bool("v", false, "Log animation details to stderr")

	return func() *config.Config {
		cfg, err := config.LoadFile(*path)
		if err != nil {
			fail(err)
		}
		if *effect != "" {
			cfg.Animation.Effect = *effect
		}
		if *event != "" {
			cfg.Animation.Event = *event
		}
		if *duration > 0 {
			cfg.Animation.Duration = *duration
		}
		cfg.Animation.Seed = *seed
		if *verbose {
			cfg.Logging.Level = "debug"
		} else {
			cfg.Logging.Level = "warn"
		}
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			fail(err)
		}
		return cfg
	}
}

func startSession(cfg *config.Config) *session.Session {
	s, err := session.New(cfg, logger.Named("animation"))
	if err != nil {
		fail(err)
	}
	if !s.Start() {
		fail(fmt.Errorf("effect %s could not set up on a %dx%d window",
			cfg.Animation.Effect, cfg.Animation.Window.Width, cfg.Animation.Window.Height))
	}
	return s
}

func cmdEffects(args []string) {
	fs := flag.NewFlagSet("effects", flag.ExitOnError)
	path := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	cfg, err := config.LoadFile(*path)
	if err != nil {
		fail(err)
	}
	for _, name := range effects.Names() {
		e, err := effects.New(name, cfg.Effects)
		if err != nil {
			fmt.Printf("  %-12s (%v)\n", name, err)
			continue
		}
		fmt.Printf("  %-12s duration x%.2f\n", name, e.DurationFactor())
	}
}

func cmdTessellate(args []string) {
	fs := flag.NewFlagSet("tessellate", flag.ExitOnError)
	strategy := fs.String("strategy", "rectangular", "rectangular, hexagonal or glass")
	grid := fs.String("grid", "8x6", "Grid size as COLSxROWS")
	size := fs.String("size", "600x400", "Window size as WIDTHxHEIGHT")
	spokes := fs.Int("spokes", 2, "Glass spoke multiplier")
	tiers := fs.Int("tiers", 3, "Glass tiers")
	thickness := fs.Float64("thickness", 15, "Slab thickness in pixels")
	seed := fs.Uint64("seed", 1, "Random seed for glass")
	fs.Parse(args)

	s, err := polygon.ParseStrategy(*strategy)
	if err != nil {
		fail(err)
	}
	var gx, gy, w, h int
	if _, err := fmt.Sscanf(*grid, "%dx%d", &gx, &gy); err != nil {
		fail(fmt.Errorf("grid %q: %w", *grid, err))
	}
	if _, err := fmt.Sscanf(*size, "%dx%d", &w, &h); err != nil {
		fail(fmt.Errorf("size %q: %w", *size, err))
	}

	rect := math.RectXYWH(0, 0, w, h)
	mesh, err := polygon.Tessellate(s, rect, polygon.TessParams{
		GridX:           gx,
		GridY:           gy,
		SpokeMultiplier: *spokes,
		Tiers:           *tiers,
		Thickness:       float32(*thickness),
		ScreenWidth:     1280,
		Rand:            rand.New(rand.NewPCG(*seed, 0)),
	})
	if err != nil {
		fail(err)
	}

	sides := make(map[int]int)
	var area, minArea, maxArea float32
	for i, p := range mesh.Polygons {
		sides[p.Sides]++
		outline := make([]math.Vec2, p.Sides)
		for k, v := range p.Front() {
			outline[k] = math.Vec2{X: v.X, Y: v.Y}
		}
		a := math32.Abs(math.SignedArea(outline))
		area += a
		if i == 0 || a < minArea {
			minArea = a
		}
		if a > maxArea {
			maxArea = a
		}
	}

	fmt.Printf("Strategy:  %s\n", s)
	fmt.Printf("Window:    %dx%d\n", w, h)
	if mesh.GridX > 0 {
		fmt.Printf("Grid:      %dx%d (requested %dx%d)\n", mesh.GridX, mesh.GridY, gx, gy)
	}
	fmt.Printf("Polygons:  %d\n", len(mesh.Polygons))
	fmt.Printf("Vertices:  %d front\n", mesh.FrontVertices)
	fmt.Printf("Thickness: %.4f depth units\n", mesh.Thickness)
	fmt.Printf("Area:      %.0f px (window %d px)\n", area, w*h)
	if len(mesh.Polygons) > 0 {
		fmt.Printf("Piece:     %.0f to %.0f px\n", minArea, maxArea)
	}
	fmt.Println()
	fmt.Println("Polygons by sides:")
	for n := 3; n <= 16; n++ {
		if c := sides[n]; c > 0 {
			fmt.Printf("  %-3d %d\n", n, c)
		}
	}
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	load := animationFlags(fs)
	step := fs.Duration("step", 16*time.Millisecond, "Frame interval")
	every := fs.Int("every", 1, "Print every Nth frame")
	fs.Parse(args)

	cfg := load()
	s := startSession(cfg)
	out := screenOutput(cfg)
	counter := &drawCounter{}

	fmt.Printf("%-6s %-8s %-9s %-6s %-7s %s\n", "frame", "time", "progress", "clips", "draws", "damage")
	var total math.Rect
	var elapsed time.Duration
	frame := 0
	for dt := time.Duration(0); ; dt = *step {
		elapsed += dt
		counter.draws = 0
		damage := s.Frame(dt, out, counter)
		total = total.Union(damage)
		if frame%max(*every, 1) == 0 || !s.Animating() {
			fmt.Printf("%-6d %-8s %-9.3f %-6d %-7d %v\n",
				frame, elapsed, s.Animation().ForwardProgress(),
				len(s.Animation().Clips().Clips()), counter.draws, damage)
		}
		frame++
		if !s.Animating() || frame > 100000 {
			break
		}
	}
	fmt.Printf("\n%d frames, total damage %v\n", frame, total)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	load := animationFlags(fs)
	outDir := fs.String("out", "frames", "Output directory")
	fps := fs.Int("fps", 30, "Frames per second")
	yaw := fs.Float64("yaw", 0, "View yaw in degrees")
	pitch := fs.Float64("pitch", 0, "View pitch in degrees")
	fs.Parse(args)

	cfg := load()
	s := startSession(cfg)
	surface, err := s.Surface()
	if err != nil {
		fail(err)
	}

	cam := camera.NewScreenCamera(s.Window().Screen)
	cam.Yaw = float32(*yaw) * math.DegToRad
	cam.Pitch = float32(*pitch) * math.DegToRad
	out := cam.Output()

	dst := image.NewRGBA(image.Rect(0, 0, cfg.Viewer.Width, cfg.Viewer.Height))
	r := raster.New(dst, surface)
	r.SetOutput(out)
	capture := debug.NewCapture(*outDir, "frame")
	step := time.Second / time.Duration(max(*fps, 1))
	background := color.RGBA{R: 26, G: 26, B: 38, A: 255}

	for dt := time.Duration(0); ; dt = step {
		r.Clear(background)
		s.Frame(dt, out, r)
		if _, err := capture.SaveFrame(dst); err != nil {
			fail(err)
		}
		if !s.Animating() || capture.Frames() > 10000 {
			break
		}
	}
	fmt.Printf("Wrote %d frames to %s\n", capture.Frames(), *outDir)
}

// screenOutput is a flat pixel aligned view of the whole screen.
func screenOutput(cfg *config.Config) polygon.Output {
	w, h := float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)
	return polygon.Output{
		Region:     math.RectXYWH(0, 0, cfg.Viewer.Width, cfg.Viewer.Height),
		ModelView:  math.Identity(),
		Projection: math.Ortho(0, w, h, 0, -1, 1),
	}
}

type drawCounter struct{ draws int }

func (c *drawCounter) BeginGeometry(polygon.FrameState) {}
func (c *drawCounter) DrawPolygon(*polygon.PolygonDraw) { c.draws++ }
func (c *drawCounter) EndGeometry()                     {}
