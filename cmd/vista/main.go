// Command vista replays multi-robot simulation logs in a grid of canvases.
//
// Usage:
//
//	vista -data run.csv
//	vista -data run.csv -layout layout.yaml -config render.yaml -auto-play
//
// Playback keys: space toggles playback, the arrow keys step one frame,
// page up and page down jump five percent of the log, home and end jump to
// the first and last frame, tab cycles the focused robot, and escape quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/swarmvista/vista/engine/canvas"
	"github.com/swarmvista/vista/engine/config"
	"github.com/swarmvista/vista/engine/grid"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/profiler"
	"github.com/swarmvista/vista/engine/render_surface"
	"github.com/swarmvista/vista/engine/simdata"
	"github.com/swarmvista/vista/engine/window"
)

func main() {
	var (
		dataPath     = flag.String("data", "", "simulation log to replay (CSV)")
		layoutPath   = flag.String("layout", "", "grid layout file (YAML), default is one 2D canvas")
		configPath   = flag.String("config", "", "rendering configuration file (YAML)")
		width        = flag.Int("width", 1280, "window width in pixels")
		height       = flag.Int("height", 720, "window height in pixels")
		fps          = flag.Int("fps", 30, "playback frames per second")
		autoPlay     = flag.Bool("auto-play", false, "start playing immediately")
		headless     = flag.Bool("headless", false, "replay without a window and exit")
		debug        = flag.Bool("debug", false, "enable debug logging")
		listIcons    = flag.Bool("list-icons", false, "print the available icon kinds and exit")
		listCanvases = flag.Bool("list-canvases", false, "print the available canvas kinds and exit")
	)
	flag.Parse()

	if *listIcons {
		for _, kind := range mesh.IconKinds(2) {
			fmt.Println(kind, "(2d)")
		}
		for _, kind := range mesh.IconKinds(3) {
			fmt.Println(kind, "(3d)")
		}
		return
	}
	if *listCanvases {
		for _, kind := range canvas.Kinds() {
			fmt.Println(kind)
		}
		return
	}

	if err := run(*dataPath, *layoutPath, *configPath, *width, *height, *fps, *autoPlay, *headless, *debug); err != nil {
		slog.Error("vista failed", "error", err)
		os.Exit(1)
	}
}

func run(dataPath, layoutPath, configPath string, width, height, fps int, autoPlay, headless, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if dataPath == "" {
		return fmt.Errorf("no simulation log given, use -data")
	}

	cfg := config.DefaultRender()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadRender(configPath); err != nil {
			return err
		}
	}
	cfg.Debug = cfg.Debug || debug

	layout := grid.DefaultLayout()
	if layoutPath != "" {
		var err error
		if layout, err = grid.LoadLayout(layoutPath); err != nil {
			return err
		}
	}

	start := time.Now()
	dataset, err := simdata.LoadCSV(dataPath)
	if err != nil {
		return err
	}
	slog.Info("loaded simulation log",
		"path", dataPath,
		"frames", dataset.Frames(),
		"series", dataset.Names(),
		"elapsed", time.Since(start),
	)

	if headless {
		return runHeadless(layout, cfg, dataset)
	}
	return runWindowed(layout, cfg, dataset, width, height, fps, autoPlay)
}

// runHeadless replays every frame without a window, so a log and layout can
// be validated on machines with no display.
func runHeadless(layout *grid.Layout, cfg config.Render, dataset *simdata.Dataset) error {
	g, err := layout.Build(func(render_surface.Viewport) render_surface.RenderSurface {
		return render_surface.NewHeadless()
	}, cfg)
	if err != nil {
		return err
	}
	if err := g.Reset(dataset); err != nil {
		return err
	}
	g.Play()
	for g.Playing() {
		if err := g.Tick(); err != nil {
			return err
		}
	}
	slog.Info("headless replay finished", "frames", g.Frames())
	return nil
}

const windowTitle = "Swarm Vista"

func runWindowed(layout *grid.Layout, cfg config.Render, dataset *simdata.Dataset, width, height, fps int, autoPlay bool) error {
	win := window.NewWindow(
		window.WithTitle(windowTitle),
		window.WithWidth(width),
		window.WithHeight(height),
	)
	defer win.Close()

	device, err := render_surface.NewDevice(win.SurfaceDescriptor(), win.Width(), win.Height(), false)
	if err != nil {
		return err
	}
	defer device.Release()

	g, err := layout.Build(func(viewport render_surface.Viewport) render_surface.RenderSurface {
		return device.NewSurface(viewport)
	}, cfg)
	if err != nil {
		return err
	}
	if err := g.Reset(dataset); err != nil {
		return err
	}
	if autoPlay {
		g.Play()
	}

	win.SetResizeCallback(device.ConfigureSurface)
	win.SetScrollCallback(func(delta float32) {
		g.Step(int(delta))
	})
	win.SetKeyDownCallback(func(key window.Key) {
		switch key {
		case window.KeySpace:
			g.TogglePlayback()
		case window.KeyRight:
			g.Step(1)
		case window.KeyLeft:
			g.Step(-1)
		case window.KeyPageUp:
			g.Step(jumpFrames(g))
		case window.KeyPageDown:
			g.Step(-jumpFrames(g))
		case window.KeyHome:
			g.SetIndex(0)
		case window.KeyEnd:
			g.SetIndex(g.Frames() - 1)
		case window.KeyTab:
			cycleFocus(g)
		}
	})

	prof := profiler.NewProfiler()
	frameBudget := time.Second / time.Duration(fps)
	lastTick := time.Time{}
	lastTickErr := ""
	win.SetUpdateCallback(func() {
		if time.Since(lastTick) < frameBudget {
			return
		}
		lastTick = time.Now()
		// Tick stops playback on an update error; the title carries the
		// error until a frame applies cleanly again. The frame still
		// renders so the window keeps repainting.
		err := g.Tick()
		switch {
		case err != nil && err.Error() != lastTickErr:
			lastTickErr = err.Error()
			slog.Error("playback stopped", "error", err)
			win.SetTitle(windowTitle + ": " + lastTickErr)
		case err == nil && lastTickErr != "":
			lastTickErr = ""
			win.SetTitle(windowTitle)
		}
		device.EndFrame()
		device.Present()
		if cfg.Debug {
			prof.Tick()
		}
	})

	win.ProcessMessages()
	return nil
}

// jumpFrames is the page-key jump distance: 5% of the log, at least one
// frame.
func jumpFrames(g grid.Grid) int {
	n := g.Frames() / 20
	if n < 1 {
		n = 1
	}
	return n
}

// cycleFocus advances the focused robot through an attitude canvas when the
// layout has one, since it knows the robot count.
func cycleFocus(g grid.Grid) {
	for _, c := range g.Canvases() {
		if ac, ok := c.(canvas.AttitudeCanvas); ok {
			ac.CycleFocus()
			return
		}
	}
}
