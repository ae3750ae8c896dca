package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"time"

	"github.com/hubastard/sprout/engine/config"
	"github.com/hubastard/sprout/engine/core"
	glbackend "github.com/hubastard/sprout/engine/gfx/gl"
	"github.com/hubastard/sprout/engine/gfx/renderer2d"
	"github.com/hubastard/sprout/engine/platform"
	"github.com/hubastard/sprout/engine/profiler"
	"github.com/hubastard/sprout/engine/scene"
	"github.com/hubastard/sprout/engine/text"
)

var configPath = flag.String("config", "sprout.toml", "TOML config, reloaded on change")

type App struct {
	cfg     config.Config
	updates chan config.Config
	stop    context.CancelFunc

	backend *glbackend.RendererGL
	r2d     *renderer2d.Renderer2D
	raster  *text.FaceRasterizer
	prof    *profiler.Recorder

	world *Layer2D
	debug *LayerDebug

	tick      int
	lastFrame time.Time
}

func (a *App) OnStart(e *core.Engine) {
	w, h := e.Window.FramebufferSize()

	// shared with the debug layer, which measures its text
	a.raster = text.NewFaceRasterizer()

	var err error
	a.r2d, err = renderer2d.New(e.Backend, e.Backend,
		renderer2d.WithWorld(scene.PixelWorld(w, h)),
		renderer2d.WithRasterizer(a.raster))
	if err != nil {
		core.LogFatal("renderer2d: %v", err)
	}
	a.r2d.Clear(a.cfg.ClearColour())
	a.prof = profiler.New(1 << 14)

	a.world = &Layer2D{r2d: a.r2d, prof: a.prof, sprites: a.cfg.Sandbox.Sprites}
	e.Layers.Push(a.world)
	a.debug = &LayerDebug{
		r2d: a.r2d, raster: a.raster, prof: a.prof, backend: a.backend, world: a.world,
		fontSize: a.cfg.Sandbox.FontSize, captureDir: a.cfg.Sandbox.CaptureDir,
	}
	e.Layers.Push(a.debug)

	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel
	a.updates = make(chan config.Config, 1)
	go func() {
		err := config.Watch(ctx, *configPath, func(c config.Config) {
			// keep only the newest config
			select {
			case <-a.updates:
			default:
			}
			a.updates <- c
		})
		if err != nil {
			core.LogWarn("config hot reload disabled: %v", err)
		}
	}()
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	select {
	case c := <-a.updates:
		a.apply(e, c)
	default:
	}

	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.debug.frameDuration = now.Sub(a.lastFrame)
	}
	a.debug.tick = a.tick
	a.lastFrame = now
}

// apply hands a reloaded config to the running layers. Window settings
// only take effect on restart.
func (a *App) apply(e *core.Engine, c config.Config) {
	if err := core.SetLogLevel(c.Render.LogLevel); err != nil {
		core.LogWarn("%v", err)
	}
	if c.Window.Title != a.cfg.Window.Title {
		e.Window.SetTitle(c.Window.Title)
	}
	a.r2d.Clear(c.ClearColour())
	a.world.sprites = c.Sandbox.Sprites
	a.debug.fontSize = c.Sandbox.FontSize
	a.debug.captureDir = c.Sandbox.CaptureDir
	a.cfg = c
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventResize:
		if v.W > 0 && v.H > 0 {
			a.r2d.SetWorld(scene.PixelWorld(v.W, v.H))
		}
	case core.EventCloseRequested:
		e.Window.RequestClose()
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	if a.stop != nil {
		a.stop()
	}
	a.r2d.Close()
	if err := a.raster.Close(); err != nil {
		core.LogWarn("close rasterizer: %v", err)
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		core.LogWarn("%v; using defaults", err)
		cfg = config.Default()
	case err != nil:
		core.LogFatal("%v", err)
	}
	if err := core.SetLogLevel(cfg.Render.LogLevel); err != nil {
		core.LogFatal("%v", err)
	}

	app := &App{cfg: cfg}
	var win *platform.GLFWWindow

	newWindow := func(wc core.WindowConfig) (core.Window, error) {
		w, err := platform.NewGLFWWindow(wc, nil)
		if err != nil {
			return nil, err
		}
		win = w
		return w, nil
	}
	newBackend := func(w core.Window, wc core.WindowConfig) (core.FrameBackend, error) {
		b, err := glbackend.NewRendererGL(w, wc)
		if err != nil {
			return nil, err
		}
		app.backend = b
		return b, nil
	}

	err = core.Run(app, cfg.WindowConfig(), newWindow, newBackend)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		core.LogFatal("%v", err)
	}
}
