package core

import (
	"runtime"
	"time"
)

// WindowConfig describes the window the engine opens.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Run wires the platform window + backend and executes the main loop.
func Run(app App, cfg WindowConfig, newWindow func(WindowConfig) (Window, error), newBackend func(Window, WindowConfig) (FrameBackend, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	backend, err := newBackend(win, cfg)
	if err != nil {
		return err
	}
	defer backend.Shutdown()

	w, h := win.FramebufferSize()
	backend.Resize(w, h)

	eng := &Engine{Window: win, Backend: backend, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		if r, ok := ev.(EventResize); ok && r.W > 0 && r.H > 0 {
			backend.Resize(r.W, r.H)
		}
		handled := false
		eng.Layers.ForEachReverse(func(l Layer) bool {
			handled = l.OnEvent(eng, ev)
			return handled
		})
		if !handled {
			app.OnEvent(eng, ev)
		}
	})

	app.OnStart(eng)
	eng.Layers.ForEach(func(l Layer) { l.OnAttach(eng) })
	LogInfo("engine started (%dx%d, vsync=%v)", w, h, cfg.VSync)

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		backend.BeginFrame()
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		app.OnRender(eng, alpha)

		win.SwapBuffers()
	}

	for l, ok := eng.Layers.Pop(); ok; l, ok = eng.Layers.Pop() {
		l.OnDetach(eng)
	}
	app.OnShutdown(eng)
	LogInfo("engine exit after %s", eng.Uptime().Round(time.Millisecond))
	return nil
}
