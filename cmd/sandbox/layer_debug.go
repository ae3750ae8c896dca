package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/sprout/engine/capture"
	"github.com/hubastard/sprout/engine/colors"
	"github.com/hubastard/sprout/engine/core"
	glbackend "github.com/hubastard/sprout/engine/gfx/gl"
	"github.com/hubastard/sprout/engine/gfx/renderer2d"
	"github.com/hubastard/sprout/engine/profiler"
	"github.com/hubastard/sprout/engine/scratch"
	"github.com/hubastard/sprout/engine/shapes"
	"github.com/hubastard/sprout/engine/text"
	"golang.org/x/image/font/gofont/goregular"
)

// ------- Screen-space stats overlay; P captures a frame, Ctrl+P a profile -------
type LayerDebug struct {
	r2d     *renderer2d.Renderer2D
	raster  *text.FaceRasterizer
	prof    *profiler.Recorder
	backend *glbackend.RendererGL
	world   *Layer2D
	lines   *scratch.Buffer

	fontSize      float32
	captureDir    string
	frameDuration time.Duration
	tick          int

	captureNext bool
	textFailed  bool
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.lines = scratch.New(2048)
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	end := l.prof.Start("LayerDebug.OnRender")

	st := l.world.stats
	b := l.lines
	b.Reset()
	lines := []string{
		b.S("Frame ").I(l.tick).Line(),
		b.S("  ").Ms(l.frameDuration).Line(),
		b.S("Renderer2D").Line(),
		b.S("  draw calls ").I(st.DrawCalls).S(", implicit flushes ").I(st.ImplicitFlushes).Line(),
		b.S("  quads ").I(st.QuadCount()).S(", vertices ").I(st.VertexCount).S(", indices ").I(st.IndexCount).Line(),
		b.S("  outlines ").I(st.Rectangles + st.Circles).S(", textures ").I(st.TextureCount).S(", dropped ").I(st.Dropped).Line(),
		b.S("Memory ").F64(float64(profiler.MemoryUsage())/(1<<20), 2).S(" MB, goroutines ").I(profiler.NumGoroutine()).Line(),
	}
	for _, s := range l.prof.Stats() {
		lines = append(lines, b.S("  ").S(s.Name).Pad(26, ' ').Ms(s.Mean()).Line())
	}
	if l.backend != nil {
		lines = append(lines, b.S("GPU ").S(l.backend.GPURenderer()).Line())
	}

	l.r2d.Begin(mgl32.Ident4())
	lineH := l.fontSize * 1.3
	origin := mgl32.Vec2{24, 24}
	panelW := 28 * l.fontSize
	if !l.textFailed {
		panelW = l.widest(lines) + 16
		for i, s := range lines {
			pos := origin.Add(mgl32.Vec2{0, float32(i) * lineH})
			colour := colors.White
			if s == "Renderer2D" {
				colour = colors.Yellow
			}
			if _, err := l.r2d.Text(s, pos, l.fontSize, goregular.TTF, colour); err != nil {
				core.LogError("debug overlay disabled: %v", err)
				l.textFailed = true
				break
			}
		}
	}
	panel := shapes.Rect(origin.X()-8, origin.Y()-8, panelW, float32(len(lines))*lineH+16)
	l.r2d.Rectangle(panel, colors.White.WithAlpha(128))
	l.r2d.End()

	end()

	// the frame is complete once the last layer has ended its batch
	if l.captureNext {
		l.captureNext = false
		l.capture()
	}
}

// widest returns the largest advance width among lines.
func (l *LayerDebug) widest(lines []string) float32 {
	var w float32
	for _, s := range lines {
		lw, _, err := l.raster.Measure(goregular.TTF, s, l.fontSize)
		if err != nil {
			return 28 * l.fontSize
		}
		w = max(w, lw)
	}
	return w
}

func (l *LayerDebug) capture() {
	if l.backend == nil {
		return
	}
	img, err := l.backend.Capture()
	if err != nil {
		core.LogError("capture: %v", err)
		return
	}
	path, err := capture.SaveWebP(l.captureDir, img, time.Now())
	if err != nil {
		core.LogError("capture: %v", err)
		return
	}
	core.LogInfo("frame saved to %s", path)
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	v, ok := ev.(core.EventKey)
	if !ok || !v.Down || v.Key != core.KeyP {
		return false
	}
	if v.Mods&core.ModCtrl == 0 {
		l.captureNext = true
		return true
	}
	path := filepath.Join(l.captureDir, "sprout.speedscope.json")
	if err := os.MkdirAll(l.captureDir, 0o755); err != nil {
		core.LogError("profile dump: %v", err)
	} else if err := l.prof.DumpSpeedscope(path); err != nil {
		core.LogError("profile dump: %v", err)
	} else {
		core.LogInfo("speedscope profile written to %s", path)
	}
	return true
}
