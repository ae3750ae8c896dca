package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/sprout/engine/assets"
	"github.com/hubastard/sprout/engine/colors"
	"github.com/hubastard/sprout/engine/core"
	"github.com/hubastard/sprout/engine/gfx/renderer2d"
	"github.com/hubastard/sprout/engine/profiler"
	"github.com/hubastard/sprout/engine/scene"
	"github.com/hubastard/sprout/engine/shapes"
)

// sheetCount is above the 16 slots of a batch, so every frame exercises
// the implicit flush.
const sheetCount = 20

const (
	camSpeed  = 300 // px/s
	camTurn   = 1.5 // rad/s
	zoomStep  = 1.1
	playerVel = 180 // px/s
)

// ------- The 2D world: sprites, an animation and collision outlines -------
type Layer2D struct {
	cam  *scene.Camera2D
	r2d  *renderer2d.Renderer2D
	prof *profiler.Recorder

	textures []core.Texture
	sheet    core.Texture
	anim     *renderer2d.Animation

	sprites int
	player  shapes.Rectangle
	walls   []shapes.Rectangle
	hit     bool
	t       float32

	stats renderer2d.Statistics
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewCamera2D(w, h)

	for i := 0; i < sheetCount; i++ {
		a := color.RGBA{uint8(40 + i*10), uint8(220 - i*8), uint8(90 + i*6), 255}
		b := color.RGBA{a.R / 3, a.G / 3, a.B / 3, 255}
		tex, err := e.Backend.CreateTexture(assets.Checkerboard(32, 4+i%4*2, a, b))
		if err != nil {
			core.LogFatal("checkerboard %d: %v", i, err)
		}
		l.textures = append(l.textures, tex)
	}

	var err error
	l.sheet, err = e.Backend.CreateTexture(assets.SpriteSheet(8, 32,
		color.RGBA{30, 30, 40, 255}, color.RGBA{250, 200, 60, 255}))
	if err != nil {
		core.LogFatal("sprite sheet: %v", err)
	}
	l.anim = renderer2d.NewAnimation(l.sheet, 0, 32, 32, 8, 6, true)

	l.player = shapes.Rect(float32(w)/2-16, float32(h)/2-16, 32, 32)
	l.walls = []shapes.Rectangle{
		shapes.Rect(float32(w)/2+120, float32(h)/2-80, 40, 160),
		shapes.Rect(float32(w)/2-200, float32(h)/2+100, 160, 30),
	}
}

func (l *Layer2D) OnDetach(e *core.Engine) {
	for _, tex := range l.textures {
		e.Backend.DestroyTexture(tex)
	}
	e.Backend.DestroyTexture(l.sheet)
	l.textures = nil
}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	step := float32(dt)
	l.t += step
	l.anim.Update()

	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}

	// camera: WASD pans, Q/E rotate, wheel zooms
	var dx, dy float32
	if e.Input.IsKeyDown(core.KeyA) {
		dx -= camSpeed * step
	}
	if e.Input.IsKeyDown(core.KeyD) {
		dx += camSpeed * step
	}
	if e.Input.IsKeyDown(core.KeyW) {
		dy -= camSpeed * step
	}
	if e.Input.IsKeyDown(core.KeyS) {
		dy += camSpeed * step
	}
	if dx != 0 || dy != 0 {
		l.cam.Move(dx/l.cam.Zoom, dy/l.cam.Zoom)
	}
	if e.Input.IsKeyDown(core.KeyQ) {
		l.cam.Rotate(-camTurn * step)
	}
	if e.Input.IsKeyDown(core.KeyE) {
		l.cam.Rotate(camTurn * step)
	}
	if s := e.Input.TakeScroll(); s != 0 {
		l.cam.SetZoom(l.cam.Zoom * float32(math.Pow(zoomStep, s)))
	}

	// the player box orbits and is pushed out of the walls
	l.player.X += float32(math.Cos(float64(l.t))) * playerVel * step
	l.player.Y += float32(math.Sin(float64(l.t*1.3))) * playerVel * step
	l.hit = false
	for _, wall := range l.walls {
		if depth, ok := shapes.Intersect(l.player, wall); ok {
			l.hit = true
			if abs(depth.X()) < abs(depth.Y()) {
				l.player.X += depth.X()
			} else {
				l.player.Y += depth.Y()
			}
		}
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	end := l.prof.Start("Layer2D.OnRender")
	defer end()

	l.r2d.Begin(l.cam.View())

	w, h := e.Window.FramebufferSize()
	cols := int(math.Ceil(math.Sqrt(float64(l.sprites))))
	for i := 0; i < l.sprites; i++ {
		tex := l.textures[i%len(l.textures)]
		x := (float32(i%cols) + 0.5) * float32(w) / float32(cols)
		y := (float32(i/cols) + 0.5) * float32(h) / float32(cols)
		rot := l.t * (0.2 + float32(i%7)*0.1)
		l.r2d.Region(renderer2d.FullRegion(tex), mgl32.Vec2{x, y}, mgl32.Vec2{24, 24}, rot, colors.White)
	}

	l.anim.Draw(l.r2d, l.player.Centre(), 0, colors.White)

	outline := colors.Green
	if l.hit {
		outline = colors.Red
	}
	l.r2d.Rectangle(l.player, outline)
	for _, wall := range l.walls {
		l.r2d.Rectangle(wall, colors.Yellow)
	}
	l.r2d.Circle(shapes.NewCircle(l.player.Centre(), 40+8*float32(math.Sin(float64(l.t*3)))), colors.CornflowerBlue)

	endFlush := l.prof.Start("Renderer2D.End")
	l.r2d.End()
	endFlush()

	l.stats = l.r2d.Stats()
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}

func abs(v float32) float32 { return float32(math.Abs(float64(v))) }
