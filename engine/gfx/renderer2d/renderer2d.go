package renderer2d

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/sprout/engine/colors"
	"github.com/hubastard/sprout/engine/core"
	"github.com/hubastard/sprout/engine/shapes"
	"github.com/hubastard/sprout/engine/text"
)

var (
	// ErrBeginTwice is raised (as a panic) when Begin is called while a
	// batch is already open.
	ErrBeginTwice = errors.New("begin called twice")
	// ErrNotBegun is raised (as a panic) by draw calls and End outside a
	// batch.
	ErrNotBegun = errors.New("call begin first")
)

// Outcome tells the caller whether a draw call had to submit the pending
// batch before its own geometry could be appended.
type Outcome int

const (
	Appended Outcome = iota
	AppendedAfterFlush
)

func (o Outcome) String() string {
	if o == AppendedAfterFlush {
		return "appended after flush"
	}
	return "appended"
}

func (o Outcome) merge(other Outcome) Outcome {
	if other == AppendedAfterFlush {
		return other
	}
	return o
}

type state int

const (
	stateIdle state = iota
	stateAccumulating
)

// Renderer2D batches sprites, text and shape outlines into one submission
// per primitive category. It is owned by a single render thread.
type Renderer2D struct {
	backend core.Backend
	device  core.Device
	raster  text.Rasterizer

	// set when New built the rasterizer, so Close releases it
	ownRaster *text.FaceRasterizer

	// 1x1 placeholders filling unused binding slots
	dummy      core.Texture
	dummyGlyph core.Texture

	world  mgl32.Mat4
	camera mgl32.Mat4
	state  state

	acc   Accumulator
	sub   core.Submission
	owned []core.Texture // glyph textures created for the current batch
	clear colors.Colour
	stats Statistics
}

// Option configures a Renderer2D.
type Option func(*Renderer2D)

// WithRasterizer replaces the default opentype rasterizer.
func WithRasterizer(r text.Rasterizer) Option {
	return func(rd *Renderer2D) { rd.raster = r }
}

// WithWorld sets the initial world transform (identity by default).
func WithWorld(m mgl32.Mat4) Option {
	return func(rd *Renderer2D) { rd.world = m }
}

// New creates the renderer and its placeholder textures.
func New(backend core.Backend, device core.Device, opts ...Option) (*Renderer2D, error) {
	rd := &Renderer2D{
		backend: backend,
		device:  device,
		world:   mgl32.Ident4(),
		camera:  mgl32.Ident4(),
	}
	for _, o := range opts {
		o(rd)
	}
	if rd.raster == nil {
		rd.ownRaster = text.NewFaceRasterizer()
		rd.raster = rd.ownRaster
	}

	var err error
	rd.dummy, err = device.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("dummy texture: %w", err)
	}
	rd.dummyGlyph, err = device.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureR8,
		Pixels:    []byte{1},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		device.DestroyTexture(rd.dummy)
		return nil, fmt.Errorf("dummy glyph texture: %w", err)
	}
	return rd, nil
}

// Close releases the placeholder textures and the default rasterizer. A
// rasterizer passed with WithRasterizer stays open.
func (rd *Renderer2D) Close() {
	rd.releaseOwned()
	rd.device.DestroyTexture(rd.dummy)
	rd.device.DestroyTexture(rd.dummyGlyph)
	if rd.ownRaster != nil {
		if err := rd.ownRaster.Close(); err != nil {
			core.LogWarn("renderer2d: close rasterizer: %v", err)
		}
		rd.ownRaster = nil
	}
}

// SetWorld replaces the frame-global world transform, typically after the
// target was resized.
func (rd *Renderer2D) SetWorld(m mgl32.Mat4) { rd.world = m }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// Accumulator exposes the pending geometry (read-only use).
func (rd *Renderer2D) Accumulator() *Accumulator { return &rd.acc }

// Clear sets the colour the backend clears with. It never touches geometry.
func (rd *Renderer2D) Clear(c colors.Colour) {
	rd.clear = c
	l := c.Linear()
	rd.backend.SetClearColour(l[0], l[1], l[2], l[3])
}

// ClearColour returns the colour last passed to Clear.
func (rd *Renderer2D) ClearColour() colors.Colour { return rd.clear }

// Begin opens a batch; all geometry until End is expressed in camera's
// space.
func (rd *Renderer2D) Begin(camera mgl32.Mat4) {
	if rd.state == stateAccumulating {
		panic(fmt.Errorf("renderer2d: Begin: %w", ErrBeginTwice))
	}
	rd.state = stateAccumulating
	rd.camera = camera
	rd.stats = Statistics{}
}

// End submits everything accumulated and closes the batch.
func (rd *Renderer2D) End() {
	rd.mustBegin("End")
	rd.flush()
	rd.state = stateIdle
}

func (rd *Renderer2D) mustBegin(call string) {
	if rd.state != stateAccumulating {
		panic(fmt.Errorf("renderer2d: %s: %w", call, ErrNotBegun))
	}
}

// Sprite draws the src pixel region of tex as a size-sized quad centred at
// position and rotated by rotation radians.
func (rd *Renderer2D) Sprite(tex core.Texture, position mgl32.Vec2, src shapes.Rectangle, size mgl32.Vec2, rotation float32, colour colors.Colour) Outcome {
	rd.mustBegin("Sprite")

	outcome := rd.reserve(core.PrimitiveSprite, vertsPerQuad)
	b := rd.acc.batch(core.PrimitiveSprite)
	slot, ok := b.slots.Register(tex)
	if !ok {
		rd.flushImplicit()
		outcome = AppendedAfterFlush
		slot, _ = b.slots.Register(tex)
	}

	transform := Chain(rd.world, rd.camera, ModelMatrix(position, rotation))
	f := BuildSprite(transform, size, src, tex.Width(), tex.Height(), colour.Linear(), slot, b.base(vertsPerQuad))
	rd.acc.appendQuad(core.PrimitiveSprite, f)
	rd.stats.Sprites++
	return outcome
}

// Region draws a sub-texture region.
func (rd *Renderer2D) Region(reg Region, position, size mgl32.Vec2, rotation float32, colour colors.Colour) Outcome {
	return rd.Sprite(reg.Texture, position, reg.Source, size, rotation, colour)
}

// Text rasterizes s with the font in fontData at sizePx and draws one quad
// per visible character, with position as the top-left of the first line.
// Identical glyphs within a batch share a texture slot.
func (rd *Renderer2D) Text(s string, position mgl32.Vec2, sizePx float32, fontData []byte, colour colors.Colour) (Outcome, error) {
	rd.mustBegin("Text")

	glyphs, err := rd.raster.Layout(fontData, s, sizePx)
	if err != nil {
		return Appended, fmt.Errorf("text %q: %w", s, err)
	}

	outcome := Appended
	linear := colour.Linear()
	b := rd.acc.batch(core.PrimitiveGlyph)
	for _, g := range glyphs {
		if g.W == 0 || g.H == 0 {
			continue
		}
		outcome = outcome.merge(rd.reserve(core.PrimitiveGlyph, vertsPerQuad))

		slot, found := b.slots.Lookup(g.Key)
		if !found {
			if b.slots.Full() {
				rd.flushImplicit()
				outcome = AppendedAfterFlush
			}
			tex, err := rd.device.CreateTexture(core.TextureDesc{
				ID:    g.Key,
				Width: g.W, Height: g.H,
				Format:    core.TextureR8,
				Pixels:    g.Bitmap,
				MinFilter: "nearest", MagFilter: "nearest",
				WrapU: "clamp", WrapV: "clamp",
			})
			if err != nil {
				return outcome, fmt.Errorf("glyph %q texture: %w", g.Rune, err)
			}
			rd.owned = append(rd.owned, tex)
			slot, _ = b.slots.Register(tex)
		}

		transform := Chain(rd.world, rd.camera, ModelMatrix(position.Add(g.Centre), 0))
		f := BuildGlyph(transform, g.W, g.H, linear, slot, b.base(vertsPerQuad))
		rd.acc.appendQuad(core.PrimitiveGlyph, f)
		rd.stats.Glyphs++
	}
	return outcome, nil
}

// Rectangle draws the outline of r.
func (rd *Renderer2D) Rectangle(r shapes.Rectangle, colour colors.Colour) Outcome {
	rd.mustBegin("Rectangle")

	outcome := rd.reserve(core.PrimitiveRectangle, vertsPerRect)
	b := rd.acc.batch(core.PrimitiveRectangle)
	rd.acc.appendRect(BuildRectangle(rd.world, rd.camera, r, colour.Linear(), b.base(vertsPerRect)))
	rd.stats.Rectangles++
	return outcome
}

// Circle draws the outline of c.
func (rd *Renderer2D) Circle(c shapes.Circle, colour colors.Colour) Outcome {
	rd.mustBegin("Circle")

	outcome := rd.reserve(core.PrimitiveCircle, vertsPerCircle)
	b := rd.acc.batch(core.PrimitiveCircle)
	rd.acc.appendCircle(BuildCircle(rd.world, rd.camera, c, colour.Linear(), b.base(vertsPerCircle)))
	rd.stats.Circles++
	return outcome
}

// reserve flushes when n more vertices would overflow 16-bit indices.
func (rd *Renderer2D) reserve(p core.Primitive, n int) Outcome {
	if rd.acc.batch(p).fits(n) {
		return Appended
	}
	rd.flushImplicit()
	return AppendedAfterFlush
}

func (rd *Renderer2D) flushImplicit() {
	rd.stats.ImplicitFlushes++
	core.LogDebug("renderer2d: implicit flush (%d sprite / %d glyph textures bound)",
		rd.acc.batch(core.PrimitiveSprite).slots.Len(), rd.acc.batch(core.PrimitiveGlyph).slots.Len())
	rd.flush()
}

// flush pads the texture tables, submits every non-empty category and
// clears all per-batch state together.
func (rd *Renderer2D) flush() {
	defer rd.releaseOwned()
	defer rd.acc.Reset()

	for p := core.Primitive(0); p < core.PrimitiveCount; p++ {
		b := rd.acc.batch(p)
		if b.empty() {
			continue
		}
		dummy := rd.dummy
		if p == core.PrimitiveGlyph {
			dummy = rd.dummyGlyph
		}
		rd.sub = core.Submission{
			Primitive: p,
			Textures:  b.slots.Padded(dummy),
			Vertices:  b.vertices,
			Indices:   b.indices,
		}
		if !rd.submit(&rd.sub) {
			break
		}
		rd.stats.TextureCount += b.slots.Len()
	}
	rd.sub = core.Submission{}
}

// submit applies the backend failure policy. It returns false when the
// rest of this flush must be skipped.
func (rd *Renderer2D) submit(s *core.Submission) bool {
	err := rd.backend.Submit(s)
	if errors.Is(err, core.ErrSurfaceLost) {
		core.LogWarn("renderer2d: %s submission: %v; reconfiguring", s.Primitive, err)
		if rerr := rd.backend.Reconfigure(); rerr != nil {
			err = fmt.Errorf("reconfigure: %w", rerr)
		} else {
			err = rd.backend.Submit(s)
		}
	}

	switch {
	case err == nil:
		rd.stats.DrawCalls++
		rd.stats.VertexCount += len(s.Vertices)
		rd.stats.IndexCount += len(s.Indices)
		return true
	case errors.Is(err, core.ErrOutOfMemory):
		core.LogError("renderer2d: %s submission: %v", s.Primitive, err)
		panic(fmt.Errorf("renderer2d: %s submission: %w", s.Primitive, err))
	case errors.Is(err, core.ErrTimeout):
		core.LogWarn("renderer2d: %s submission: %v; skipping frame", s.Primitive, err)
		rd.stats.Dropped++
		return false
	default:
		core.LogError("renderer2d: %s submission dropped: %v", s.Primitive, err)
		rd.stats.Dropped++
		return true
	}
}

func (rd *Renderer2D) releaseOwned() {
	for i, t := range rd.owned {
		rd.device.DestroyTexture(t)
		rd.owned[i] = nil
	}
	rd.owned = rd.owned[:0]
}
