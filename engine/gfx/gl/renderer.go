package glbackend

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/sprout/engine/core"
)

const vertexSize = int(unsafe.Sizeof(core.Vertex{}))

// RendererGL draws batch submissions with OpenGL 3.3 core. It implements
// core.FrameBackend and must only be used from the thread owning the
// context.
type RendererGL struct {
	win core.Window

	textured program
	outline  program
	vao      uint32
	vbo      uint32
	ibo      uint32

	clear    [4]float32
	width    int
	height   int
	textures int // live textures created by this backend
}

func NewRendererGL(win core.Window, _ core.WindowConfig) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	var err error
	if r.textured, err = newProgram("textured", batchVert, texturedFrag); err != nil {
		return err
	}
	if r.outline, err = newProgram("outline", batchVert, outlineFrag); err != nil {
		return err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(v.UV))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(v.Color))))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribIPointer(3, 1, gl.UNSIGNED_INT, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(v.Slot))))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	// vertex colours are linear
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	core.LogInfo("GL %s on %s (%s)", r.GPUVersion(), r.GPURenderer(), r.GPUVendor())
	return checkError("init")
}

func (r *RendererGL) Shutdown() {
	if r.textures > 0 {
		core.LogWarn("gl: %d textures still alive at shutdown", r.textures)
	}
	if r.ibo != 0 {
		gl.DeleteBuffers(1, &r.ibo)
		r.ibo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.textured.delete()
	r.outline.delete()
}

func (r *RendererGL) Resize(w, h int) {
	r.width, r.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Reconfigure re-reads the framebuffer size from the window.
func (r *RendererGL) Reconfigure() error {
	w, h := r.win.FramebufferSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("reconfigure: framebuffer is %dx%d: %w", w, h, core.ErrSurfaceLost)
	}
	r.Resize(w, h)
	return checkError("reconfigure")
}

func (r *RendererGL) SetClearColour(rf, gf, bf, af float32) {
	r.clear = [4]float32{rf, gf, bf, af}
}

// BeginFrame clears the target with the last colour set.
func (r *RendererGL) BeginFrame() {
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Submit draws one category in a single indexed draw call.
func (r *RendererGL) Submit(s *core.Submission) error {
	if len(s.Vertices) == 0 || len(s.Indices) == 0 {
		return nil
	}
	if st := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("submit %s: framebuffer status 0x%x: %w", s.Primitive, st, core.ErrSurfaceLost)
	}

	prog, mode := &r.outline, uint32(gl.LINES)
	if s.Primitive.Textured() {
		prog, mode = &r.textured, gl.TRIANGLES
		for i, tex := range s.Textures {
			t, ok := tex.(*Texture)
			if !ok || t.handle == 0 {
				return fmt.Errorf("submit %s: slot %d holds %T, not a live GL texture", s.Primitive, i, tex)
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
			gl.BindTexture(gl.TEXTURE_2D, t.handle)
		}
	}

	gl.UseProgram(prog.handle)
	if prog.coverage >= 0 {
		coverage := int32(0)
		if s.Primitive == core.PrimitiveGlyph {
			coverage = 1
		}
		gl.Uniform1i(prog.coverage, coverage)
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(s.Vertices)*vertexSize, gl.Ptr(&s.Vertices[0]), gl.STREAM_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Indices)*2, gl.Ptr(&s.Indices[0]), gl.STREAM_DRAW)
	gl.DrawElements(mode, int32(len(s.Indices)), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	return checkError("submit " + s.Primitive.String())
}

// Capture reads back the current framebuffer, top row first.
func (r *RendererGL) Capture() (*image.RGBA, error) {
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("capture: empty framebuffer")
	}
	stride := r.width * 4
	pix := make([]byte, stride*r.height)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	if err := checkError("capture"); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	img.Pix = core.FlipRows(pix, stride)
	return img, nil
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

// checkError drains the GL error queue and maps the first error onto the
// core sentinels.
func checkError(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	switch first {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("%s: %w", op, core.ErrOutOfMemory)
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return fmt.Errorf("%s: %w", op, core.ErrSurfaceLost)
	default:
		return fmt.Errorf("%s: gl error 0x%x", op, first)
	}
}
