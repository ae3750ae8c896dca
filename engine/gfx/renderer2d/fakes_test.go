package renderer2d

import (
	"testing"

	"github.com/hubastard/sprout/engine/core"
)

type fakeTexture struct {
	id   core.TextureID
	w, h int
	name string
}

func (t *fakeTexture) ID() core.TextureID { return t.id }
func (t *fakeTexture) Width() int         { return t.w }
func (t *fakeTexture) Height() int        { return t.h }

func newTexture(name string, w, h int) *fakeTexture {
	return &fakeTexture{id: core.NewTextureID(), w: w, h: h, name: name}
}

type fakeDevice struct {
	created   []core.Texture
	destroyed []core.Texture
	failNext  error
}

func (d *fakeDevice) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return nil, err
	}
	id := desc.ID
	if id == (core.TextureID{}) {
		id = core.NewTextureID()
	}
	t := &fakeTexture{id: id, w: desc.Width, h: desc.Height}
	d.created = append(d.created, t)
	return t, nil
}

func (d *fakeDevice) DestroyTexture(t core.Texture) { d.destroyed = append(d.destroyed, t) }

// recorded is a deep copy of a submission; the live one is reused.
type recorded struct {
	primitive core.Primitive
	textures  [core.MaxTextureSlots]core.Texture
	vertices  []core.Vertex
	indices   []uint16
}

type fakeBackend struct {
	submissions  []recorded
	clear        [4]float32
	clearCalls   int
	errs         []error // returned by successive Submit calls, nil once exhausted
	reconfigured int
}

func (b *fakeBackend) SetClearColour(r, g, bl, a float32) {
	b.clear = [4]float32{r, g, bl, a}
	b.clearCalls++
}

func (b *fakeBackend) Submit(s *core.Submission) error {
	if len(b.errs) > 0 {
		err := b.errs[0]
		b.errs = b.errs[1:]
		if err != nil {
			return err
		}
	}
	b.submissions = append(b.submissions, recorded{
		primitive: s.Primitive,
		textures:  s.Textures,
		vertices:  append([]core.Vertex(nil), s.Vertices...),
		indices:   append([]uint16(nil), s.Indices...),
	})
	return nil
}

func (b *fakeBackend) Reconfigure() error {
	b.reconfigured++
	return nil
}

func (b *fakeBackend) of(p core.Primitive) []recorded {
	var out []recorded
	for _, s := range b.submissions {
		if s.primitive == p {
			out = append(out, s)
		}
	}
	return out
}

func newTestRenderer(t *testing.T) (*Renderer2D, *fakeBackend, *fakeDevice) {
	t.Helper()
	be := &fakeBackend{}
	dev := &fakeDevice{}
	rd, err := New(be, dev)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return rd, be, dev
}

// expectPanic runs f and returns the error it panicked with.
func expectPanic(t *testing.T, f func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		e, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		err = e
	}()
	f()
	return nil
}
