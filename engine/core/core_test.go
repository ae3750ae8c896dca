package core

import (
	"bytes"
	"errors"
	"testing"
)

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name   string
		pix    []byte
		stride int
		want   []byte
	}{
		{"two rows", []byte{1, 2, 3, 4}, 2, []byte{3, 4, 1, 2}},
		{"three rows", []byte{1, 2, 3}, 1, []byte{3, 2, 1}},
		{"single row", []byte{9, 8, 7}, 3, []byte{9, 8, 7}},
		{"empty", nil, 4, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlipRows(tt.pix, tt.stride); !bytes.Equal(got, tt.want) {
				t.Errorf("FlipRows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowsBottomUpKeepsInput(t *testing.T) {
	desc := TextureDesc{Width: 1, Height: 2, Format: TextureRGBA8, Pixels: []byte{1, 1, 1, 1, 2, 2, 2, 2}}
	got := desc.RowsBottomUp()
	if !bytes.Equal(got, []byte{2, 2, 2, 2, 1, 1, 1, 1}) {
		t.Errorf("RowsBottomUp() = %v", got)
	}
	if desc.Pixels[0] != 1 {
		t.Errorf("input modified")
	}

	glyph := TextureDesc{Width: 2, Height: 2, Format: TextureR8, Pixels: []byte{1, 2, 3, 4}}
	if got := glyph.RowsBottomUp(); !bytes.Equal(got, []byte{3, 4, 1, 2}) {
		t.Errorf("R8 RowsBottomUp() = %v", got)
	}
}

func TestContentTextureID(t *testing.T) {
	space := NewTextureID()
	a := ContentTextureID(space, []byte("glyph"))
	if a != ContentTextureID(space, []byte("glyph")) {
		t.Errorf("same content must give the same id")
	}
	if a == ContentTextureID(space, []byte("other")) {
		t.Errorf("different content must give different ids")
	}
	if NewTextureID() == NewTextureID() {
		t.Errorf("random ids collided")
	}
}

func TestInput(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyW, Down: true})
	in.Handle(EventMouseMove{X: 3, Y: 4})
	in.Handle(EventScroll{Yoff: 1})
	in.Handle(EventScroll{Yoff: 0.5})

	if !in.IsKeyDown(KeyW) || in.IsKeyDown(KeyS) {
		t.Errorf("key state wrong")
	}
	if x, y := in.Mouse(); x != 3 || y != 4 {
		t.Errorf("Mouse() = %v,%v", x, y)
	}
	if s := in.TakeScroll(); s != 1.5 {
		t.Errorf("TakeScroll() = %v, want 1.5", s)
	}
	if s := in.TakeScroll(); s != 0 {
		t.Errorf("scroll not consumed: %v", s)
	}
	in.Handle(EventKey{Key: KeyW, Down: false})
	if in.IsKeyDown(KeyW) {
		t.Errorf("release not tracked")
	}
}

type recordingLayer struct {
	name    string
	handles bool
	log     *[]string
}

func (l *recordingLayer) OnAttach(*Engine)          {}
func (l *recordingLayer) OnDetach(*Engine)          {}
func (l *recordingLayer) OnUpdate(*Engine, float64) {}
func (l *recordingLayer) OnRender(*Engine, float64) {}
func (l *recordingLayer) OnEvent(*Engine, Event) bool {
	*l.log = append(*l.log, l.name)
	return l.handles
}

func TestLayerStackEventOrder(t *testing.T) {
	var seen []string
	var ls LayerStack
	ls.Push(&recordingLayer{name: "world", log: &seen})
	ls.Push(&recordingLayer{name: "overlay", handles: true, log: &seen})
	ls.Push(&recordingLayer{name: "debug", log: &seen})

	ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(nil, EventResize{}) })
	if len(seen) != 2 || seen[0] != "debug" || seen[1] != "overlay" {
		t.Errorf("propagation = %v, want [debug overlay]", seen)
	}
	if ls.Len() != 3 {
		t.Errorf("Len() = %d", ls.Len())
	}
	l, ok := ls.Pop()
	if !ok || l.(*recordingLayer).name != "debug" {
		t.Errorf("Pop() = %v, %v", l, ok)
	}
}

func TestSentinelsWrap(t *testing.T) {
	for _, sentinel := range []error{ErrSurfaceLost, ErrOutOfMemory, ErrTimeout} {
		wrapped := errors.Join(errors.New("present"), sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("%v lost through wrapping", sentinel)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	if err := SetLogLevel("debug"); err != nil {
		t.Errorf("SetLogLevel(debug) = %v", err)
	}
	if err := SetLogLevel("loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
	_ = SetLogLevel("info")
}
