package renderer2d

import (
	"fmt"
	"testing"

	"github.com/hubastard/sprout/engine/core"
)

func TestSlotsFirstSeenOrder(t *testing.T) {
	var ts TextureSlots
	texs := []*fakeTexture{newTexture("a", 1, 1), newTexture("b", 1, 1), newTexture("c", 1, 1)}
	for i, tex := range texs {
		slot, ok := ts.Register(tex)
		if !ok || slot != uint32(i) {
			t.Fatalf("Register(%s) = %d, %v; want %d, true", tex.name, slot, ok, i)
		}
	}
	if ts.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ts.Len())
	}
	if ts.Texture(1) != core.Texture(texs[1]) {
		t.Errorf("Texture(1) = %v, want b", ts.Texture(1))
	}
	if ts.Texture(5) != nil {
		t.Errorf("free slot should be nil")
	}
}

func TestSlotsIdempotentLookup(t *testing.T) {
	var ts TextureSlots
	a, b := newTexture("a", 1, 1), newTexture("b", 1, 1)
	ts.Register(a)
	ts.Register(b)

	for i := 0; i < 3; i++ {
		slot, ok := ts.Register(a)
		if !ok || slot != 0 {
			t.Fatalf("repeat Register(a) = %d, %v", slot, ok)
		}
	}
	// A distinct handle with the same identity is the same texture.
	alias := &fakeTexture{id: b.ID(), w: 1, h: 1}
	if slot, _ := ts.Register(alias); slot != 1 {
		t.Errorf("alias of b got slot %d, want 1", slot)
	}
	if ts.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ts.Len())
	}
	if _, ok := ts.Lookup(core.NewTextureID()); ok {
		t.Errorf("Lookup of unknown id should miss")
	}
}

func TestSlotsCapacity(t *testing.T) {
	var ts TextureSlots
	for i := 0; i < core.MaxTextureSlots; i++ {
		if _, ok := ts.Register(newTexture(fmt.Sprint(i), 1, 1)); !ok {
			t.Fatalf("slot %d rejected", i)
		}
	}
	if !ts.Full() {
		t.Fatalf("table should be full")
	}
	if _, ok := ts.Register(newTexture("overflow", 1, 1)); ok {
		t.Errorf("17th texture must be rejected")
	}

	ts.Reset()
	if ts.Len() != 0 || ts.Full() {
		t.Errorf("Reset left %d slots", ts.Len())
	}
	trigger := newTexture("trigger", 1, 1)
	if slot, ok := ts.Register(trigger); !ok || slot != 0 {
		t.Errorf("after reset Register = %d, %v; want 0, true", slot, ok)
	}
}

func TestSlotsPadded(t *testing.T) {
	dummy := newTexture("dummy", 1, 1)
	tests := []struct {
		name  string
		count int
	}{
		{"empty", 0},
		{"one", 1},
		{"half", 8},
		{"full", core.MaxTextureSlots},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TextureSlots
			for i := 0; i < tt.count; i++ {
				ts.Register(newTexture(fmt.Sprint(i), 1, 1))
			}
			padded := ts.Padded(dummy)
			dummies := 0
			for i, tex := range padded {
				if tex == nil {
					t.Fatalf("slot %d left empty", i)
				}
				if tex == core.Texture(dummy) {
					dummies++
				}
			}
			if want := core.MaxTextureSlots - tt.count; dummies != want {
				t.Errorf("padded with %d dummies, want %d", dummies, want)
			}
			if ts.Len() != tt.count {
				t.Errorf("Padded must not register the dummy")
			}
		})
	}
}
