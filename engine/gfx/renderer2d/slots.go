package renderer2d

import "github.com/hubastard/sprout/engine/core"

// TextureSlots assigns bound-texture slots in first-seen order for one
// batch. The set is bounded by core.MaxTextureSlots so lookups are a linear
// scan over a fixed array.
type TextureSlots struct {
	ids      [core.MaxTextureSlots]core.TextureID
	textures [core.MaxTextureSlots]core.Texture
	count    int
}

// Len returns the number of occupied slots.
func (ts *TextureSlots) Len() int { return ts.count }

// Full reports whether a new identity can no longer be registered.
func (ts *TextureSlots) Full() bool { return ts.count >= core.MaxTextureSlots }

// Lookup returns the slot already assigned to id.
func (ts *TextureSlots) Lookup(id core.TextureID) (uint32, bool) {
	for i := 0; i < ts.count; i++ {
		if ts.ids[i] == id {
			return uint32(i), true
		}
	}
	return 0, false
}

// Register returns the slot for tex, assigning the next free one on first
// sight. ok is false when tex is new and every slot is taken; the caller
// must flush and retry on an empty table.
func (ts *TextureSlots) Register(tex core.Texture) (slot uint32, ok bool) {
	id := tex.ID()
	if s, found := ts.Lookup(id); found {
		return s, true
	}
	if ts.Full() {
		return 0, false
	}
	ts.ids[ts.count] = id
	ts.textures[ts.count] = tex
	ts.count++
	return uint32(ts.count - 1), true
}

// Texture returns the handle bound at slot, or nil if the slot is free.
func (ts *TextureSlots) Texture(slot uint32) core.Texture {
	if int(slot) >= ts.count {
		return nil
	}
	return ts.textures[slot]
}

// Padded returns the full binding array with every free slot pointing at
// dummy.
func (ts *TextureSlots) Padded(dummy core.Texture) [core.MaxTextureSlots]core.Texture {
	out := ts.textures
	for i := ts.count; i < core.MaxTextureSlots; i++ {
		out[i] = dummy
	}
	return out
}

// Reset empties the table.
func (ts *TextureSlots) Reset() {
	for i := 0; i < ts.count; i++ {
		ts.ids[i] = core.TextureID{}
		ts.textures[i] = nil
	}
	ts.count = 0
}
