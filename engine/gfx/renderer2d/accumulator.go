package renderer2d

import (
	"math"

	"github.com/hubastard/sprout/engine/core"
)

// maxVertices is the most vertices one category can hold while every index
// still fits in uint16.
const maxVertices = math.MaxUint16 + 1

// batch is one category's share of the frame.
type batch struct {
	vertices []core.Vertex
	indices  []uint16
	draws    int
	slots    TextureSlots
}

// fits reports whether n more vertices keep indices addressable.
func (b *batch) fits(n int) bool { return len(b.vertices)+n <= maxVertices }

// base is the index offset of the next primitive: per-primitive vertex
// count times draws so far.
func (b *batch) base(vertsPer int) uint16 { return uint16(vertsPer * b.draws) }

func (b *batch) empty() bool { return len(b.vertices) == 0 }

func (b *batch) reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.draws = 0
	b.slots.Reset()
}

// Accumulator owns every category's growing geometry for the current batch.
type Accumulator struct {
	batches [core.PrimitiveCount]batch
}

func (a *Accumulator) batch(p core.Primitive) *batch { return &a.batches[p] }

// Vertices returns the vertices accumulated so far for p.
func (a *Accumulator) Vertices(p core.Primitive) []core.Vertex { return a.batches[p].vertices }

// Indices returns the indices accumulated so far for p.
func (a *Accumulator) Indices(p core.Primitive) []uint16 { return a.batches[p].indices }

// Slots returns the texture table of p.
func (a *Accumulator) Slots(p core.Primitive) *TextureSlots { return &a.batches[p].slots }

// Empty reports whether nothing is waiting to be submitted.
func (a *Accumulator) Empty() bool {
	for i := range a.batches {
		if !a.batches[i].empty() {
			return false
		}
	}
	return true
}

func (a *Accumulator) appendQuad(p core.Primitive, f QuadFragment) {
	b := &a.batches[p]
	b.vertices = append(b.vertices, f.Vertices[:]...)
	b.indices = append(b.indices, f.Indices[:]...)
	b.draws++
}

func (a *Accumulator) appendRect(f RectFragment) {
	b := &a.batches[core.PrimitiveRectangle]
	b.vertices = append(b.vertices, f.Vertices[:]...)
	b.indices = append(b.indices, f.Indices[:]...)
	b.draws++
}

func (a *Accumulator) appendCircle(f CircleFragment) {
	b := &a.batches[core.PrimitiveCircle]
	b.vertices = append(b.vertices, f.Vertices[:]...)
	b.indices = append(b.indices, f.Indices[:]...)
	b.draws++
}

// Reset clears every category together.
func (a *Accumulator) Reset() {
	for i := range a.batches {
		a.batches[i].reset()
	}
}
