// Package scratch is a per-frame byte buffer for building the short-lived
// strings of debug overlays without allocating on every frame.
package scratch

import (
	"strconv"
	"time"
	"unicode/utf8"
	"unsafe"
)

// Buffer is reset once per frame. Views returned by Line and View are only
// valid until the next Reset.
type Buffer struct {
	buf  []byte
	mark int
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (b *Buffer) Reset() { b.buf, b.mark = b.buf[:0], 0 }

func (b *Buffer) Len() int { return len(b.buf) }
func (b *Buffer) Cap() int { return cap(b.buf) }

func (b *Buffer) S(s string) *Buffer { b.buf = append(b.buf, s...); return b }
func (b *Buffer) C(c byte) *Buffer   { b.buf = append(b.buf, c); return b }
func (b *Buffer) R(r rune) *Buffer   { b.buf = utf8.AppendRune(b.buf, r); return b }
func (b *Buffer) I(v int) *Buffer    { b.buf = strconv.AppendInt(b.buf, int64(v), 10); return b }
func (b *Buffer) U(v uint64) *Buffer { b.buf = strconv.AppendUint(b.buf, v, 10); return b }

func (b *Buffer) F64(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// Ms appends d in milliseconds with three decimals.
func (b *Buffer) Ms(d time.Duration) *Buffer {
	return b.F64(float64(d)/float64(time.Millisecond), 3).S(" ms")
}

// Pad appends c until the current line is at least n bytes long.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for len(b.buf)-b.mark < n {
		b.buf = append(b.buf, c)
	}
	return b
}

// Line returns everything written since the previous Line (or Reset) as a
// string view and starts a new line.
func (b *Buffer) Line() string {
	s := b.view(b.mark)
	b.mark = len(b.buf)
	return s
}

// View returns the whole buffer as a string view.
func (b *Buffer) View() string { return b.view(0) }

func (b *Buffer) view(from int) string {
	if from >= len(b.buf) {
		return ""
	}
	return unsafe.String(&b.buf[from], len(b.buf)-from)
}
