package renderer2d

// Statistics captures the counts generated between Begin and End.
type Statistics struct {
	DrawCalls       int // successful submissions
	ImplicitFlushes int // flushes forced by slot or index exhaustion
	Dropped         int // submissions lost to backend failures
	VertexCount     int
	IndexCount      int
	TextureCount    int // distinct textures bound, summed over submissions

	Sprites    int
	Glyphs     int
	Rectangles int
	Circles    int
}

// QuadCount reports sprites and glyphs drawn this frame.
func (s Statistics) QuadCount() int { return s.Sprites + s.Glyphs }
