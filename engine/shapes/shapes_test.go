package shapes

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRectangleAccessors(t *testing.T) {
	r := Rect(10, 20, 30, 40)
	if r.Left() != 10 || r.Right() != 40 || r.Top() != 20 || r.Bottom() != 60 {
		t.Errorf("edges = %v %v %v %v", r.Left(), r.Right(), r.Top(), r.Bottom())
	}
	if got := r.Centre(); got != (mgl32.Vec2{25, 40}) {
		t.Errorf("Centre() = %v", got)
	}
	if got := r.Position(); got != (mgl32.Vec2{10, 20}) {
		t.Errorf("Position() = %v", got)
	}
	if got := r.Size(); got != (mgl32.Vec2{30, 40}) {
		t.Errorf("Size() = %v", got)
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Rectangle
		want  mgl32.Vec2
		wantO bool
	}{
		{"disjoint", Rect(0, 0, 10, 10), Rect(20, 20, 10, 10), mgl32.Vec2{}, false},
		{"touching", Rect(0, 0, 10, 10), Rect(10, 0, 10, 10), mgl32.Vec2{}, false},
		{"a left of b", Rect(0, 0, 10, 10), Rect(8, 0, 10, 10), mgl32.Vec2{-2, -10}, true},
		{"a right-below b", Rect(8, 7, 10, 10), Rect(0, 0, 10, 10), mgl32.Vec2{2, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intersect(tt.a, tt.b)
			if ok != tt.wantO {
				t.Fatalf("overlap = %v, want %v", ok, tt.wantO)
			}
			if !got.ApproxEqual(tt.want) {
				t.Errorf("depth = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircle(t *testing.T) {
	c := NewCircle(mgl32.Vec2{1, 2}, 5)
	if c.Centre != (mgl32.Vec2{1, 2}) || c.Radius != 5 {
		t.Errorf("NewCircle = %+v", c)
	}
}
