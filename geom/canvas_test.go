package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestCanvasCorners(t *testing.T) {
	b := orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{30, 60}}
	c, err := NewCanvas(b, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if c.Height != 2000 {
		t.Fatalf("Height = %v, want 2000", c.Height)
	}

	// The south-west corner lands at the bottom-left of the canvas and the
	// north-east corner at the top-right: the vertical axis flips.
	x, y := c.Project(b.Min)
	if x != 0 || y != c.Height {
		t.Errorf("Project(min) = (%v, %v), want (0, %v)", x, y, c.Height)
	}
	x, y = c.Project(b.Max)
	if x != c.Width || y != 0 {
		t.Errorf("Project(max) = (%v, %v), want (%v, 0)", x, y, c.Width)
	}
}

func TestCanvasProjectInRange(t *testing.T) {
	b := orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{7, 3}}
	c, err := NewCanvas(b, 500)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []orb.Point{{-5, -5}, {7, 3}, {0, 0}, {-2.5, 1.5}, {6.99, -4.99}} {
		x, y := c.Project(p)
		if x < 0 || x > c.Width || y < 0 || y > c.Height {
			t.Errorf("Project(%v) = (%v, %v), outside [0,%v]x[0,%v]", p, x, y, c.Width, c.Height)
		}
	}
}

func TestNewCanvasDegenerate(t *testing.T) {
	tests := []struct {
		name string
		b    orb.Bound
	}{
		{"zero", orb.Bound{}},
		{"zero width", orb.Bound{Min: orb.Point{1, 0}, Max: orb.Point{1, 5}}},
		{"zero height", orb.Bound{Min: orb.Point{0, 2}, Max: orb.Point{5, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCanvas(tt.b, 1000); !errors.Is(err, ErrDegenerateBounds) {
				t.Fatalf("err = %v, want ErrDegenerateBounds", err)
			}
		})
	}
}

func TestToMercatorPreservesOrigin(t *testing.T) {
	// (0, 0) maps to (0, 0) in Web Mercator.
	g := ToMercator(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	p, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("ToMercator returned %T, want Polygon", g)
	}
	if math.Abs(p[0][0][0]) > 1e-9 || math.Abs(p[0][0][1]) > 1e-9 {
		t.Errorf("origin moved to %v", p[0][0])
	}
}
