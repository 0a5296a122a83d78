package osm

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestAssembleSingleRing(t *testing.T) {
	// Two half-rings sharing endpoints, the second one reversed.
	members := []memberWay{
		{role: "outer", coords: []orb.Point{{0, 0}, {2, 0}, {2, 2}}},
		{role: "outer", coords: []orb.Point{{0, 0}, {0, 2}, {2, 2}}},
	}
	g := assembleMultiPolygon(members)
	p, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("assembled %T, want Polygon", g)
	}
	if len(p) != 1 {
		t.Fatalf("polygon has %d rings, want 1", len(p))
	}
	if !ringClosed(p[0]) {
		t.Errorf("ring is not closed: %v", p[0])
	}
	if len(p[0]) != 5 {
		t.Errorf("ring has %d points, want 5: %v", len(p[0]), p[0])
	}
}

func TestAssembleHole(t *testing.T) {
	members := []memberWay{
		{role: "outer", coords: []orb.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}},
		{role: "inner", coords: []orb.Point{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}},
	}
	g := assembleMultiPolygon(members)
	p, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("assembled %T, want Polygon", g)
	}
	if len(p) != 2 {
		t.Fatalf("polygon has %d rings, want exterior plus one hole", len(p))
	}
}

func TestAssembleMultipleOuters(t *testing.T) {
	members := []memberWay{
		{role: "outer", coords: []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{role: "outer", coords: []orb.Point{{5, 5}, {6, 5}, {6, 6}, {5, 5}}},
		// Hole in the second part only.
		{role: "inner", coords: []orb.Point{{5.5, 5.2}, {5.8, 5.2}, {5.8, 5.5}, {5.5, 5.2}}},
	}
	g := assembleMultiPolygon(members)
	mp, ok := g.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("assembled %T, want MultiPolygon", g)
	}
	if len(mp) != 2 {
		t.Fatalf("multipolygon has %d parts, want 2", len(mp))
	}
	if len(mp[0]) != 1 || len(mp[1]) != 2 {
		t.Errorf("ring counts = %d, %d, want 1 and 2", len(mp[0]), len(mp[1]))
	}
}

func TestAssembleUnclosedDropped(t *testing.T) {
	members := []memberWay{
		{role: "outer", coords: []orb.Point{{0, 0}, {1, 0}, {1, 1}}},
	}
	if g := assembleMultiPolygon(members); g != nil {
		t.Errorf("unclosed segment assembled into %v, want nil", g)
	}
}

func TestAreaNameFallbacks(t *testing.T) {
	tests := []struct {
		area        Area
		wantDisplay string
		wantLatin   string
	}{
		{Area{Name: "港北区", NameEn: "Kōhoku Ward"}, "港北区", "Kōhoku Ward"},
		{Area{Name: "港北区"}, "港北区", "港北区"},
		{Area{}, UnknownName, UnknownName},
	}
	for _, tt := range tests {
		if got := tt.area.DisplayName(); got != tt.wantDisplay {
			t.Errorf("DisplayName() = %q, want %q", got, tt.wantDisplay)
		}
		if got := tt.area.LatinName(); got != tt.wantLatin {
			t.Errorf("LatinName() = %q, want %q", got, tt.wantLatin)
		}
	}
}
