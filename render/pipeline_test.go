package render

import (
	"testing"

	"github.com/paulmach/orb"

	"wardmap/geom"
	"wardmap/osm"
)

func square(minx, miny, maxx, maxy float64) orb.Polygon {
	return orb.Polygon{{
		{minx, miny}, {maxx, miny}, {maxx, maxy}, {minx, maxy}, {minx, miny},
	}}
}

func TestFilterWithin(t *testing.T) {
	boundary := square(0, 0, 4, 4)
	areas := []osm.Area{
		{ID: 1, Name: "inside", Geometry: square(1, 1, 2, 2)},
		// Bounding box overlaps the boundary but the interior point does not.
		{ID: 2, Name: "neighbor", Geometry: square(3.5, 3.5, 7, 7)},
		{ID: 3, Name: "line", Geometry: orb.LineString{{1, 1}, {2, 2}}},
		{ID: 4, Name: "point", Geometry: orb.Point{1, 1}},
	}

	got := FilterWithin(boundary, areas)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("FilterWithin kept %v, want only area 1", got)
	}
}

func TestFilterWithinSharedBorder(t *testing.T) {
	boundary := square(0, 0, 4, 4)
	// Shares the boundary's east edge but lies inside.
	a := osm.Area{ID: 1, Geometry: square(2, 1, 4, 3)}
	if got := FilterWithin(boundary, []osm.Area{a}); len(got) != 1 {
		t.Fatalf("area sharing a border was dropped")
	}
}

func TestFilterWithinEmptyBoundary(t *testing.T) {
	areas := []osm.Area{{ID: 1, Geometry: square(1, 1, 2, 2)}}
	for _, boundary := range []orb.Geometry{nil, orb.Polygon{}, orb.Point{1, 1}} {
		if got := FilterWithin(boundary, areas); len(got) != 0 {
			t.Errorf("boundary %T kept %d areas, want 0", boundary, len(got))
		}
	}
}

func TestClipToLand(t *testing.T) {
	mask := geom.NewLandMask([]orb.Geometry{square(0, 0, 2, 2)})
	areas := []osm.Area{
		{ID: 1, Geometry: square(1, 0, 3, 2)}, // partially on land
		{ID: 2, Geometry: square(5, 5, 6, 6)}, // entirely water
	}

	got := ClipToLand(mask, areas)
	if len(got) != 2 {
		t.Fatalf("ClipToLand dropped areas: %d, want 2", len(got))
	}
	if got[0].Geometry == nil {
		t.Error("partially clipped area lost its geometry")
	}
	if got[1].Geometry != nil {
		t.Errorf("all-water area kept geometry %v, want nil", got[1].Geometry)
	}
}

func TestClipToLandAbsentMask(t *testing.T) {
	areas := []osm.Area{{ID: 1, Geometry: square(0, 0, 1, 1)}}
	got := ClipToLand(nil, areas)
	if len(got) != 1 || !orb.Equal(got[0].Geometry, areas[0].Geometry) {
		t.Fatalf("absent mask modified the collection: %v", got)
	}
}

func TestBoundsAfterClip(t *testing.T) {
	areas := []osm.Area{
		{Geometry: square(0, 0, 1, 1)},
		{Geometry: nil}, // clipped away, must not contribute
		{Geometry: square(3, 2, 5, 4)},
	}
	got := Bounds(areas)
	want := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{5, 4}}
	if !got.Equal(want) {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestBoundsEmptyCollection(t *testing.T) {
	b := Bounds(nil)
	if _, err := geom.NewCanvas(b, 1000); err == nil {
		t.Error("empty collection produced a usable canvas")
	}
}
