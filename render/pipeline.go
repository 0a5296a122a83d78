package render

import (
	"log"

	"github.com/paulmach/orb"

	"wardmap/geom"
	"wardmap/osm"
)

// FilterWithin keeps the areas whose representative interior point falls
// inside boundary. Candidates that are not polygons are dropped, as is
// everything when the boundary itself is empty or non-areal. A plain
// bounding-box overlap test would admit neighboring areas that merely cross
// the boundary's envelope; the interior-point test rejects those while
// tolerating shared borders.
func FilterWithin(boundary orb.Geometry, areas []osm.Area) []osm.Area {
	kept := make([]osm.Area, 0, len(areas))
	for _, a := range areas {
		switch a.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}
		pt, err := geom.RepresentativePoint(a.Geometry)
		if err != nil {
			log.Printf("Skipping %s: representative point failed: %v", a.DisplayName(), err)
			continue
		}
		if geom.Contains(boundary, pt) {
			kept = append(kept, a)
		}
	}
	return kept
}

// ClipToLand replaces each area's geometry with its intersection against the
// land mask. A nil mask is the skip branch: everything passes through
// unchanged. Areas that clip to nothing stay in the collection with nil
// geometry and are skipped at emission time.
func ClipToLand(mask *geom.LandMask, areas []osm.Area) []osm.Area {
	if mask == nil {
		return areas
	}
	out := make([]osm.Area, 0, len(areas))
	for _, a := range areas {
		clipped, err := mask.Clip(a.Geometry)
		if err != nil {
			log.Printf("Clipping %s failed, keeping unclipped bounds: %v", a.DisplayName(), err)
			clipped = a.Geometry
		}
		a.Geometry = clipped
		out = append(out, a)
	}
	return out
}

// ToMercator reprojects every area into Web Mercator.
func ToMercator(areas []osm.Area) []osm.Area {
	out := make([]osm.Area, 0, len(areas))
	for _, a := range areas {
		if a.Geometry != nil {
			a.Geometry = geom.ToMercator(a.Geometry)
		}
		out = append(out, a)
	}
	return out
}

// Bounds is the union of bounds over the final collection. It must run after
// filtering and clipping or the canvas scale and offset will be wrong.
func Bounds(areas []osm.Area) orb.Bound {
	var b orb.Bound
	first := true
	for _, a := range areas {
		if a.Geometry == nil {
			continue
		}
		if first {
			b = a.Geometry.Bound()
			first = false
			continue
		}
		b = b.Union(a.Geometry.Bound())
	}
	return b
}
