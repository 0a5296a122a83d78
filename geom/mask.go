package geom

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// LandMask clips geometry to its on-land extent. A nil *LandMask means no
// mask was acquired; clipping then degrades to a passthrough rather than
// aborting the pipeline.
type LandMask struct {
	parts []orb.Geometry
	tree  *rtree.RTreeG[int]
}

// NewLandMask indexes the land parts by bounding box for clip-time lookups.
// Non-areal parts are ignored; if nothing areal remains the mask is absent
// and NewLandMask returns nil.
func NewLandMask(parts []orb.Geometry) *LandMask {
	m := &LandMask{tree: &rtree.RTreeG[int]{}}
	for _, p := range parts {
		switch p.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}
		b := p.Bound()
		m.tree.Insert(
			[2]float64{b.Min[0], b.Min[1]},
			[2]float64{b.Max[0], b.Max[1]},
			len(m.parts),
		)
		m.parts = append(m.parts, p)
	}
	if len(m.parts) == 0 {
		return nil
	}
	return m
}

// Clip intersects g with the union of land parts whose boxes overlap g.
// A nil mask passes g through unchanged. An empty intersection returns nil:
// a feature can be entirely water.
func (m *LandMask) Clip(g orb.Geometry) (orb.Geometry, error) {
	if m == nil {
		return g, nil
	}
	b := g.Bound()
	var near []orb.Geometry
	m.tree.Search(
		[2]float64{b.Min[0], b.Min[1]},
		[2]float64{b.Max[0], b.Max[1]},
		func(min, max [2]float64, i int) bool {
			near = append(near, m.parts[i])
			return true // continue searching
		},
	)
	if len(near) == 0 {
		return nil, nil
	}
	land, err := Union(near)
	if err != nil {
		return nil, err
	}
	if land == nil {
		return nil, nil
	}
	return Intersection(g, land)
}

// Size returns the number of indexed land parts.
func (m *LandMask) Size() int {
	if m == nil {
		return 0
	}
	return len(m.parts)
}
