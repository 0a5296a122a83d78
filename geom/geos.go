package geom

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulsmith/gogeos/geos"
)

// toGeos converts an areal orb geometry into its GEOS counterpart.
func toGeos(g orb.Geometry) (*geos.Geometry, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return polyToGeos(g)
	case orb.MultiPolygon:
		polys := make([]*geos.Geometry, 0, len(g))
		for _, p := range g {
			gp, err := polyToGeos(p)
			if err != nil {
				return nil, err
			}
			polys = append(polys, gp)
		}
		return geos.NewCollection(geos.MULTIPOLYGON, polys...)
	default:
		return nil, fmt.Errorf("geom: not an areal geometry: %T", g)
	}
}

func polyToGeos(p orb.Polygon) (*geos.Geometry, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("geom: polygon has no rings")
	}
	rings := make([][]geos.Coord, len(p))
	for i, r := range p {
		coords := make([]geos.Coord, len(r))
		for j, pt := range r {
			coords[j] = geos.Coord{X: pt[0], Y: pt[1]}
		}
		rings[i] = coords
	}
	return geos.NewPolygon(rings[0], rings[1:]...)
}

// fromGeos converts a GEOS result back into orb geometry. Non-areal parts
// (points and lines left over from boundary touches) are dropped, and empty
// results come back as nil.
func fromGeos(g *geos.Geometry) (orb.Geometry, error) {
	polys, err := collectPolygons(g)
	if err != nil {
		return nil, err
	}
	switch len(polys) {
	case 0:
		return nil, nil
	case 1:
		return polys[0], nil
	default:
		return orb.MultiPolygon(polys), nil
	}
}

func collectPolygons(g *geos.Geometry) ([]orb.Polygon, error) {
	empty, err := g.IsEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}

	t, err := g.Type()
	if err != nil {
		return nil, err
	}
	switch t {
	case geos.POLYGON:
		p, err := polyFromGeos(g)
		if err != nil {
			return nil, err
		}
		return []orb.Polygon{p}, nil
	case geos.MULTIPOLYGON, geos.GEOMETRYCOLLECTION:
		n, err := g.NGeometry()
		if err != nil {
			return nil, err
		}
		var polys []orb.Polygon
		for i := 0; i < n; i++ {
			child, err := g.Geometry(i)
			if err != nil {
				return nil, err
			}
			sub, err := collectPolygons(child)
			if err != nil {
				return nil, err
			}
			polys = append(polys, sub...)
		}
		return polys, nil
	default:
		return nil, nil
	}
}

func polyFromGeos(g *geos.Geometry) (orb.Polygon, error) {
	shell, err := g.Shell()
	if err != nil {
		return nil, err
	}
	exterior, err := ringFromGeos(shell)
	if err != nil {
		return nil, err
	}

	holes, err := g.Holes()
	if err != nil {
		return nil, err
	}
	poly := make(orb.Polygon, 0, len(holes)+1)
	poly = append(poly, exterior)
	for _, h := range holes {
		r, err := ringFromGeos(h)
		if err != nil {
			return nil, err
		}
		poly = append(poly, r)
	}
	return poly, nil
}

func ringFromGeos(g *geos.Geometry) (orb.Ring, error) {
	n, err := g.NPoint()
	if err != nil {
		return nil, err
	}
	ring := make(orb.Ring, n)
	for i := 0; i < n; i++ {
		p, err := g.Point(i)
		if err != nil {
			return nil, err
		}
		x, err := p.X()
		if err != nil {
			return nil, err
		}
		y, err := p.Y()
		if err != nil {
			return nil, err
		}
		ring[i] = orb.Point{x, y}
	}
	return ring, nil
}

// Intersection returns the areal intersection of a and b, or nil when they
// do not overlap. Features that reduce to nothing are a valid outcome.
func Intersection(a, b orb.Geometry) (orb.Geometry, error) {
	ga, err := toGeos(a)
	if err != nil {
		return nil, err
	}
	gb, err := toGeos(b)
	if err != nil {
		return nil, err
	}
	res, err := ga.Intersection(gb)
	if err != nil {
		return nil, err
	}
	return fromGeos(res)
}

// Union folds the given areal geometries into one.
func Union(gs []orb.Geometry) (orb.Geometry, error) {
	var acc *geos.Geometry
	for _, g := range gs {
		gg, err := toGeos(g)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = gg
			continue
		}
		acc, err = acc.Union(gg)
		if err != nil {
			return nil, err
		}
	}
	if acc == nil {
		return nil, nil
	}
	return fromGeos(acc)
}

// RepresentativePoint returns a point guaranteed to lie inside the geometry.
// Unlike the centroid this holds for concave and multi-part shapes, which is
// what makes it usable for containment tests.
func RepresentativePoint(g orb.Geometry) (orb.Point, error) {
	gg, err := toGeos(g)
	if err != nil {
		return orb.Point{}, err
	}
	pt, err := gg.PointOnSurface()
	if err != nil {
		return orb.Point{}, err
	}
	x, err := pt.X()
	if err != nil {
		return orb.Point{}, err
	}
	y, err := pt.Y()
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{x, y}, nil
}
