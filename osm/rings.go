package osm

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// memberWay is one relation member's coordinate sequence plus its role.
type memberWay struct {
	role   string
	coords []orb.Point
}

// assembleMultiPolygon stitches relation member ways into closed rings and
// groups inner rings under the outer ring that contains them. Returns a
// Polygon for a single outer ring, a MultiPolygon for several, and nil when
// no ring closes.
func assembleMultiPolygon(members []memberWay) orb.Geometry {
	var outerSegs, innerSegs [][]orb.Point
	for _, m := range members {
		if len(m.coords) < 2 {
			continue
		}
		if m.role == "inner" {
			innerSegs = append(innerSegs, m.coords)
		} else {
			outerSegs = append(outerSegs, m.coords)
		}
	}

	polys := make(orb.MultiPolygon, 0, len(outerSegs))
	for _, o := range stitchRings(outerSegs) {
		polys = append(polys, orb.Polygon{o})
	}
	for _, in := range stitchRings(innerSegs) {
		for i, p := range polys {
			if planar.RingContains(p[0], in[0]) {
				polys[i] = append(p, in)
				break
			}
		}
	}

	switch len(polys) {
	case 0:
		return nil
	case 1:
		return polys[0]
	default:
		return polys
	}
}

// stitchRings joins way segments sharing endpoints into closed rings.
// Segments are reversed as needed; unclosed leftovers are dropped. Endpoint
// matching is exact, which holds because OSM ways share node coordinates.
func stitchRings(segs [][]orb.Point) []orb.Ring {
	var rings []orb.Ring
	used := make([]bool, len(segs))
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		ring := append([]orb.Point(nil), segs[i]...)
		for !ringClosed(ring) {
			extended := false
			for j := range segs {
				if used[j] {
					continue
				}
				s := segs[j]
				switch ring[len(ring)-1] {
				case s[0]:
					ring = append(ring, s[1:]...)
				case s[len(s)-1]:
					ring = append(ring, reversePoints(s)[1:]...)
				default:
					continue
				}
				used[j] = true
				extended = true
				break
			}
			if !extended {
				break
			}
		}
		if ringClosed(ring) {
			rings = append(rings, orb.Ring(ring))
		}
	}
	return rings
}

func ringClosed(pts []orb.Point) bool {
	return len(pts) >= 4 && pts[0] == pts[len(pts)-1]
}

func reversePoints(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
