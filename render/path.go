package render

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"wardmap/geom"
)

// PathData converts a polygon or multi-polygon into an SVG path "d" string.
// Each ring becomes one closed subpath, the exterior first and then its
// holes, and multi-polygon parts concatenate in order. Vertices are
// canvas-projected and rounded to two decimals, so output is deterministic
// for a given canvas. Nil, empty, or non-areal geometry yields "".
func PathData(g orb.Geometry, c *geom.Canvas) string {
	switch g := g.(type) {
	case orb.Polygon:
		return polygonPath(g, c)
	case orb.MultiPolygon:
		parts := make([]string, 0, len(g))
		for _, p := range g {
			if d := polygonPath(p, c); d != "" {
				parts = append(parts, d)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

func polygonPath(p orb.Polygon, c *geom.Canvas) string {
	parts := make([]string, 0, len(p))
	for _, ring := range p {
		if d := ringPath(ring, c); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, " ")
}

func ringPath(r orb.Ring, c *geom.Canvas) string {
	if len(r) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, pt := range r {
		x, y := c.Project(pt)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s %.2f %.2f ", cmd, x, y)
	}
	sb.WriteString("Z")
	return sb.String()
}
