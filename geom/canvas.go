package geom

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// DefaultCanvasWidth is the drawing width used when no override is given.
const DefaultCanvasWidth = 1000.0

// ErrDegenerateBounds means the collection's bounding box has zero extent,
// so there is nothing to scale into a canvas.
var ErrDegenerateBounds = errors.New("geom: bounding box has zero extent")

// Canvas maps projected world coordinates into a fixed-width drawing space.
// The height is derived from the bounding box so aspect ratio is preserved.
// A Canvas is built once per document and read-only afterwards.
type Canvas struct {
	Bound  orb.Bound
	Width  float64
	Height float64
}

// NewCanvas derives a canvas from the bounding box of the final (filtered,
// clipped) collection. Zero-extent boxes are a fatal input error.
func NewCanvas(b orb.Bound, width float64) (*Canvas, error) {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if dx <= 0 || dy <= 0 {
		return nil, ErrDegenerateBounds
	}
	return &Canvas{Bound: b, Width: width, Height: width * dy / dx}, nil
}

// Project maps a world coordinate onto the canvas. The vertical axis flips:
// world Y grows northward, canvas Y grows downward.
func (c *Canvas) Project(p orb.Point) (float64, float64) {
	px := (p[0] - c.Bound.Min[0]) / (c.Bound.Max[0] - c.Bound.Min[0]) * c.Width
	py := c.Height - (p[1]-c.Bound.Min[1])/(c.Bound.Max[1]-c.Bound.Min[1])*c.Height
	return px, py
}

// ToMercator reprojects WGS84 geometry into Web Mercator so that drawn
// aspect ratios are true.
func ToMercator(g orb.Geometry) orb.Geometry {
	return project.Geometry(g, project.WGS84.ToMercator)
}
