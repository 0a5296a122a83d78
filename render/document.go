package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"wardmap/geom"
	"wardmap/osm"
)

// Shape is one filled region: an identifier plus its path data.
type Shape struct {
	ID   string
	Path string
}

// Label is a positioned text element in canvas coordinates.
type Label struct {
	X, Y float64
	Text string
}

// Document is a rendered map: shapes and labels in final canvas coordinates,
// shapes first in draw order, then labels on top.
type Document struct {
	Width  float64
	Height float64
	Shapes []Shape
	Labels []Label
}

// Build runs the geometric pipeline over the candidate areas and assembles
// the document: spatial filter, land clip, Mercator projection, canvas fit,
// then one shape and one label per surviving area, in input order. Areas
// whose geometry clips to nothing are skipped without error, shape and label
// both. Returns ErrDegenerateBounds when nothing renderable remains.
func Build(boundary orb.Geometry, candidates []osm.Area, mask *geom.LandMask, width float64) (*Document, error) {
	areas := FilterWithin(boundary, candidates)
	areas = ClipToLand(mask, areas)
	areas = ToMercator(areas)

	canvas, err := geom.NewCanvas(Bounds(areas), width)
	if err != nil {
		return nil, err
	}

	doc := &Document{Width: canvas.Width, Height: canvas.Height}
	ids := make(idSet)
	for i, a := range areas {
		d := PathData(a.Geometry, canvas)
		if d == "" {
			continue
		}
		doc.Shapes = append(doc.Shapes, Shape{
			ID:   ids.claim(CleanID(a.LatinName(), i)),
			Path: d,
		})

		// Labels want the visual center, not the interior point used for
		// containment.
		centroid, _ := planar.CentroidArea(a.Geometry)
		x, y := canvas.Project(centroid)
		doc.Labels = append(doc.Labels, Label{X: x, Y: y, Text: a.DisplayName()})
	}
	return doc, nil
}

// GeoJSON returns the filtered, clipped collection as a GeoJSON
// FeatureCollection for inspection ahead of rendering.
func GeoJSON(boundary orb.Geometry, candidates []osm.Area, mask *geom.LandMask) ([]byte, error) {
	areas := ClipToLand(mask, FilterWithin(boundary, candidates))
	fc := geojson.NewFeatureCollection()
	for _, a := range areas {
		if a.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(a.Geometry)
		f.Properties["id"] = a.ID
		f.Properties["name"] = a.DisplayName()
		f.Properties["name:en"] = a.LatinName()
		fc.Append(f)
	}
	return fc.MarshalJSON()
}

// Shapes use an even-odd fill rule so interior rings render as holes
// regardless of ring winding order.
const svgStyle = `<style>
    .ward { fill: #ffffff; stroke: #000000; stroke-width: 2px; fill-rule: evenodd; }
    .label { font-family: sans-serif; font-size: 14px; text-anchor: middle; fill: #000000; pointer-events: none; }
</style>`

// WriteSVG writes the document as a standalone SVG: the shape layer first,
// the label layer on top.
func (d *Document) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.2f %.2f\">\n", d.Width, d.Height)
	bw.WriteString(svgStyle + "\n")
	bw.WriteString("<g id=\"wards\">\n")
	for _, s := range d.Shapes {
		fmt.Fprintf(bw, "    <path id=%q class=\"ward\" d=%q />\n", s.ID, s.Path)
	}
	bw.WriteString("</g>\n<g id=\"labels\">\n")
	for _, l := range d.Labels {
		fmt.Fprintf(bw, "    <text x=\"%.2f\" y=\"%.2f\" class=\"label\">%s</text>\n", l.X, l.Y, escapeText(l.Text))
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

func escapeText(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
