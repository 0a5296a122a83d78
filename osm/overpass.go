package osm

import (
	"fmt"
	"sort"

	overpass "github.com/cwbudde/go-overpass"
	"github.com/paulmach/orb"
)

// Overpass area IDs for relations are the relation ID plus this offset.
const overpassAreaOffset = 3600000000

// OverpassSource fetches boundary and sub-area geometry from the Overpass
// API. One query per fetch; member nodes are resolved by the client.
type OverpassSource struct {
	client overpass.Client
}

// NewOverpassSource builds a source backed by the public Overpass endpoint.
func NewOverpassSource() *OverpassSource {
	return &OverpassSource{client: overpass.New()}
}

func (s *OverpassSource) Boundary(id int64) (orb.Geometry, error) {
	query := fmt.Sprintf("[out:json];relation(%d);out body;>;out skel qt;", id)
	result, err := s.client.Query(query)
	if err != nil {
		return nil, &AcquisitionError{What: "boundary", Err: err}
	}
	rel, ok := result.Relations[id]
	if !ok {
		return nil, &AcquisitionError{What: "boundary", Err: fmt.Errorf("relation %d not in response", id)}
	}
	g := relationGeometry(rel)
	if g == nil {
		return nil, &AcquisitionError{What: "boundary", Err: fmt.Errorf("relation %d has no closed outer ring", id)}
	}
	return g, nil
}

func (s *OverpassSource) SubAreas(id int64, level string) ([]Area, error) {
	query := fmt.Sprintf(
		`[out:json];area(%d)->.a;relation(area.a)["type"="boundary"]["admin_level"="%s"];out body;>;out skel qt;`,
		overpassAreaOffset+id, level)
	result, err := s.client.Query(query)
	if err != nil {
		return nil, &AcquisitionError{What: "sub-areas", Err: err}
	}

	areas := make([]Area, 0, len(result.Relations))
	for _, rel := range sortedRelations(result.Relations) {
		g := relationGeometry(rel)
		if g == nil {
			continue
		}
		areas = append(areas, Area{
			ID:       rel.ID,
			Geometry: g,
			Name:     rel.Tags["name"],
			NameEn:   rel.Tags["name:en"],
		})
	}
	return areas, nil
}

// LandMask fetches land-classified features inside the boundary area. The
// tag set mirrors what reliably covers urban land: any landuse, woods, and
// islands.
func (s *OverpassSource) LandMask(id int64) ([]orb.Geometry, error) {
	query := fmt.Sprintf(
		`[out:json];area(%d)->.a;(way(area.a)["landuse"];way(area.a)["natural"="wood"];way(area.a)["place"="island"];relation(area.a)["place"="island"];);out body;>;out skel qt;`,
		overpassAreaOffset+id)
	result, err := s.client.Query(query)
	if err != nil {
		return nil, &AcquisitionError{What: "land mask", Err: err}
	}

	var parts []orb.Geometry
	for _, w := range sortedWays(result.Ways) {
		if ring := wayRing(w); ring != nil {
			parts = append(parts, orb.Polygon{ring})
		}
	}
	for _, rel := range sortedRelations(result.Relations) {
		if g := relationGeometry(rel); g != nil {
			parts = append(parts, g)
		}
	}
	return parts, nil
}

// relationGeometry assembles a relation's way members into areal geometry.
func relationGeometry(rel *overpass.Relation) orb.Geometry {
	var members []memberWay
	for _, m := range rel.Members {
		if m.Type != overpass.ElementTypeWay || m.Way == nil {
			continue
		}
		coords := make([]orb.Point, 0, len(m.Way.Nodes))
		for _, n := range m.Way.Nodes {
			if n == nil {
				continue
			}
			coords = append(coords, orb.Point{n.Lon, n.Lat})
		}
		members = append(members, memberWay{role: m.Role, coords: coords})
	}
	return assembleMultiPolygon(members)
}

// wayRing converts a closed standalone way into a ring, or nil.
func wayRing(w *overpass.Way) orb.Ring {
	if len(w.Nodes) < 4 {
		return nil
	}
	ring := make(orb.Ring, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		if n == nil {
			return nil
		}
		ring = append(ring, orb.Point{n.Lon, n.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		return nil
	}
	return ring
}

// Response maps iterate in random order; sort by ID so output is stable
// across runs.
func sortedRelations(rels map[int64]*overpass.Relation) []*overpass.Relation {
	out := make([]*overpass.Relation, 0, len(rels))
	for _, r := range rels {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedWays(ways map[int64]*overpass.Way) []*overpass.Way {
	out := make([]*overpass.Way, 0, len(ways))
	for _, w := range ways {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
