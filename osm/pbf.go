package osm

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
)

// FileSource serves boundary and sub-area geometry from a local .osm.pbf
// extract instead of the Overpass API. The whole extract is decoded into
// memory once; lookups are map reads afterwards.
type FileSource struct {
	nodes     map[int64]orb.Point
	ways      map[int64]*pbfWay
	relations map[int64]*pbfRelation
}

type pbfWay struct {
	nodes []int64
	tags  map[string]string
}

type pbfRelation struct {
	id      int64
	members []osmpbf.Member
	tags    map[string]string
}

// OpenFileSource decodes the extract at path.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AcquisitionError{What: "pbf extract", Err: err}
	}
	defer f.Close()

	d := osmpbf.NewDecoder(f)

	// use more memory from the start, it is faster
	d.SetBufferSize(osmpbf.MaxBlobSize)

	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, &AcquisitionError{What: "pbf extract", Err: err}
	}

	s := &FileSource{
		nodes:     make(map[int64]orb.Point),
		ways:      make(map[int64]*pbfWay),
		relations: make(map[int64]*pbfRelation),
	}
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &AcquisitionError{What: "pbf extract", Err: err}
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			s.nodes[v.ID] = orb.Point{v.Lon, v.Lat}
		case *osmpbf.Way:
			s.ways[v.ID] = &pbfWay{nodes: v.NodeIDs, tags: v.Tags}
		case *osmpbf.Relation:
			s.relations[v.ID] = &pbfRelation{id: v.ID, members: v.Members, tags: v.Tags}
		}
	}
	log.Printf("Loaded %s: %d nodes, %d ways, %d relations",
		path, len(s.nodes), len(s.ways), len(s.relations))
	return s, nil
}

func (s *FileSource) Boundary(id int64) (orb.Geometry, error) {
	rel, ok := s.relations[id]
	if !ok {
		return nil, &AcquisitionError{What: "boundary", Err: fmt.Errorf("relation %d not in extract", id)}
	}
	g := s.relationGeometry(rel)
	if g == nil {
		return nil, &AcquisitionError{What: "boundary", Err: fmt.Errorf("relation %d has no closed outer ring", id)}
	}
	return g, nil
}

// SubAreas returns every admin boundary relation in the extract at the given
// level, except the parent itself. Membership in the parent is decided by
// the downstream spatial filter, not here.
func (s *FileSource) SubAreas(id int64, level string) ([]Area, error) {
	var areas []Area
	for _, rel := range s.sortedRelations() {
		if rel.id == id {
			continue
		}
		if rel.tags["type"] != "boundary" || rel.tags["admin_level"] != level {
			continue
		}
		g := s.relationGeometry(rel)
		if g == nil {
			continue
		}
		areas = append(areas, Area{
			ID:       rel.id,
			Geometry: g,
			Name:     rel.tags["name"],
			NameEn:   rel.tags["name:en"],
		})
	}
	return areas, nil
}

func (s *FileSource) LandMask(id int64) ([]orb.Geometry, error) {
	var parts []orb.Geometry
	for _, wid := range s.sortedWayIDs() {
		w := s.ways[wid]
		if !landTagged(w.tags) {
			continue
		}
		if ring := s.closedWayRing(w); ring != nil {
			parts = append(parts, orb.Polygon{ring})
		}
	}
	for _, rel := range s.sortedRelations() {
		if rel.tags["place"] != "island" {
			continue
		}
		if g := s.relationGeometry(rel); g != nil {
			parts = append(parts, g)
		}
	}
	return parts, nil
}

func landTagged(tags map[string]string) bool {
	if _, ok := tags["landuse"]; ok {
		return true
	}
	return tags["natural"] == "wood" || tags["place"] == "island"
}

// relationGeometry resolves member ways against the extract and assembles
// them. Ways with missing nodes are skipped rather than producing gaps.
func (s *FileSource) relationGeometry(rel *pbfRelation) orb.Geometry {
	var members []memberWay
	for _, m := range rel.members {
		if m.Type != osmpbf.WayType {
			continue
		}
		w, ok := s.ways[m.ID]
		if !ok {
			continue
		}
		coords := make([]orb.Point, 0, len(w.nodes))
		complete := true
		for _, nid := range w.nodes {
			pt, ok := s.nodes[nid]
			if !ok {
				complete = false
				break
			}
			coords = append(coords, pt)
		}
		if !complete {
			continue
		}
		members = append(members, memberWay{role: m.Role, coords: coords})
	}
	return assembleMultiPolygon(members)
}

func (s *FileSource) closedWayRing(w *pbfWay) orb.Ring {
	if len(w.nodes) < 4 || w.nodes[0] != w.nodes[len(w.nodes)-1] {
		return nil
	}
	ring := make(orb.Ring, 0, len(w.nodes))
	for _, nid := range w.nodes {
		pt, ok := s.nodes[nid]
		if !ok {
			return nil
		}
		ring = append(ring, pt)
	}
	return ring
}

func (s *FileSource) sortedRelations() []*pbfRelation {
	out := make([]*pbfRelation, 0, len(s.relations))
	for _, r := range s.relations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *FileSource) sortedWayIDs() []int64 {
	out := make([]int64, 0, len(s.ways))
	for id := range s.ways {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
