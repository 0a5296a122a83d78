package osm

import (
	"fmt"

	"github.com/paulmach/orb"
)

// UnknownName is the sentinel display name for unnamed relations.
const UnknownName = "Unknown"

// Area is one administrative sub-region of a boundary.
type Area struct {
	ID       int64
	Geometry orb.Geometry
	Name     string // "name" tag, usually the local script
	NameEn   string // "name:en" tag, often absent
}

// DisplayName returns the local name, or a sentinel when the relation is
// unnamed. Used for rendered labels.
func (a Area) DisplayName() string {
	if a.Name == "" {
		return UnknownName
	}
	return a.Name
}

// LatinName returns the English name when present, falling back to the local
// name. Used to derive element identifiers.
func (a Area) LatinName() string {
	if a.NameEn != "" {
		return a.NameEn
	}
	return a.DisplayName()
}

// Source provides boundary and sub-area geometry for one OSM relation.
type Source interface {
	// Boundary returns the parent boundary polygon for the relation.
	Boundary(id int64) (orb.Geometry, error)
	// SubAreas returns candidate administrative sub-areas at the given
	// admin level, in a stable order.
	SubAreas(id int64, level string) ([]Area, error)
	// LandMask returns land-classified geometry for clipping. Failure here
	// is non-fatal for callers: they render unclipped instead.
	LandMask(id int64) ([]orb.Geometry, error)
}

// AcquisitionError reports a failed boundary or feature lookup.
type AcquisitionError struct {
	What string
	Err  error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("osm: fetching %s: %v", e.What, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }
