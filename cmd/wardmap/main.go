package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"wardmap/geom"
	"wardmap/osm"
	"wardmap/render"
)

// parseRelationID accepts a relation ID with or without the 'R' prefix.
func parseRelationID(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "R")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid relation ID %q", s)
	}
	return id, nil
}

// inputs holds everything fetched for one boundary: the parent geometry, the
// candidate sub-areas, and the (possibly absent) land mask.
type inputs struct {
	boundary orb.Geometry
	areas    []osm.Area
	mask     *geom.LandMask
}

func fetchInputs(src osm.Source, id int64, level string) (*inputs, error) {
	log.Printf("Fetching bounding geometry for R%d...", id)
	boundary, err := src.Boundary(id)
	if err != nil {
		return nil, err
	}

	log.Printf("Fetching subareas (admin_level=%s)...", level)
	areas, err := src.SubAreas(id, level)
	if err != nil {
		return nil, err
	}
	log.Printf("Fetched %d candidate subareas", len(areas))

	log.Println("Fetching land areas for clipping...")
	var mask *geom.LandMask
	parts, err := src.LandMask(id)
	if err != nil {
		log.Printf("Land mask failed, proceeding with unclipped bounds: %v", err)
	} else {
		mask = geom.NewLandMask(parts)
		log.Printf("Indexed %d land parts", mask.Size())
	}

	return &inputs{boundary: boundary, areas: areas, mask: mask}, nil
}

func generate(src osm.Source, id int64, level string, width float64) (*render.Document, error) {
	in, err := fetchInputs(src, id, level)
	if err != nil {
		return nil, err
	}
	log.Println("Constructing SVG elements...")
	return render.Build(in.boundary, in.areas, in.mask, width)
}

func main() {
	idArg := flag.String("id", "", "OSM relation ID of the boundary (e.g. R2689482)")
	out := flag.String("o", "", "output SVG path (default <id>.svg)")
	width := flag.Float64("width", geom.DefaultCanvasWidth, "canvas width in SVG units")
	level := flag.String("level", "8", "admin_level of the subareas to render")
	pbf := flag.String("pbf", "", "read from a local .osm.pbf extract instead of Overpass")
	serve := flag.String("serve", "", "serve maps over HTTP on this address instead of writing a file")
	flag.Parse()

	log.Println("wardmap starting...")

	var src osm.Source
	if *pbf != "" {
		s, err := osm.OpenFileSource(*pbf)
		if err != nil {
			log.Fatal(err)
		}
		src = s
	} else {
		src = osm.NewOverpassSource()
	}

	if *serve != "" {
		runServer(*serve, src, *level, *width)
		return
	}

	if *idArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: wardmap -id <OSM_ID> [-o out.svg]")
		fmt.Fprintln(os.Stderr, "Example: wardmap -id R2689482")
		os.Exit(1)
	}
	id, err := parseRelationID(*idArg)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := generate(src, id, *level, *width)
	if err != nil {
		log.Fatal(err)
	}

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("R%d.svg", id)
	}
	f, err := os.Create(filename)
	if err != nil {
		log.Fatal(err)
	}
	if err := doc.WriteSVG(f); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Complete. SVG exported to %s", filename)
}
