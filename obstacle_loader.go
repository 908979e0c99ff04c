package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
)

// LoadObstacleSets loads rectangle obstacles from all GeoJSON files in a
// directory. Each feature contributes one obstacle: the axis-aligned bound
// of its geometry. Degenerate (zero-area) bounds load as zero-extent
// rectangles, which the geometry kernel tolerates.
//
// Returned obstacles carry no ids; the workspace assigns wall ids when
// they are placed.
func LoadObstacleSets(dir string) ([]Obstacle, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	var all []Obstacle

	log.Printf("Loading obstacle sets from %d GeoJSON files...\n", len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		obstacles, err := ParseObstacleSet(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		all = append(all, obstacles...)
		log.Printf("   ✅ Loaded %d obstacles from %s\n", len(obstacles), filepath.Base(file))
	}

	log.Printf("Total obstacles loaded: %d\n", len(all))
	return all, nil
}

// ParseObstacleSet converts a GeoJSON feature collection into rectangle
// obstacles, one per feature bound
func ParseObstacleSet(data []byte) ([]Obstacle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	obstacles := make([]Obstacle, 0, len(fc.Features))
	for _, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}
		bound := feature.Geometry.Bound()
		obstacles = append(obstacles, Obstacle{
			X:      bound.Min[0],
			Y:      bound.Min[1],
			Width:  bound.Max[0] - bound.Min[0],
			Height: bound.Max[1] - bound.Min[1],
		})
	}
	return obstacles, nil
}
