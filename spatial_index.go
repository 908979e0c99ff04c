package main

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// rtreego rejects zero-length extents, so degenerate rectangles and
// axis-parallel query boxes are inflated by this much
const minExtent = 1e-9

// ObstacleEntry wraps an obstacle for R-tree storage
type ObstacleEntry struct {
	Obstacle Obstacle
	BBox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *ObstacleEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers which obstacles could block a given segment, so the
// visibility build only runs the exact blocking test against candidates
// instead of the whole obstacle set
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex creates a new spatial index over the obstacle set
func NewSpatialIndex(obstacles []Obstacle) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, o := range obstacles {
		bbox, err := rtreego.NewRect(
			rtreego.Point{o.X, o.Y},
			[]float64{math.Max(o.Width, minExtent), math.Max(o.Height, minExtent)},
		)
		if err != nil {
			continue
		}
		tree.Insert(&ObstacleEntry{Obstacle: o, BBox: bbox})
	}

	return &SpatialIndex{tree: tree}
}

// QuerySegment returns obstacles whose bounding box intersects the
// bounding box of the segment a-b
func (si *SpatialIndex) QuerySegment(a, b Point) []Obstacle {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.X, b.X)
	maxY := math.Max(a.Y, b.Y)

	bbox, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{math.Max(maxX-minX, minExtent), math.Max(maxY-minY, minExtent)},
	)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*ObstacleEntry).Obstacle)
	}
	return obstacles
}
