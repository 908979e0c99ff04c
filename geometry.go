package main

import "math"

// Point is a position in the plane
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Obstacle represents an axis-aligned rectangle blocking movement.
// X,Y is the top-left corner; Width and Height are non-negative after
// normalization at the input boundary.
type Obstacle struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize folds negative extents so Width and Height are always >= 0
func (o Obstacle) Normalize() Obstacle {
	if o.Width < 0 {
		o.X += o.Width
		o.Width = -o.Width
	}
	if o.Height < 0 {
		o.Y += o.Height
		o.Height = -o.Height
	}
	return o
}

// Corners returns the four corner points in clockwise order from top-left
func (o Obstacle) Corners() [4]Point {
	return [4]Point{
		{X: o.X, Y: o.Y},
		{X: o.X + o.Width, Y: o.Y},
		{X: o.X + o.Width, Y: o.Y + o.Height},
		{X: o.X, Y: o.Y + o.Height},
	}
}

// edges returns the four boundary segments of the rectangle
func (o Obstacle) edges() [4][2]Point {
	c := o.Corners()
	return [4][2]Point{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// diagonals returns the two corner-to-corner segments of the rectangle
func (o Obstacle) diagonals() [2][2]Point {
	c := o.Corners()
	return [2][2]Point{
		{c[0], c[2]},
		{c[1], c[3]},
	}
}

// SegmentsIntersect checks if segment a1-a2 strictly crosses segment b1-b2.
// Solves the 2x2 system for the intersection parameters lambda (along a)
// and gamma (along b); parallel or collinear segments (det == 0) never
// intersect. The acceptance interval is open: touching at an endpoint or
// grazing a shared corner does not count as a crossing, so obstacle corner
// nodes stay visible to their incident segments.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	dax := a2.X - a1.X
	day := a2.Y - a1.Y
	dbx := b2.X - b1.X
	dby := b2.Y - b1.Y

	det := dax*dby - day*dbx
	if det == 0 {
		return false
	}

	lambda := ((b2.Y-b1.Y)*(b2.X-a1.X) + (b1.X-b2.X)*(b2.Y-a1.Y)) / det
	gamma := ((a1.Y-a2.Y)*(b2.X-a1.X) + (a2.X-a1.X)*(b2.Y-a1.Y)) / det

	return 0 < lambda && lambda < 1 && 0 < gamma && gamma < 1
}

// PointInRect checks if a point lies strictly inside a rectangle.
// Boundary points are outside, consistent with the open-interval crossing
// test.
func PointInRect(p Point, r Obstacle) bool {
	return r.X < p.X && p.X < r.X+r.Width &&
		r.Y < p.Y && p.Y < r.Y+r.Height
}

// SegmentBlockedByRect checks if the segment a-b is blocked by rectangle r.
// The segment is blocked when it strictly crosses a boundary edge, when an
// endpoint lies strictly inside, or when it cuts through the interior
// without strictly crossing an edge (entering and leaving exactly through
// opposite corners, or lying wholly inside). A segment that only touches a
// corner or runs along an edge is not blocked.
func SegmentBlockedByRect(a, b Point, r Obstacle) bool {
	for _, edge := range r.edges() {
		if SegmentsIntersect(a, b, edge[0], edge[1]) {
			return true
		}
	}

	if PointInRect(a, r) || PointInRect(b, r) {
		return true
	}

	// Corner-to-corner traversal slips past the open-interval edge test;
	// such a segment strictly crosses a diagonal instead.
	for _, diag := range r.diagonals() {
		if SegmentsIntersect(a, b, diag[0], diag[1]) {
			return true
		}
	}

	// Segment entirely inside with both endpoints on the boundary
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return PointInRect(mid, r)
}

// IsVisible checks if a straight line between two points is collision-free
// with respect to every obstacle in the set
func IsVisible(a, b Point, obstacles []Obstacle) bool {
	for _, o := range obstacles {
		if SegmentBlockedByRect(a, b, o) {
			return false
		}
	}
	return true
}
