package streamline

import "math"

// Point is a position in field coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Streamline is an ordered polyline traced from a single seed, with a
// parallel slice of separation samples: Sep[i] is the distance from Points[i]
// to the nearest point of any other streamline at placement time, clamped to
// d_sep. Streamlines are immutable once accepted into a Dataset.
type Streamline struct {
	Points []Point
	Sep    []float64
}

// ArcLength returns the total length of the polyline.
func (s Streamline) ArcLength() float64 {
	var total float64
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i-1].Dist(s.Points[i])
	}
	return total
}

// Dataset is the output of a seeding run: the accepted streamlines in
// acceptance order. It is read-only for callers; only the seeder appends.
type Dataset struct {
	lines []Streamline
}

// Streamlines returns the accepted streamlines in acceptance order.
// The returned slice is shared; callers must not modify it.
func (d *Dataset) Streamlines() []Streamline {
	return d.lines
}

// Len returns the number of accepted streamlines.
func (d *Dataset) Len() int {
	return len(d.lines)
}

// PointCount returns the total number of points across all streamlines.
func (d *Dataset) PointCount() int {
	var n int
	for _, s := range d.lines {
		n += len(s.Points)
	}
	return n
}

// SeparationAt returns the separation sample for point i of streamline line.
func (d *Dataset) SeparationAt(line, i int) float64 {
	return d.lines[line].Sep[i]
}

func (d *Dataset) add(s Streamline) {
	d.lines = append(d.lines, s)
}
