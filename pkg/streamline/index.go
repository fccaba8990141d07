package streamline

import "math"

// Index is a grid-bucket spatial hash over the points of accepted
// streamlines. The bucket size equals d_sep, so every distance the seeder or
// integrator compares against (thresholds ≤ d_sep) is resolved exactly by
// searching a point's own bucket and its eight neighbors.
//
// Only points of accepted streamlines are inserted; the line currently being
// traced never sees itself.
type Index struct {
	cell    float64
	buckets map[bucketKey][]Point
	count   int
}

type bucketKey struct {
	ix, iy int
}

// NewIndex creates an index with the given bucket size (normally d_sep).
func NewIndex(cell float64) *Index {
	return &Index{
		cell:    cell,
		buckets: make(map[bucketKey][]Point),
	}
}

// Insert adds points to the index.
func (ix *Index) Insert(points []Point) {
	for _, p := range points {
		k := ix.key(p)
		ix.buckets[k] = append(ix.buckets[k], p)
	}
	ix.count += len(points)
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	return ix.count
}

// NearestDistance returns the distance from p to the nearest indexed point,
// searching the 3×3 bucket neighborhood around p. When no point lies within
// that neighborhood the true nearest distance exceeds the bucket size and
// +Inf is returned; callers compare against thresholds no larger than the
// bucket size, for which the answer is exact.
func (ix *Index) NearestDistance(p Point) float64 {
	k := ix.key(p)
	best := math.Inf(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, q := range ix.buckets[bucketKey{k.ix + dx, k.iy + dy}] {
				if d := p.Dist(q); d < best {
					best = d
				}
			}
		}
	}
	return best
}

func (ix *Index) key(p Point) bucketKey {
	return bucketKey{
		ix: int(math.Floor(p.X / ix.cell)),
		iy: int(math.Floor(p.Y / ix.cell)),
	}
}
