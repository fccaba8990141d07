package streamline

import (
	"math"
	"testing"
)

func TestIndexEmpty(t *testing.T) {
	ix := NewIndex(1.0)

	if ix.Len() != 0 {
		t.Errorf("Len = %d, want 0", ix.Len())
	}
	if d := ix.NearestDistance(Point{3, 4}); !math.IsInf(d, 1) {
		t.Errorf("NearestDistance on empty index = %g, want +Inf", d)
	}
}

func TestIndexNearestDistance(t *testing.T) {
	ix := NewIndex(1.0)
	ix.Insert([]Point{{0, 0}, {2, 0}, {0.5, 0.5}})

	tests := []struct {
		p    Point
		want float64
	}{
		{Point{0, 0}, 0},
		{Point{0.1, 0}, 0.1},
		{Point{2, 0.3}, 0.3},
		{Point{0.5, 0.4}, 0.1},
	}
	for _, tt := range tests {
		got := ix.NearestDistance(tt.p)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NearestDistance(%v) = %g, want %g", tt.p, got, tt.want)
		}
	}
}

func TestIndexNegativeCoordinates(t *testing.T) {
	ix := NewIndex(0.5)
	ix.Insert([]Point{{-1.2, -3.4}})

	if d := ix.NearestDistance(Point{-1.2, -3.4}); d != 0 {
		t.Errorf("NearestDistance at inserted point = %g, want 0", d)
	}
	if d := ix.NearestDistance(Point{-1.2, -3.3}); math.Abs(d-0.1) > 1e-12 {
		t.Errorf("NearestDistance = %g, want 0.1", d)
	}
}

func TestIndexNeighborhoodBound(t *testing.T) {
	// A point more than one bucket away is invisible to the 3x3 search;
	// the query must report +Inf rather than a wrong finite distance.
	ix := NewIndex(1.0)
	ix.Insert([]Point{{10, 10}})

	if d := ix.NearestDistance(Point{0, 0}); !math.IsInf(d, 1) {
		t.Errorf("NearestDistance far from all points = %g, want +Inf", d)
	}

	// Within one bucket size the distance is exact even across bucket edges.
	if d := ix.NearestDistance(Point{9.05, 10}); math.Abs(d-0.95) > 1e-12 {
		t.Errorf("NearestDistance across bucket edge = %g, want 0.95", d)
	}
}

func TestIndexLen(t *testing.T) {
	ix := NewIndex(1.0)
	ix.Insert([]Point{{0, 0}, {1, 1}})
	ix.Insert([]Point{{2, 2}})
	if ix.Len() != 3 {
		t.Errorf("Len = %d, want 3", ix.Len())
	}
}
