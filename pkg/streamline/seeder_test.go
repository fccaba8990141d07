package streamline

import (
	"bytes"
	"context"
	"math"
	"sort"
	"testing"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/field"
)

func TestSeederUniformFieldFillsDomain(t *testing.T) {
	// Spec scenario: v=(1,0) on [0,10]x[0,10], seed (5,5), d_sep=1,
	// d_test=0.5. The result is horizontal parallel lines spaced exactly
	// d_sep apart, filling the domain.
	f := uniformField(t)
	s, err := NewSeeder(f, Options{DSep: 1, DTest: 0.5, Seed: &Point{X: 5, Y: 5}})
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}

	ds, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := ds.Streamlines()
	if len(lines) != 11 {
		t.Fatalf("line count = %d, want 11 (y = 0..10)", len(lines))
	}

	var ys []float64
	for _, line := range lines {
		y := line.Points[0].Y
		for _, p := range line.Points {
			if math.Abs(p.Y-y) > 1e-9 {
				t.Fatalf("line through y=%g is not horizontal: %v", y, p)
			}
		}
		first, last := line.Points[0], line.Points[len(line.Points)-1]
		if math.Abs(first.X) > 1e-9 || math.Abs(last.X-10) > 1e-9 {
			t.Errorf("line at y=%g spans [%g, %g], want [0, 10]", y, first.X, last.X)
		}
		ys = append(ys, y)
	}

	sort.Float64s(ys)
	for i, want := range []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
		if math.Abs(ys[i]-want) > 1e-9 {
			t.Errorf("ys[%d] = %g, want %g", i, ys[i], want)
		}
	}
}

func TestSeederZeroField(t *testing.T) {
	zero, err := field.FromFunc(field.UniformAxes(0, 1, 8), field.UniformAxes(0, 1, 8), field.Uniform(0, 0))
	if err != nil {
		t.Fatalf("FromFunc: %v", err)
	}

	s, err := NewSeeder(zero, Options{DSep: 0.1})
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}
	ds, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("zero field produced %d streamlines, want 0", ds.Len())
	}
}

func TestSeederSeparationInvariant(t *testing.T) {
	// Core invariant: the minimum distance between points on distinct
	// streamlines never falls below d_test.
	f, err := field.Builtin(field.NameVortex, 0, 0, 10, 10, 41, 41)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}

	opts := Options{DSep: 0.6, MaxSteps: 200, Seed: &Point{X: 7, Y: 5}}
	s, err := NewSeeder(f, opts)
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}
	ds, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ds.Len() < 2 {
		t.Fatalf("expected multiple streamlines, got %d", ds.Len())
	}

	dtest := opts.DSep / 2
	lines := ds.Streamlines()
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			min := minPairDistance(lines[i], lines[j])
			if min < dtest-1e-9 {
				t.Fatalf("lines %d and %d are %g apart, below d_test %g", i, j, min, dtest)
			}
		}
	}
}

func TestSeederAvoidsCriticalPoint(t *testing.T) {
	f, err := field.Builtin(field.NameVortex, 0, 0, 10, 10, 41, 41)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}

	s, err := NewSeeder(f, Options{DSep: 0.5, MaxSteps: 400, Seed: &Point{X: 6, Y: 5}})
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}
	ds, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ds.Len() == 0 {
		t.Fatal("expected streamlines around the vortex")
	}

	center := Point{X: 5, Y: 5}
	for li, line := range ds.Streamlines() {
		for _, p := range line.Points {
			if p.Dist(center) < 1e-9 {
				t.Fatalf("line %d passes through the critical point", li)
			}
		}
	}
}

func TestSeederDeterminism(t *testing.T) {
	f, err := field.Builtin(field.NameDoubleGyre, 0, 0, 2, 1, 41, 21)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}

	run := func() []byte {
		s, err := NewSeeder(f, Options{DSep: 0.08, MaxSteps: 1000})
		if err != nil {
			t.Fatalf("NewSeeder: %v", err)
		}
		ds, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		data, err := Marshal(ds)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}

	a, b := run(), run()
	if !bytes.Equal(a, b) {
		t.Error("two identical runs produced different datasets")
	}
}

func TestSeederMaxLines(t *testing.T) {
	f := uniformField(t)
	s, err := NewSeeder(f, Options{DSep: 0.5, MaxLines: 3})
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}
	ds, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("line count = %d, want MaxLines = 3", ds.Len())
	}
}

func TestSeederContextCancellation(t *testing.T) {
	f := uniformField(t)
	s, err := NewSeeder(f, Options{DSep: 0.05})
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds, err := s.Run(ctx)
	if err == nil {
		t.Error("cancelled run should return the context error")
	}
	if ds == nil {
		t.Error("cancelled run should still return the dataset accumulated so far")
	}
}

func TestSeederInvalidOptions(t *testing.T) {
	f := uniformField(t)

	if _, err := NewSeeder(f, Options{DSep: 0}); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("zero d_sep error = %v, want INVALID_PARAMS", err)
	}
	if _, err := NewSeeder(f, Options{DSep: 1, DTest: 1.5}); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("d_test >= d_sep error = %v, want INVALID_PARAMS", err)
	}
}

func TestSeederOutOfDomainSeedSkipped(t *testing.T) {
	// A caller-supplied seed outside the bounds is silently skipped,
	// producing an empty dataset rather than an error.
	f := uniformField(t)
	s, err := NewSeeder(f, Options{DSep: 1, Seed: &Point{X: -5, Y: 5}})
	if err != nil {
		t.Fatalf("NewSeeder: %v", err)
	}
	ds, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("line count = %d, want 0", ds.Len())
	}
}

func minPairDistance(a, b Streamline) float64 {
	min := math.Inf(1)
	for _, p := range a.Points {
		for _, q := range b.Points {
			if d := p.Dist(q); d < min {
				min = d
			}
		}
	}
	return min
}
