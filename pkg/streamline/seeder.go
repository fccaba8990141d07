package streamline

import (
	"context"
	"math"

	"github.com/flowlines/flowlines/pkg/field"
	"github.com/flowlines/flowlines/pkg/observability"
)

// ctxCheckInterval is how many queue iterations pass between context checks.
const ctxCheckInterval = 64

// Seeder drives the evenly-spaced placement state machine: it owns the seed
// queue and the separation index for the duration of one run. A Seeder is
// single-use; create a new one per run.
type Seeder struct {
	field *field.Field
	opts  Options
	index *Index
	ds    *Dataset

	// FIFO candidate queue. Strict queue order keeps runs deterministic;
	// nothing that feeds the queue may iterate over a map.
	queue []Point
	head  int
}

// NewSeeder validates opts and prepares a seeding run over f.
func NewSeeder(f *field.Field, opts Options) (*Seeder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Seeder{
		field: f,
		opts:  opts,
		index: NewIndex(opts.DSep),
		ds:    &Dataset{},
	}, nil
}

// Run executes the seeding loop until the candidate queue drains, the
// optional MaxLines cap is reached, or ctx is cancelled. The returned
// Dataset is owned by the caller; results are never backtracked or revised,
// so the dataset accumulated before a cancellation is still valid.
func (s *Seeder) Run(ctx context.Context) (*Dataset, error) {
	hooks := observability.Seeding()
	hooks.OnRunStart(ctx, s.opts.DSep, s.opts.DTest)

	seed := s.initialSeed()
	if line, ok := Trace(s.field, seed, s.opts, s.index); ok {
		s.accept(ctx, line, hooks)
	}

	for s.head < len(s.queue) {
		if s.head%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return s.ds, err
			}
		}
		if s.opts.MaxLines > 0 && s.ds.Len() >= s.opts.MaxLines {
			break
		}

		cand := s.queue[s.head]
		s.head++

		// Candidates outside the domain are unreachable, not errors.
		if !s.field.Contains(cand.X, cand.Y) {
			continue
		}
		if s.index.NearestDistance(cand) < s.opts.DSep {
			hooks.OnSeedRejected(ctx)
			continue
		}

		line, ok := Trace(s.field, cand, s.opts, s.index)
		if !ok {
			hooks.OnSeedRejected(ctx)
			continue
		}
		s.accept(ctx, line, hooks)
	}

	hooks.OnRunComplete(ctx, s.ds.Len(), s.ds.PointCount())
	return s.ds, nil
}

// Queued returns the number of candidates still waiting in the queue.
// Intended for progress reporting; only meaningful between runs of the loop
// when called from the same goroutine.
func (s *Seeder) Queued() int {
	return len(s.queue) - s.head
}

// Placed returns the number of streamlines accepted so far.
func (s *Seeder) Placed() int {
	return s.ds.Len()
}

func (s *Seeder) initialSeed() Point {
	if s.opts.Seed != nil {
		return *s.opts.Seed
	}
	cx, cy := s.field.Center()
	return Point{X: cx, Y: cy}
}

// accept commits a traced line: dataset, index, then its candidate seeds.
func (s *Seeder) accept(ctx context.Context, line Streamline, hooks observability.SeedingHooks) {
	s.ds.add(line)
	s.index.Insert(line.Points)
	s.enqueueCandidates(line)
	hooks.OnLineAccepted(ctx, len(line.Points))
}

// enqueueCandidates walks the accepted polyline and, at every d_sep of arc
// length, emits two candidate seeds offset d_sep along the local unit normal,
// one on each side. Candidates are appended to the queue tail in walk order,
// left before right.
func (s *Seeder) enqueueCandidates(line Streamline) {
	next := 0.0 // arc length at which to emit the next pair
	walked := 0.0

	for i := 1; i < len(line.Points); i++ {
		a, b := line.Points[i-1], line.Points[i]
		seg := a.Dist(b)
		if seg == 0 {
			continue
		}

		for next <= walked+seg {
			t := (next - walked) / seg
			p := Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}

			// Unit normal of the local direction of travel.
			nx, ny := -(b.Y-a.Y)/seg, (b.X-a.X)/seg
			if !math.IsNaN(nx) && !math.IsNaN(ny) {
				s.queue = append(s.queue,
					Point{X: p.X + nx*s.opts.DSep, Y: p.Y + ny*s.opts.DSep},
					Point{X: p.X - nx*s.opts.DSep, Y: p.Y - ny*s.opts.DSep},
				)
			}
			next += s.opts.DSep
		}
		walked += seg
	}
}
