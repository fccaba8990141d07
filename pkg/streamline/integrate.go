package streamline

import (
	"math"

	"github.com/flowlines/flowlines/pkg/field"
)

// singularEps is the magnitude below which the field is treated as zero.
// Normalizing a vector this small would amplify noise into arbitrary
// directions, so integration stops instead.
const singularEps = 1e-12

// Trace integrates one streamline forward and backward from seed using
// classical fixed-step RK4 on the normalized field, with the step size
// proportional to the local grid spacing. A direction terminates on domain
// exit, a critical point, a non-finite step, a separation violation against
// idx (distance < opts.DTest), or after opts.MaxSteps steps.
//
// The returned streamline carries a separation sample per point: the distance
// to the nearest indexed point, clamped to opts.DSep. ok is false when the
// trace is trivial (degenerate seed, or total arc length below d_test) and
// the line should be discarded.
//
// Trace assumes opts has been validated.
func Trace(f *field.Field, seed Point, opts Options, idx *Index) (Streamline, bool) {
	if !f.Contains(seed.X, seed.Y) {
		return Streamline{}, false
	}
	if _, _, ok := direction(f, seed); !ok {
		// Seeded on a critical point or an undefined sample.
		return Streamline{}, false
	}

	forward := traceDirection(f, seed, opts, idx, 1)
	backward := traceDirection(f, seed, opts, idx, -1)

	// Stitch: backward reversed, then forward without repeating the seed.
	n := len(backward) + len(forward) - 1
	line := Streamline{
		Points: make([]Point, 0, n),
		Sep:    make([]float64, 0, n),
	}
	for i := len(backward) - 1; i >= 0; i-- {
		line.Points = append(line.Points, backward[i].p)
		line.Sep = append(line.Sep, backward[i].sep)
	}
	for _, s := range forward[1:] {
		line.Points = append(line.Points, s.p)
		line.Sep = append(line.Sep, s.sep)
	}

	if len(line.Points) < 2 || line.ArcLength() < opts.DTest {
		return Streamline{}, false
	}
	return line, true
}

// sample pairs a traced point with its separation distance.
type sample struct {
	p   Point
	sep float64
}

// traceDirection integrates from seed with the field scaled by sign
// (+1 forward, -1 backward). The seed itself is always the first sample.
func traceDirection(f *field.Field, seed Point, opts Options, idx *Index, sign float64) []sample {
	out := []sample{{p: seed, sep: clampSep(idx.NearestDistance(seed), opts.DSep)}}

	cur := seed
	for step := 0; step < opts.MaxSteps; step++ {
		h := sign * opts.StepFactor * f.Spacing(cur.X, cur.Y)
		nxt, ok := rk4Step(f, cur, h)
		if !ok {
			break // exited the domain or hit a critical point mid-step
		}
		if math.IsNaN(nxt.X) || math.IsNaN(nxt.Y) || math.IsInf(nxt.X, 0) || math.IsInf(nxt.Y, 0) {
			break
		}
		if !f.Contains(nxt.X, nxt.Y) {
			break
		}

		d := idx.NearestDistance(nxt)
		if d < opts.DTest {
			break // too close to an existing line
		}

		out = append(out, sample{p: nxt, sep: clampSep(d, opts.DSep)})
		cur = nxt
	}
	return out
}

// rk4Step advances one classical Runge–Kutta step of size h along the
// normalized field. ok is false when any stage samples outside the domain or
// lands on a critical point.
func rk4Step(f *field.Field, p Point, h float64) (Point, bool) {
	k1x, k1y, ok := direction(f, p)
	if !ok {
		return Point{}, false
	}
	k2x, k2y, ok := direction(f, Point{p.X + h/2*k1x, p.Y + h/2*k1y})
	if !ok {
		return Point{}, false
	}
	k3x, k3y, ok := direction(f, Point{p.X + h/2*k2x, p.Y + h/2*k2y})
	if !ok {
		return Point{}, false
	}
	k4x, k4y, ok := direction(f, Point{p.X + h*k3x, p.Y + h*k3y})
	if !ok {
		return Point{}, false
	}

	return Point{
		X: p.X + h/6*(k1x+2*k2x+2*k3x+k4x),
		Y: p.Y + h/6*(k1y+2*k2y+2*k3y+k4y),
	}, true
}

// direction returns the unit field vector at p.
// ok is false outside the domain or where the magnitude is numerically zero.
func direction(f *field.Field, p Point) (ux, uy float64, ok bool) {
	vx, vy, ok := f.Sample(p.X, p.Y)
	if !ok {
		return 0, 0, false
	}
	mag := math.Hypot(vx, vy)
	if mag < singularEps {
		return 0, 0, false
	}
	return vx / mag, vy / mag, true
}

func clampSep(d, dsep float64) float64 {
	if d > dsep {
		return dsep
	}
	return d
}
