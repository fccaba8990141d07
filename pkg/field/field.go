// Package field provides regular-grid 2D vector fields with bilinear sampling.
//
// # Overview
//
// A [Field] holds two same-shaped component grids (x-component, y-component)
// over strictly increasing coordinate axes. Axes may be non-uniformly spaced;
// consumers that integrate through the field should use [Field.Spacing] to
// derive a step size from the local cell, not a single global value.
//
// Construction validates shape and monotonicity up front, so a successfully
// built Field can be sampled without further checks:
//
//	f, err := field.New(xs, ys, u, v)
//	if err != nil {
//	    return err
//	}
//	vx, vy, ok := f.Sample(2.5, 3.5)
//	if !ok {
//	    // (2.5, 3.5) is outside the grid bounds
//	}
//
// Sampling outside the axis-aligned bounding box returns ok=false rather than
// a zero vector, so callers can distinguish "left the domain" from "reached a
// critical point of the field".
//
// # Analytic Builders
//
// The builders in builders.go construct common demonstration fields (uniform
// flow, vortex, saddle, double gyre) on uniform axes. [Builtin] resolves a
// builder by name for CLI flags and HTTP query parameters.
package field

import (
	"math"
	"sort"

	"github.com/flowlines/flowlines/pkg/errors"
)

// Field is an immutable regular grid of 2D vectors.
// The component grids are indexed [iy][ix]: u[j][i] is the x-component at
// (xs[i], ys[j]). Use [New] to construct a validated Field.
type Field struct {
	xs, ys []float64
	u, v   [][]float64
}

// New builds a Field from coordinate axes and component grids.
// It fails fast with an INVALID_FIELD error when the axes are not strictly
// increasing, either axis has fewer than two samples, or the component grids
// do not match the axis dimensions exactly. All inputs are copied; the caller
// may reuse its slices afterwards.
func New(xs, ys []float64, u, v [][]float64) (*Field, error) {
	if err := validateAxis("x", xs); err != nil {
		return nil, err
	}
	if err := validateAxis("y", ys); err != nil {
		return nil, err
	}
	if err := validateComponent("u", u, len(xs), len(ys)); err != nil {
		return nil, err
	}
	if err := validateComponent("v", v, len(xs), len(ys)); err != nil {
		return nil, err
	}

	f := &Field{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		u:  make([][]float64, len(u)),
		v:  make([][]float64, len(v)),
	}
	for j := range u {
		f.u[j] = append([]float64(nil), u[j]...)
		f.v[j] = append([]float64(nil), v[j]...)
	}
	return f, nil
}

func validateAxis(name string, ax []float64) error {
	if len(ax) < 2 {
		return errors.New(errors.ErrCodeInvalidField, "%s axis needs at least 2 samples, got %d", name, len(ax))
	}
	for i := 1; i < len(ax); i++ {
		if !(ax[i] > ax[i-1]) {
			return errors.New(errors.ErrCodeInvalidField, "%s axis must be strictly increasing at index %d", name, i)
		}
	}
	return nil
}

func validateComponent(name string, c [][]float64, nx, ny int) error {
	if len(c) != ny {
		return errors.New(errors.ErrCodeInvalidField, "%s component has %d rows, want %d", name, len(c), ny)
	}
	for j, row := range c {
		if len(row) != nx {
			return errors.New(errors.ErrCodeInvalidField, "%s component row %d has %d columns, want %d", name, j, len(row), nx)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the grid.
func (f *Field) Bounds() (x0, y0, x1, y1 float64) {
	return f.xs[0], f.ys[0], f.xs[len(f.xs)-1], f.ys[len(f.ys)-1]
}

// Contains reports whether (x, y) lies within the grid bounds, inclusive.
func (f *Field) Contains(x, y float64) bool {
	x0, y0, x1, y1 := f.Bounds()
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}

// Center returns the midpoint of the grid bounds.
func (f *Field) Center() (x, y float64) {
	x0, y0, x1, y1 := f.Bounds()
	return (x0 + x1) / 2, (y0 + y1) / 2
}

// Sample bilinearly interpolates the field at (x, y).
// It returns ok=false when (x, y) lies outside the grid bounds; the vector
// components are only meaningful when ok is true. Sample is a pure function:
// identical arguments always produce identical results.
func (f *Field) Sample(x, y float64) (vx, vy float64, ok bool) {
	if !f.Contains(x, y) || math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}

	i := cellIndex(f.xs, x)
	j := cellIndex(f.ys, y)

	tx := (x - f.xs[i]) / (f.xs[i+1] - f.xs[i])
	ty := (y - f.ys[j]) / (f.ys[j+1] - f.ys[j])

	vx = bilerp(f.u[j][i], f.u[j][i+1], f.u[j+1][i], f.u[j+1][i+1], tx, ty)
	vy = bilerp(f.v[j][i], f.v[j][i+1], f.v[j+1][i], f.v[j+1][i+1], tx, ty)
	return vx, vy, true
}

// Spacing returns the local grid spacing at (x, y): the smaller of the
// enclosing cell's width and height. Points outside the bounds are clamped to
// the nearest cell, so Spacing is always positive for a valid Field.
func (f *Field) Spacing(x, y float64) float64 {
	i := cellIndex(f.xs, x)
	j := cellIndex(f.ys, y)
	return math.Min(f.xs[i+1]-f.xs[i], f.ys[j+1]-f.ys[j])
}

// cellIndex returns i such that ax[i] <= p <= ax[i+1], clamped to the valid
// cell range [0, len(ax)-2].
func cellIndex(ax []float64, p float64) int {
	i := sort.SearchFloat64s(ax, p) - 1
	if i < 0 {
		i = 0
	}
	if i > len(ax)-2 {
		i = len(ax) - 2
	}
	return i
}

// bilerp interpolates between the four corner values of a cell.
// c00 is the value at (0,0), c10 at (1,0), c01 at (0,1), c11 at (1,1).
func bilerp(c00, c10, c01, c11, tx, ty float64) float64 {
	bottom := c00*(1-tx) + c10*tx
	top := c01*(1-tx) + c11*tx
	return bottom*(1-ty) + top*ty
}
