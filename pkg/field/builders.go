package field

import (
	"math"
	"sort"

	"github.com/flowlines/flowlines/pkg/errors"
)

// FuncField is an analytic vector field evaluated at grid points by [FromFunc].
type FuncField func(x, y float64) (vx, vy float64)

// UniformAxes returns n evenly spaced samples covering [min, max].
func UniformAxes(min, max float64, n int) []float64 {
	ax := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range ax {
		ax[i] = min + float64(i)*step
	}
	ax[n-1] = max // avoid accumulation error at the upper bound
	return ax
}

// FromFunc samples an analytic field on the given axes.
func FromFunc(xs, ys []float64, fn FuncField) (*Field, error) {
	u := make([][]float64, len(ys))
	v := make([][]float64, len(ys))
	for j, y := range ys {
		u[j] = make([]float64, len(xs))
		v[j] = make([]float64, len(xs))
		for i, x := range xs {
			u[j][i], v[j][i] = fn(x, y)
		}
	}
	return New(xs, ys, u, v)
}

// Uniform returns a constant field (vx, vy) everywhere.
func Uniform(vx, vy float64) FuncField {
	return func(x, y float64) (float64, float64) {
		return vx, vy
	}
}

// Vortex returns a counterclockwise rotation around (cx, cy).
// The field magnitude grows linearly with distance from the center, which
// sits at a critical point.
func Vortex(cx, cy float64) FuncField {
	return func(x, y float64) (float64, float64) {
		return -(y - cy), x - cx
	}
}

// Saddle returns a saddle flow around (cx, cy): outflow along x, inflow
// along y, with a critical point at the center.
func Saddle(cx, cy float64) FuncField {
	return func(x, y float64) (float64, float64) {
		return x - cx, -(y - cy)
	}
}

// DoubleGyre returns the steady double-gyre benchmark flow mapped onto the
// domain [x0,x1]×[y0,y1]. Amplitude a controls the field magnitude.
func DoubleGyre(x0, y0, x1, y1, a float64) FuncField {
	return func(x, y float64) (float64, float64) {
		// Normalize onto the canonical [0,2]×[0,1] domain.
		nx := (x - x0) / (x1 - x0) * 2
		ny := (y - y0) / (y1 - y0)
		vx := -math.Pi * a * math.Sin(math.Pi*nx) * math.Cos(math.Pi*ny)
		vy := math.Pi * a * math.Cos(math.Pi*nx) * math.Sin(math.Pi*ny)
		return vx, vy
	}
}

// Builtin field names resolvable by [Builtin].
const (
	NameUniform    = "uniform"
	NameVortex     = "vortex"
	NameSaddle     = "saddle"
	NameDoubleGyre = "double-gyre"
)

// BuiltinNames returns the sorted list of builtin field names.
func BuiltinNames() []string {
	names := []string{NameUniform, NameVortex, NameSaddle, NameDoubleGyre}
	sort.Strings(names)
	return names
}

// Builtin samples a named analytic field on a uniform nx×ny grid covering
// [x0,x1]×[y0,y1]. Unknown names fail with a FIELD_NOT_FOUND error.
func Builtin(name string, x0, y0, x1, y1 float64, nx, ny int) (*Field, error) {
	if err := errors.ValidateFieldName(name); err != nil {
		return nil, err
	}
	if nx < 2 || ny < 2 {
		return nil, errors.New(errors.ErrCodeInvalidField, "grid must be at least 2x2, got %dx%d", nx, ny)
	}
	if !(x1 > x0) || !(y1 > y0) {
		return nil, errors.New(errors.ErrCodeInvalidField, "domain [%g,%g]x[%g,%g] is empty", x0, x1, y0, y1)
	}

	cx, cy := (x0+x1)/2, (y0+y1)/2

	var fn FuncField
	switch name {
	case NameUniform:
		fn = Uniform(1, 0)
	case NameVortex:
		fn = Vortex(cx, cy)
	case NameSaddle:
		fn = Saddle(cx, cy)
	case NameDoubleGyre:
		fn = DoubleGyre(x0, y0, x1, y1, 0.1)
	default:
		return nil, errors.New(errors.ErrCodeFieldNotFound, "unknown field %q (known: %v)", name, BuiltinNames())
	}

	return FromFunc(UniformAxes(x0, x1, nx), UniformAxes(y0, y1, ny), fn)
}
