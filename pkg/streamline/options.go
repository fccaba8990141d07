package streamline

import (
	"github.com/flowlines/flowlines/pkg/errors"
)

// Default values for optional tracing parameters.
const (
	// DefaultStepFactor scales the integration step relative to the local
	// grid spacing. 0.5 keeps RK4 stages inside the current cell's
	// neighborhood without oversampling smooth fields.
	DefaultStepFactor = 0.5

	// DefaultMaxSteps bounds the number of integration steps per direction,
	// guarding against near-closed orbits that never exit the domain.
	DefaultMaxSteps = 10000
)

// Options configures a seeding run.
//
// DSep and DTest drive both density and runtime cost: halving DSep roughly
// quadruples the number of streamlines and candidate seeds.
type Options struct {
	// DSep is the minimum allowed distance between distinct streamlines.
	// Required, must be positive.
	DSep float64

	// DTest is the early-termination distance while tracing: a line stops
	// as soon as it comes this close to another line. Must satisfy
	// 0 < DTest < DSep. Defaults to DSep/2.
	DTest float64

	// StepFactor scales the RK4 step size relative to the local grid
	// spacing. Defaults to DefaultStepFactor.
	StepFactor float64

	// MaxSteps bounds integration steps per direction.
	// Defaults to DefaultMaxSteps.
	MaxSteps int

	// MaxLines optionally caps the number of accepted streamlines.
	// Zero means unlimited; the run ends when the seed queue drains.
	MaxLines int

	// Seed overrides the initial seed point. When nil the domain center
	// is used.
	Seed *Point
}

// Validate checks parameter invariants and fills in defaults.
// It fails fast with an INVALID_PARAMS error so a bad configuration is
// rejected before any integration starts. Validate is idempotent.
func (o *Options) Validate() error {
	if o.DSep <= 0 {
		return errors.New(errors.ErrCodeInvalidParams, "d_sep must be positive, got %g", o.DSep)
	}
	if o.DTest == 0 {
		o.DTest = o.DSep / 2
	}
	if o.DTest <= 0 {
		return errors.New(errors.ErrCodeInvalidParams, "d_test must be positive, got %g", o.DTest)
	}
	if o.DTest >= o.DSep {
		return errors.New(errors.ErrCodeInvalidParams, "d_test (%g) must be smaller than d_sep (%g)", o.DTest, o.DSep)
	}
	if o.StepFactor == 0 {
		o.StepFactor = DefaultStepFactor
	}
	if o.StepFactor < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "step factor must be positive, got %g", o.StepFactor)
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "max steps must be positive, got %d", o.MaxSteps)
	}
	if o.MaxLines < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "max lines cannot be negative, got %d", o.MaxLines)
	}
	return nil
}
