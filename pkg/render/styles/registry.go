package styles

import (
	"github.com/flowlines/flowlines/pkg/errors"
)

var registry = []Style{Line{}, Arrow{}, Taper{}, Dash{}}

// Names returns the registered style names in registration order.
func Names() []string {
	out := make([]string, len(registry))
	for i, s := range registry {
		out[i] = s.Name()
	}
	return out
}

// ForName resolves a style by its identifier.
func ForName(name string) (Style, error) {
	for _, s := range registry {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style: %s", name)
}

// DefaultConfig returns the drawing parameters used when the caller does
// not override them.
func DefaultConfig() Config {
	return Config{
		Color:      "#1f6fb5",
		LineWidth:  1.5,
		ArrowSize:  6,
		ArrowEvery: 60,
		DashLen:    8,
		GapLen:     6,
		DashPeriod: 1.2,
	}
}
