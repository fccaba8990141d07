package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/pipeline"
)

// traceFlags holds the command-line flags shared by trace and render.
// A scene file provides the base configuration; explicitly set flags
// override it.
type traceFlags struct {
	scene      string
	field      string
	x0, y0     float64
	x1, y1     float64
	gridX      int
	gridY      int
	dSep       float64
	dTest      float64
	stepFactor float64
	maxSteps   int
	maxLines   int
	seed       string
	noCache    bool
	refresh    bool
}

func (f *traceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.scene, "scene", "s", "", "TOML scene file")
	cmd.Flags().StringVar(&f.field, "field", "", "builtin field: vortex (default), uniform, saddle, double-gyre")
	cmd.Flags().Float64Var(&f.x0, "x0", 0, "domain lower x bound")
	cmd.Flags().Float64Var(&f.y0, "y0", 0, "domain lower y bound")
	cmd.Flags().Float64Var(&f.x1, "x1", 0, "domain upper x bound")
	cmd.Flags().Float64Var(&f.y1, "y1", 0, "domain upper y bound")
	cmd.Flags().IntVar(&f.gridX, "grid-x", 0, "field samples along x")
	cmd.Flags().IntVar(&f.gridY, "grid-y", 0, "field samples along y")
	cmd.Flags().Float64Var(&f.dSep, "d-sep", 0, "minimum separation between streamlines")
	cmd.Flags().Float64Var(&f.dTest, "d-test", 0, "early-termination distance (default d-sep/2)")
	cmd.Flags().Float64Var(&f.stepFactor, "step-factor", 0, "integration step relative to cell spacing")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "integration step cap per direction")
	cmd.Flags().IntVar(&f.maxLines, "max-lines", 0, "cap on accepted streamlines (0 = unlimited)")
	cmd.Flags().StringVar(&f.seed, "seed", "", "initial seed point as \"x,y\" (default domain center)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the dataset and artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-trace even when a cached dataset exists")
}

// options builds pipeline options from the scene file (if any) with flag
// overrides applied on top.
func (f *traceFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.scene != "" {
		loaded, err := pipeline.LoadScene(f.scene)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("field") {
		opts.Field = f.field
	}
	if fl.Changed("x0") {
		opts.X0 = f.x0
	}
	if fl.Changed("y0") {
		opts.Y0 = f.y0
	}
	if fl.Changed("x1") {
		opts.X1 = f.x1
	}
	if fl.Changed("y1") {
		opts.Y1 = f.y1
	}
	if fl.Changed("grid-x") {
		opts.GridX = f.gridX
	}
	if fl.Changed("grid-y") {
		opts.GridY = f.gridY
	}
	if fl.Changed("d-sep") {
		opts.DSep = f.dSep
	}
	if fl.Changed("d-test") {
		opts.DTest = f.dTest
	}
	if fl.Changed("step-factor") {
		opts.StepFactor = f.stepFactor
	}
	if fl.Changed("max-steps") {
		opts.MaxSteps = f.maxSteps
	}
	if fl.Changed("max-lines") {
		opts.MaxLines = f.maxLines
	}
	if fl.Changed("refresh") {
		opts.Refresh = f.refresh
	}
	if fl.Changed("seed") {
		seed, err := parseSeed(f.seed)
		if err != nil {
			return opts, err
		}
		opts.Seed = seed
	}
	return opts, nil
}

// parseSeed parses "x,y" into a seed point.
func parseSeed(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidParams, "seed: want \"x,y\", got %q", raw)
	}
	seed := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidParams, "seed: %q is not a number", p)
		}
		seed[i] = v
	}
	return seed, nil
}
