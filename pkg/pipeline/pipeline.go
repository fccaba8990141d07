// Package pipeline provides the core tracing and rendering pipeline.
//
// This package implements the complete trace → render pipeline that can be
// used by CLI and server components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Trace: seed and integrate evenly-spaced streamlines over a vector field
//  2. Render: generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage is cached: traced datasets by field identity plus seeding
// parameters, artifacts by dataset content plus render parameters.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Field:   "vortex",
//	    DSep:    0.4,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Trace only
//	ds, err := runner.Trace(ctx, opts)
//
//	// Render an existing dataset
//	artifacts, err := runner.Render(ctx, ds, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/field"
	"github.com/flowlines/flowlines/pkg/render/styles"
	"github.com/flowlines/flowlines/pkg/streamline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultField is the builtin field traced when none is named.
	DefaultField = field.NameVortex

	// DefaultDomain is the half-extent of the default square domain.
	DefaultDomain = 5.0

	// DefaultGrid is the default sample count per axis for builtin fields.
	DefaultGrid = 64

	// DefaultDSepFraction sets d_sep relative to the smaller domain extent
	// when the caller does not supply one.
	DefaultDSepFraction = 0.05

	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultStyle is the default visual style.
	DefaultStyle = "line"

	// DefaultColor is the default stroke color.
	DefaultColor = "#1f6fb5"

	// DefaultLineWidth is the default stroke width in pixels.
	DefaultLineWidth = 1.5
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Field selection: a builtin field name with its domain and grid, or a
	// previously traced dataset file (tracing is skipped for datasets).
	Field       string  `json:"field,omitempty"`
	X0          float64 `json:"x0,omitempty"`
	Y0          float64 `json:"y0,omitempty"`
	X1          float64 `json:"x1,omitempty"`
	Y1          float64 `json:"y1,omitempty"`
	GridX       int     `json:"grid_x,omitempty"`
	GridY       int     `json:"grid_y,omitempty"`
	DatasetPath string  `json:"-"`

	// Trace options
	DSep       float64   `json:"d_sep,omitempty"`
	DTest      float64   `json:"d_test,omitempty"`
	StepFactor float64   `json:"step_factor,omitempty"`
	MaxSteps   int       `json:"max_steps,omitempty"`
	MaxLines   int       `json:"max_lines,omitempty"`
	Seed       []float64 `json:"seed,omitempty"` // [x, y]; empty means domain center
	Refresh    bool      `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
	Color     string   `json:"color,omitempty"`
	LineWidth float64  `json:"line_width,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the traced streamline dataset.
	Dataset *streamline.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LineCount  int
	PointCount int
	TraceTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TraceHit  bool // Whether the traced dataset came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.ForName(style)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForTrace(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForTrace checks required fields for tracing and applies defaults.
func (o *Options) ValidateForTrace() error {
	if o.DatasetPath != "" {
		o.applyLoggerDefault()
		return nil
	}

	if o.Field == "" {
		o.Field = DefaultField
	}
	if o.X0 == 0 && o.Y0 == 0 && o.X1 == 0 && o.Y1 == 0 {
		o.X0, o.Y0 = -DefaultDomain, -DefaultDomain
		o.X1, o.Y1 = DefaultDomain, DefaultDomain
	}
	if o.X1 <= o.X0 || o.Y1 <= o.Y0 {
		return errors.New(errors.ErrCodeInvalidParams,
			"domain must have positive extent: [%g,%g]x[%g,%g]", o.X0, o.X1, o.Y0, o.Y1)
	}
	if o.GridX == 0 {
		o.GridX = DefaultGrid
	}
	if o.GridY == 0 {
		o.GridY = DefaultGrid
	}

	if o.DSep == 0 {
		extent := o.X1 - o.X0
		if dy := o.Y1 - o.Y0; dy < extent {
			extent = dy
		}
		o.DSep = extent * DefaultDSepFraction
	}
	if len(o.Seed) != 0 && len(o.Seed) != 2 {
		return errors.New(errors.ErrCodeInvalidParams,
			"seed must be [x, y], got %d values", len(o.Seed))
	}

	// Delegated: DTest, StepFactor, MaxSteps defaults and the parameter
	// cross-checks live in streamline.Options.
	tr := o.traceOptions()
	if err := tr.Validate(); err != nil {
		return err
	}
	o.DTest = tr.DTest
	o.StepFactor = tr.StepFactor
	o.MaxSteps = tr.MaxSteps

	o.applyLoggerDefault()
	return nil
}

// ValidateForRender validates render options and applies defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidParams,
			"canvas size must be positive: %dx%d", o.Width, o.Height)
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	o.applyLoggerDefault()
	return nil
}

func (o *Options) applyLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// traceOptions converts pipeline options into seeding options.
func (o *Options) traceOptions() streamline.Options {
	tr := streamline.Options{
		DSep:       o.DSep,
		DTest:      o.DTest,
		StepFactor: o.StepFactor,
		MaxSteps:   o.MaxSteps,
		MaxLines:   o.MaxLines,
	}
	if len(o.Seed) == 2 {
		tr.Seed = &streamline.Point{X: o.Seed[0], Y: o.Seed[1]}
	}
	return tr
}
