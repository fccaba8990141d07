// Package styles defines the visual styles for streamline rendering.
//
// A [Style] draws one prepared polyline in two targets: SVG markup (written
// to a buffer) and a raster canvas (a gg drawing context). The four styles
// ([Line], [Arrow], [Taper], [Dash]) correspond to the plain, arrow-decorated,
// tapered-width, and animated-dash looks. Styles receive canvas-space
// geometry; all field-space concerns are handled by the renderer in the
// parent package.
package styles

import (
	"bytes"

	"github.com/fogleman/gg"
)

// Pt is a point in canvas coordinates (origin top-left, y down).
type Pt struct {
	X, Y float64
}

// Polyline is one streamline prepared for drawing: canvas-space points and a
// parallel slice of per-point stroke widths derived from the separation
// samples. Width is always populated; non-tapering styles ignore everything
// but Width[0].
type Polyline struct {
	Points []Pt
	Width  []float64
}

// Config carries the shared drawing parameters.
type Config struct {
	Color      string  // stroke color (hex, e.g. "#1f6fb5")
	LineWidth  float64 // base stroke width in canvas units
	ArrowSize  float64 // arrowhead edge length
	ArrowEvery float64 // arc length between arrowheads
	DashLen    float64 // dash segment length
	GapLen     float64 // gap between dashes
	DashPeriod float64 // seconds per dash cycle (SVG animation)
}

// Style draws streamlines in one visual style.
type Style interface {
	// Name returns the style identifier used in CLI flags and cache keys.
	Name() string
	// RenderDefs writes style-wide SVG content (CSS, defs). Called once
	// per document, before any RenderLine call.
	RenderDefs(buf *bytes.Buffer, cfg Config)
	// RenderLine writes the SVG for a single streamline.
	RenderLine(buf *bytes.Buffer, pl Polyline, cfg Config)
	// Draw rasterizes a single streamline onto a gg context.
	Draw(dc *gg.Context, pl Polyline, cfg Config)
}
