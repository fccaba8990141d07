// Package render turns a traced streamline dataset into output artifacts.
//
// # Overview
//
// A renderer maps field-space streamlines into canvas space and hands each
// prepared polyline to a visual style. This package provides:
//
//   - SVG: vector output, optionally animated (dash style)
//   - PNG: raster output via fogleman/gg
//
// Basic usage:
//
//	svg := render.SVG(ds,
//	    render.WithStyle(styles.Arrow{}),
//	    render.WithSize(1200, 800),
//	)
//
// # Options
//
//   - [WithStyle]: visual style (line, arrow, taper, dash)
//   - [WithSize]: canvas dimensions in pixels
//   - [WithBounds]: field-space viewport (default: dataset extent)
//   - [WithColor]: stroke color
//   - [WithLineWidth]: base stroke width
//
// # Coordinate mapping
//
// Field space is y-up, canvas space y-down. The renderer fits the viewport
// into the canvas preserving aspect ratio, centered, with a fixed margin.
// Per-point stroke widths for the taper style derive from each streamline's
// separation samples, normalized against the dataset maximum.
//
// # Adding new formats
//
// A format entry point follows the sinks here: accept a
// [streamline.Dataset] plus options, prepare polylines with the shared
// transform, and drive a [styles.Style]. Register the format in the
// pipeline for CLI support.
//
// [streamline.Dataset]: github.com/flowlines/flowlines/pkg/streamline.Dataset
// [styles.Style]: github.com/flowlines/flowlines/pkg/render/styles.Style
package render
