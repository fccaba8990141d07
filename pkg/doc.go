// Package pkg provides the core libraries for Flowlines streamline visualization.
//
// # Overview
//
// Flowlines traces evenly-spaced streamlines through 2D vector fields and
// renders them as vector or raster images, following the Jobard-Lefer seeding
// algorithm. The pkg directory is organized into three main areas:
//
//  1. Domain logic (field sampling, integration, seeding, rendering)
//  2. Infrastructure (caching, errors, observability)
//  3. Orchestration (pipeline, HTTP server)
//
// # Architecture
//
// The typical data flow through Flowlines:
//
//	Vector field (builtin or sampled grid)
//	         ↓
//	    [field] package (bilinear sampling over a grid)
//	         ↓
//	    [streamline] package (RK4 integration + even seeding)
//	         ↓
//	    [render] package (styles + coordinate mapping)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Trace a builtin field and render the result:
//
//	import (
//	    "github.com/flowlines/flowlines/pkg/field"
//	    "github.com/flowlines/flowlines/pkg/render"
//	    "github.com/flowlines/flowlines/pkg/render/styles"
//	    "github.com/flowlines/flowlines/pkg/streamline"
//	)
//
//	// 1. Sample a builtin field onto a grid
//	vf, _ := field.Builtin("vortex", -5, -5, 5, 5, 64, 64)
//
//	// 2. Seed and trace evenly-spaced streamlines
//	seeder, _ := streamline.NewSeeder(vf, streamline.Options{DSep: 0.4})
//	ds, _ := seeder.Run(context.Background())
//
//	// 3. Render to SVG
//	style, _ := styles.ForName("taper")
//	svg := render.SVG(ds, render.WithStyle(style))
//
// # Main Packages
//
// [field] - Vector field sampling. Builtin analytic fields (vortex, uniform,
// saddle, double-gyre) evaluated onto rectilinear grids, with bilinear
// interpolation between samples.
//
// [streamline] - Streamline tracing. Fixed-step RK4 integration, the spatial
// separation index, the even-seeding queue, and the dataset JSON codec.
//
// [render] - Visualization rendering with two output backends (SVG and PNG
// via fogleman/gg) and four styles: line, arrow, taper, dash.
//
// [pipeline] - Orchestration of trace and render with content-addressed
// caching of datasets and artifacts.
//
// [server] - HTTP interface over the pipeline built on chi.
//
// [cache] - Cache backends (file, Redis, MongoDB) and deterministic key
// derivation.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Pluggable hooks for seeding, pipeline, and cache events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/streamline/...   # Specific package
//
// [field]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/field
// [streamline]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/streamline
// [render]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/server
// [cache]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/cache
// [errors]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/errors
// [observability]: https://pkg.go.dev/github.com/flowlines/flowlines/pkg/observability
package pkg
