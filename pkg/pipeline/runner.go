package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowlines/flowlines/pkg/cache"
	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/field"
	"github.com/flowlines/flowlines/pkg/observability"
	"github.com/flowlines/flowlines/pkg/render"
	"github.com/flowlines/flowlines/pkg/render/styles"
	"github.com/flowlines/flowlines/pkg/streamline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete trace → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Trace
	traceStart := time.Now()
	ds, traceHit, err := r.TraceWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.Stats.TraceTime = time.Since(traceStart)
	result.Stats.LineCount = ds.Len()
	result.Stats.PointCount = ds.PointCount()
	result.CacheInfo.TraceHit = traceHit

	if data, err := streamline.Marshal(ds); err == nil {
		result.DatasetHash = cache.Hash(data)
	}

	r.Logger.Info("traced streamlines",
		"lines", ds.Len(),
		"points", ds.PointCount(),
		"duration", result.Stats.TraceTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TraceWithCacheInfo traces a dataset with caching and returns cache hit info.
// When opts.DatasetPath is set the dataset is loaded from disk instead and
// the cache is bypassed.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, opts Options) (*streamline.Dataset, bool, error) {
	if err := opts.ValidateForTrace(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.DatasetPath != "" {
		ds, err := readDataset(opts.DatasetPath)
		return ds, false, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	cacheKey := r.Keyer.DatasetKey(opts.fieldHash(), opts.datasetKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if ds, err := streamline.Unmarshal(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "dataset")
				return ds, true, nil // Cache hit
			}
		}
		cacheHooks.OnCacheMiss(ctx, "dataset")
	}

	// Trace
	hooks.OnTraceStart(ctx, opts.Field)
	start := time.Now()

	f, err := opts.buildField()
	if err != nil {
		hooks.OnTraceComplete(ctx, opts.Field, 0, time.Since(start), err)
		return nil, false, err
	}

	seeder, err := streamline.NewSeeder(f, opts.traceOptions())
	if err != nil {
		hooks.OnTraceComplete(ctx, opts.Field, 0, time.Since(start), err)
		return nil, false, err
	}
	ds, err := seeder.Run(ctx)
	hooks.OnTraceComplete(ctx, opts.Field, lineCount(ds), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := streamline.Marshal(ds); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset); err == nil {
			cacheHooks.OnCacheSet(ctx, "dataset", len(data))
		}
	}

	return ds, false, nil // Cache miss
}

// Trace is a convenience wrapper that calls TraceWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Trace(ctx context.Context, opts Options) (*streamline.Dataset, error) {
	ds, _, err := r.TraceWithCacheInfo(ctx, opts)
	return ds, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ds *streamline.Dataset, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	data, err := streamline.Marshal(ds)
	if err != nil {
		return nil, false, err
	}
	datasetHash := cache.Hash(data)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(datasetHash, opts.artifactKeyOpts(format))
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = cached
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		cacheHooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	// Render all formats
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderFormats(ds, data, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, artifact := range rendered {
		cacheKey := r.Keyer.ArtifactKey(datasetHash, opts.artifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, artifact, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(artifact))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, ds *streamline.Dataset, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, ds, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// renderFormats produces every requested artifact from one dataset.
// The marshaled dataset is passed in so the JSON format reuses it.
func renderFormats(ds *streamline.Dataset, marshaled []byte, opts Options) (map[string][]byte, error) {
	style, err := styles.ForName(opts.Style)
	if err != nil {
		return nil, err
	}

	renderOpts := []render.Option{
		render.WithStyle(style),
		render.WithSize(opts.Width, opts.Height),
		render.WithColor(opts.Color),
		render.WithLineWidth(opts.LineWidth),
	}
	if opts.DatasetPath == "" {
		renderOpts = append(renderOpts, render.WithBounds(opts.X0, opts.Y0, opts.X1, opts.Y1))
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			out[format] = render.SVG(ds, renderOpts...)
		case FormatPNG:
			data, err := render.PNG(ds, renderOpts...)
			if err != nil {
				return nil, err
			}
			out[format] = data
		case FormatJSON:
			out[format] = marshaled
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return out, nil
}

// buildField constructs the builtin field named by the options.
func (o *Options) buildField() (*field.Field, error) {
	return field.Builtin(o.Field, o.X0, o.Y0, o.X1, o.Y1, o.GridX, o.GridY)
}

// fieldHash identifies the field for dataset cache keys.
func (o *Options) fieldHash() string {
	return cache.Hash(fieldDescriptor(o.Field, o.X0, o.Y0, o.X1, o.Y1, o.GridX, o.GridY))
}

func (o *Options) datasetKeyOpts() cache.DatasetKeyOpts {
	k := cache.DatasetKeyOpts{
		DSep:       o.DSep,
		DTest:      o.DTest,
		StepFactor: o.StepFactor,
		MaxSteps:   o.MaxSteps,
		MaxLines:   o.MaxLines,
	}
	if len(o.Seed) == 2 {
		k.SeedX, k.SeedY, k.HasSeed = o.Seed[0], o.Seed[1], true
	}
	return k
}

func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Width:     o.Width,
		Height:    o.Height,
		Color:     o.Color,
		LineWidth: o.LineWidth,
	}
}

func readDataset(path string) (*streamline.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading dataset %s", path)
	}
	return streamline.Unmarshal(data)
}

func lineCount(ds *streamline.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Len()
}
