package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/pipeline"
	"github.com/flowlines/flowlines/pkg/render/styles"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file (single format) or base path (multiple)
	formats   string // comma-separated output formats
	style     string // visual style: line, arrow, taper, dash
	width     int    // canvas width in pixels
	height    int    // canvas height in pixels
	color     string // stroke color
	lineWidth float64
}

// renderCommand creates the render command for generating visualizations.
//
// The input argument selects the source: a .toml scene file, a .json dataset
// written by trace, or nothing (builtin field via flags). Datasets skip the
// tracing stage entirely.
func (c *CLI) renderCommand() *cobra.Command {
	var flags traceFlags
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene.toml|dataset.json]",
		Short: "Render streamlines to SVG, PNG, or JSON",
		Long: `Render traces a field (or loads a traced dataset) and generates artifacts.

Examples:

  flowlines render --field double-gyre --x1 2 --y1 1 --style taper
  flowlines render scene.toml -f svg,png -o out/gyre
  flowlines render vortex.json --style dash`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := renderOptions(cmd, args, &flags, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, flags, &opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: line (default), arrow, taper, dash")
	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.color, "color", "", "stroke color (hex)")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", 0, "base stroke width")

	_ = cmd.RegisterFlagCompletionFunc("style",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return styles.Names(), cobra.ShellCompDirectiveNoFileComp
		})

	return cmd
}

// renderOptions resolves the input argument and flags into pipeline options.
func renderOptions(cmd *cobra.Command, args []string, flags *traceFlags, opts *renderOpts) (pipeline.Options, error) {
	if len(args) == 1 {
		switch ext := filepath.Ext(args[0]); ext {
		case ".toml":
			flags.scene = args[0]
		case ".json":
			// Dataset input: tracing is skipped
		default:
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput,
				"input must be a .toml scene or .json dataset, got %q", args[0])
		}
	}

	popts, err := flags.options(cmd)
	if err != nil {
		return popts, err
	}
	if len(args) == 1 && filepath.Ext(args[0]) == ".json" {
		popts.DatasetPath = args[0]
	}

	fl := cmd.Flags()
	if fl.Changed("format") || len(popts.Formats) == 0 {
		popts.Formats = parseFormats(opts.formats)
	}
	if fl.Changed("style") {
		popts.Style = opts.style
	}
	if fl.Changed("width") {
		popts.Width = opts.width
	}
	if fl.Changed("height") {
		popts.Height = opts.height
	}
	if fl.Changed("color") {
		popts.Color = opts.color
	}
	if fl.Changed("line-width") {
		popts.LineWidth = opts.lineWidth
	}
	return popts, nil
}

func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, flags traceFlags, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, "rendering streamlines")
	spin.Start()
	result, err := runner.Execute(ctx, popts)
	spin.Stop()
	if err != nil {
		return err
	}
	logger.Debug("pipeline finished",
		"trace", result.Stats.TraceTime,
		"render", result.Stats.RenderTime)

	base := renderBasePath(opts.output, popts)
	written := make([]string, 0, len(result.Artifacts))
	for _, format := range popts.Formats {
		path := artifactPath(base, opts.output, format, len(popts.Formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s as %s", displayField(popts), popts.Style)
	printStats(result.Stats.LineCount, result.Stats.PointCount, result.CacheInfo.TraceHit)
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// renderBasePath derives the base output path. With no --output the field
// or input file name is used.
func renderBasePath(output string, popts pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if popts.DatasetPath != "" {
		return strings.TrimSuffix(popts.DatasetPath, filepath.Ext(popts.DatasetPath))
	}
	return displayField(popts)
}

// artifactPath builds the output path for one format. A single format with
// an explicit --output keeps that exact path.
func artifactPath(base, output, format string, formatCount int) string {
	if output != "" && formatCount == 1 && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}
