package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowlines/flowlines/pkg/field"
	"github.com/flowlines/flowlines/pkg/observability"
	"github.com/flowlines/flowlines/pkg/pipeline"
	"github.com/flowlines/flowlines/pkg/streamline"
)

// traceCommand creates the trace command. It runs the seeding stage only
// and writes the resulting dataset as JSON, for later rendering or
// inspection.
func (c *CLI) traceCommand() *cobra.Command {
	var flags traceFlags
	var output string
	var plain bool

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Trace evenly-spaced streamlines and write a dataset file",
		Long: `Trace seeds and integrates evenly-spaced streamlines over a vector field.

The field comes from a builtin (--field with --x0/--y0/--x1/--y1 and
--grid-x/--grid-y) or a TOML scene file (--scene). The traced dataset is
written as JSON and can be re-rendered without re-tracing:

  flowlines trace --field vortex --d-sep 0.3 -o vortex.json
  flowlines render vortex.json --style taper`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runTrace(cmd.Context(), opts, flags, output, plain)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <field>.json)")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable the live progress display")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, opts pipeline.Options, flags traceFlags, output string, plain bool) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ds, hit, err := c.traceWithProgress(ctx, runner, opts, plain)
	if err != nil {
		return err
	}

	if output == "" {
		name := opts.Field
		if name == "" {
			name = pipeline.DefaultField
		}
		output = name + ".json"
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := streamline.WriteJSON(ds, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	printSuccess("Traced %s", displayField(opts))
	printStats(ds.Len(), ds.PointCount(), hit)
	printFile(output)
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
	return nil
}

// traceWithProgress runs the trace stage behind a live progress display.
// With --plain it falls back to the progress logger.
func (c *CLI) traceWithProgress(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, plain bool) (*streamline.Dataset, bool, error) {
	if plain {
		p := newProgress(c.Logger)
		ds, hit, err := runner.TraceWithCacheInfo(ctx, opts)
		if err == nil {
			p.done(fmt.Sprintf("Traced %d streamlines", ds.Len()))
		}
		return ds, hit, err
	}

	fieldName := opts.Field
	if fieldName == "" {
		fieldName = pipeline.DefaultField
	}
	prog := tea.NewProgram(newTraceModel(fieldName),
		tea.WithOutput(os.Stderr),
		tea.WithoutSignalHandler())

	observability.SetSeedingHooks(&teaSeedingHooks{prog: prog})
	defer observability.Reset()

	var (
		ds  *streamline.Dataset
		hit bool
		err error
	)
	go func() {
		ds, hit, err = runner.TraceWithCacheInfo(ctx, opts)
		prog.Send(traceDoneMsg{err: err})
	}()

	final, runErr := prog.Run()
	if runErr != nil {
		return nil, false, runErr
	}
	if m, ok := final.(traceModel); ok && m.err == context.Canceled {
		return nil, false, context.Canceled
	}
	return ds, hit, err
}

// displayField describes the traced field for status output.
func displayField(opts pipeline.Options) string {
	name := opts.Field
	if name == "" {
		name = pipeline.DefaultField
	}
	return name
}

// fieldsCommand creates the fields command listing the builtin vector fields.
func (c *CLI) fieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the builtin vector fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Builtin fields"))
			for _, name := range field.BuiltinNames() {
				printDetail("%s", name)
			}
			printNextStep("Trace one", fmt.Sprintf("%s trace --field %s", appName, field.BuiltinNames()[0]))
			return nil
		},
	}
}
