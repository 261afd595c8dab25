package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/metrics"
	"github.com/matzehuels/forcetower/pkg/pipeline"
)

// layoutFlags holds the layout command's flags. Zero values mean "not set",
// leaving the configuration file or defaults in charge.
type layoutFlags struct {
	output      string
	configPath  string
	noCache     bool
	metricsFile string

	dims   int
	ticks  int
	seed   uint64
	spread float64
}

// apply overlays the flags that were set on the command line onto opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("dims") {
		opts.Dimensions = f.dims
	}
	if flags.Changed("ticks") {
		opts.Ticks = f.ticks
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("spread") {
		opts.Spread = f.spread
	}
}

// register adds the simulation flags shared by layout and watch.
func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "TOML force configuration (default: $FORCETOWER_CONFIG)")
	cmd.Flags().IntVar(&f.dims, "dims", pipeline.DefaultDimensions, "dimensions: 2 or 3")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for random initial positions (0: phyllotaxis spiral)")
	cmd.Flags().Float64Var(&f.spread, "spread", pipeline.DefaultSpread, "half-width of the random start box")
}

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command runs the force simulation for a graph.json file until it
settles or the tick limit is reached, and writes a layout.json file that the
'render' command draws.

Forces and the cooling schedule come from --config (a TOML file); without one
the layout uses many-body repulsion, links of length 30 and centering.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.layoutOptions(flags.configPath)
			if err != nil {
				return err
			}
			flags.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().IntVar(&flags.ticks, "ticks", pipeline.DefaultMaxTicks, "maximum simulation ticks")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, flags layoutFlags) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	opts.SetLayoutDefaults()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := errors.ValidatePath(outputPath); err != nil {
		return err
	}

	var m *metrics.Metrics
	if flags.metricsFile != "" {
		m = metrics.New()
	}
	runner, err := c.newRunner(flags.noCache, m)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Simulating...")
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if err := m.WriteFile(flags.metricsFile); err != nil {
		return fmt.Errorf("write metrics %s: %w", flags.metricsFile, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges), layout.Ticks, cacheHit)
	if layout.Alpha >= opts.Schedule.AlphaMin {
		printWarning("Stopped after %d ticks before settling (alpha %.4f)", layout.Ticks, layout.Alpha)
	}
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
