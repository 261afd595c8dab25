package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/pipeline"
	"github.com/matzehuels/forcetower/pkg/render"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output  string // output file (single format) or base path
	formats string // comma-separated output formats
	noCache bool
}

// renderCommand creates the render command for drawing computed layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Draw a computed layout",
		Long: `Draw a computed layout.

The render command takes a layout.json file (produced by 'layout') and writes
one file per requested format. The native engine draws SVG directly; the
graphviz engine pins every node at its computed position and lets Graphviz
draw it. PNG and PDF are converted from SVG and need rsvg-convert on PATH.

3D layouts are drawn as their XY projection, nearer nodes on top.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(flags.formats)
			opts.Logger = c.Logger
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), dot, json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "drawing engine: native (default), graphviz")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw node labels")

	return cmd
}

// runRender loads the layout and writes one artifact per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	if needsConverter(opts.Formats) && !render.ConverterAvailable() {
		return fmt.Errorf("png and pdf output need rsvg-convert on PATH")
	}

	paths := outputPaths(flags.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := errors.ValidatePath(paths[format]); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	prog.done("Rendered %d artifact(s)", len(artifacts))

	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(len(l.Nodes), len(l.Edges), l.Ticks, cacheHit)
	if l.Dimensions == 3 {
		printDetail("3D layout drawn as XY projection")
	}
	return nil
}

func needsConverter(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

// outputPaths maps each format to the file it is written to. A single format
// goes to output verbatim when given; otherwise files share a base path
// derived from output or the input name.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, along with a
// ".layout" suffix left by the layout command.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
