package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/render"
)

// pointsPerInch converts Graphviz node sizes, which are given in inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Width and Height of the frame in points; zero means 800x600.
	Width, Height float64
	// Labels attaches each node's label next to it.
	Labels bool
}

// ToDOT converts a layout to Graphviz DOT source with pinned positions.
func ToDOT(l graph.Layout, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	frame := render.Fit(l, opts.Width, opts.Height, render.DefaultMargin)
	colors := render.GroupColors(l)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%.2f,%.2f\";\n", opts.Width, opts.Height)
	buf.WriteString("  node [shape=circle, fixedsize=true, style=filled, color=\"#37474f\", fontsize=10, label=\"\"];\n")
	buf.WriteString("  edge [color=\"#90a4ae\"];\n")
	buf.WriteString("\n")

	for _, i := range render.DrawOrder(l) {
		n := &l.Nodes[i]
		x, y := frame.Point(n.X, n.Y)
		diameter := 2 * max(n.Radius*frame.Scale, 1) / pointsPerInch
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", width=%.4f, fillcolor=%q, tooltip=%q",
			n.ID, x, opts.Height-y, diameter, render.Fill(colors, n.Group), n.DisplayLabel())
		if opts.Labels {
			fmt.Fprintf(&buf, ", xlabel=%q", n.DisplayLabel())
		}
		if n.Fixed {
			buf.WriteString(", penwidth=2.5")
		}
		buf.WriteString("];\n")
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag, which carries pt units and
// an XML namespace zoo, with a plain one sized by the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
