package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/render"
)

// Default frame size.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	margin        float64
	labels        bool
	background    string
}

func WithSize(w, h float64) SVGOption   { return func(r *svgRenderer) { r.width, r.height = w, h } }
func WithMargin(m float64) SVGOption    { return func(r *svgRenderer) { r.margin = m } }
func WithLabels() SVGOption             { return func(r *svgRenderer) { r.labels = true } }
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG draws l as an SVG document.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight, margin: render.DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	frame := render.Fit(l, r.width, r.height, r.margin)
	colors := render.GroupColors(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	renderEdges(&buf, l, frame)
	renderNodes(&buf, l, frame, colors, r.labels)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdges(buf *bytes.Buffer, l graph.Layout, f render.Frame) {
	if len(l.Edges) == 0 {
		return
	}
	pos := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		pos[n.ID] = i
	}
	buf.WriteString(`  <g class="edges" stroke="#90a4ae" stroke-width="1" stroke-opacity="0.8">` + "\n")
	for _, e := range l.Edges {
		a, okA := pos[e.From]
		b, okB := pos[e.To]
		if !okA || !okB {
			continue
		}
		x1, y1 := f.Point(l.Nodes[a].X, l.Nodes[a].Y)
		x2, y2 := f.Point(l.Nodes[b].X, l.Nodes[b].Y)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x1, y1, x2, y2)
	}
	buf.WriteString("  </g>\n")
}

func renderNodes(buf *bytes.Buffer, l graph.Layout, f render.Frame, colors map[string]string, labels bool) {
	buf.WriteString(`  <g class="nodes" stroke="#37474f" stroke-width="1">` + "\n")
	for _, i := range render.DrawOrder(l) {
		n := &l.Nodes[i]
		x, y := f.Point(n.X, n.Y)
		r := max(n.Radius*f.Scale, 1)
		fmt.Fprintf(buf, `    <circle id="node-%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"`,
			html.EscapeString(n.ID), x, y, r, render.Fill(colors, n.Group))
		if n.Fixed {
			buf.WriteString(` stroke-width="2.5"`)
		}
		fmt.Fprintf(buf, "><title>%s</title></circle>\n", html.EscapeString(n.DisplayLabel()))
	}
	buf.WriteString("  </g>\n")

	if !labels {
		return
	}
	buf.WriteString(`  <g class="labels" font-family="sans-serif" font-size="11" fill="#263238">` + "\n")
	for _, i := range render.DrawOrder(l) {
		n := &l.Nodes[i]
		x, y := f.Point(n.X, n.Y)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f">%s</text>`+"\n",
			x+max(n.Radius*f.Scale, 1)+2, y+4, html.EscapeString(n.DisplayLabel()))
	}
	buf.WriteString("  </g>\n")
}
