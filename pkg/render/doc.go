// Package render turns computed layouts into pictures.
//
// # Overview
//
// Two renderers consume a [graph.Layout]:
//
//   - [sink]: a dependency-free SVG writer that draws the positions as given
//   - [nodelink]: DOT export with pinned positions, rendered by Graphviz
//
// Both project 3D layouts orthographically onto the XY plane.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [graph.Layout]: github.com/matzehuels/forcetower/pkg/graph.Layout
// [sink]: github.com/matzehuels/forcetower/pkg/render/sink
// [nodelink]: github.com/matzehuels/forcetower/pkg/render/nodelink
package render
