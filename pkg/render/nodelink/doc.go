// Package nodelink renders computed layouts through Graphviz.
//
// # Overview
//
// Unlike Graphviz's own engines, forcetower computes positions itself. This
// package writes them into DOT source as pinned positions (pos="x,y!") and
// lets the neato engine, which honors pins, draw edges and nodes. The result
// looks like any other Graphviz diagram while keeping the simulated layout.
//
// # Usage
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Coordinates
//
// Positions are fitted into the frame given by [Options] (in points) with
// [render.Fit] and flipped vertically, since Graphviz's y axis points up.
// 3D layouts are projected onto the XY plane.
//
// [render.Fit]: github.com/matzehuels/forcetower/pkg/render.Fit
package nodelink
