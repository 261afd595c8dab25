// Package sink writes layouts as standalone SVG documents.
//
// The drawing is fitted into a frame (800x600 by default) with a uniform
// scale, so distances stay proportional to the simulation's. Edges are drawn
// first, then nodes in increasing Z so nearer nodes of a 3D layout cover
// farther ones. Nodes sharing a group share a fill color.
//
//	svg := sink.RenderSVG(layout, sink.WithSize(1024, 768), sink.WithLabels())
package sink
