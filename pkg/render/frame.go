package render

import (
	"slices"

	"github.com/matzehuels/forcetower/pkg/graph"
)

// DefaultMargin is the padding, in output units, around a fitted layout.
const DefaultMargin = 20.0

// Frame maps layout coordinates into an output frame of Width x Height with
// a uniform scale, centering the layout's bounds.
type Frame struct {
	Width, Height float64
	Scale         float64
	offX, offY    float64
}

// Fit computes the frame for l. A layout whose extent is zero on both axes
// is drawn at scale 1 around the frame center.
func Fit(l graph.Layout, width, height, margin float64) Frame {
	minX, minY, maxX, maxY := l.Bounds()
	w, h := maxX-minX, maxY-minY
	innerW, innerH := max(width-2*margin, 1), max(height-2*margin, 1)

	scale := 1.0
	switch {
	case w > 0 && h > 0:
		scale = min(innerW/w, innerH/h)
	case w > 0:
		scale = innerW / w
	case h > 0:
		scale = innerH / h
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return Frame{
		Width:  width,
		Height: height,
		Scale:  scale,
		offX:   width/2 - cx*scale,
		offY:   height/2 - cy*scale,
	}
}

// Point maps a layout coordinate into the frame.
func (f Frame) Point(x, y float64) (float64, float64) {
	return x*f.Scale + f.offX, y*f.Scale + f.offY
}

// Palette is the fill color sequence for node groups.
var Palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// DefaultFill is the fill of nodes without a group.
const DefaultFill = "#cfd8dc"

// GroupColors assigns palette colors to the groups of l in sorted order,
// cycling when there are more groups than colors.
func GroupColors(l graph.Layout) map[string]string {
	var groups []string
	seen := map[string]bool{}
	for _, n := range l.Nodes {
		if n.Group != "" && !seen[n.Group] {
			seen[n.Group] = true
			groups = append(groups, n.Group)
		}
	}
	slices.Sort(groups)
	colors := make(map[string]string, len(groups))
	for i, g := range groups {
		colors[g] = Palette[i%len(Palette)]
	}
	return colors
}

// Fill returns the fill color of a node.
func Fill(colors map[string]string, group string) string {
	if c, ok := colors[group]; ok {
		return c
	}
	return DefaultFill
}

// DrawOrder returns node indices sorted by increasing Z, keeping input
// order among equal depths.
func DrawOrder(l graph.Layout) []int {
	order := make([]int, len(l.Nodes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		za, zb := l.Nodes[a].Z, l.Nodes[b].Z
		switch {
		case za < zb:
			return -1
		case za > zb:
			return 1
		}
		return 0
	})
	return order
}
