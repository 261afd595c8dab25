package pipeline

import (
	"fmt"

	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/render"
	"github.com/matzehuels/forcetower/pkg/render/nodelink"
	"github.com/matzehuels/forcetower/pkg/render/sink"
)

// pngScale is the resolution multiplier of PNG output.
const pngScale = 2.0

// RenderFromLayout generates artifacts for every requested format.
func RenderFromLayout(l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte // shared by svg, png and pdf
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG, FormatPNG, FormatPDF:
			if svg == nil {
				if svg, err = renderSVG(l, opts); err != nil {
					return nil, fmt.Errorf("render svg: %w", err)
				}
			}
			switch format {
			case FormatSVG:
				data = svg
			case FormatPNG:
				data, err = render.ToPNG(svg, pngScale)
			case FormatPDF:
				data, err = render.ToPDF(svg)
			}
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, dotOptions(opts)))
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(l, opts)
}

func renderSVG(l graph.Layout, opts Options) ([]byte, error) {
	if opts.Engine == EngineGraphviz {
		return nodelink.RenderSVG(nodelink.ToDOT(l, dotOptions(opts)))
	}
	svgOpts := []sink.SVGOption{sink.WithSize(opts.Width, opts.Height)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	return sink.RenderSVG(l, svgOpts...), nil
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{Width: opts.Width, Height: opts.Height, Labels: opts.Labels}
}
