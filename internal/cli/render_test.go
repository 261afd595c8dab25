package cli

import (
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "graph.json", "graph"},
		{"from layout input", "", "out/graph.layout.json", "out/graph"},
		{"output with format ext", "art/ring.svg", "graph.json", "art/ring"},
		{"output without ext", "art/ring", "graph.json", "art/ring"},
		{"output with other ext", "art/ring.v2", "graph.json", "art/ring.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single format with output",
			output:  "ring.picture",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "ring.picture"},
		},
		{
			name:    "single format without output",
			formats: []string{"dot"},
			want:    map[string]string{"dot": "ring.dot"},
		},
		{
			name:    "multiple formats share base",
			output:  "art/ring.svg",
			formats: []string{"svg", "dot"},
			want:    map[string]string{"svg": "art/ring.svg", "dot": "art/ring.dot"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "ring.layout.json", tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestNeedsConverter(t *testing.T) {
	if needsConverter([]string{"svg", "dot"}) {
		t.Error("svg and dot need no converter")
	}
	if !needsConverter([]string{"svg", "png"}) {
		t.Error("png needs the converter")
	}
}
