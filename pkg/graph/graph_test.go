package graph

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/forcetower/pkg/errors"
)

func ptr(x float64) *float64 { return &x }

func sample() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "a", Mass: 2, Meta: map[string]any{"version": "1.0"}},
			{ID: "b", Radius: 8, Fixed: []float64{0, 0}},
			{ID: "c", Label: "Charlie", Group: "x"},
		},
		Edges: []Edge{
			{From: "a", To: "b", Length: ptr(40), Strength: ptr(0)},
			{From: "b", To: "c"},
		},
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := sample()
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if len(got.Nodes) != 3 || len(got.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges, want 3, 2", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].Meta["version"] != "1.0" {
		t.Errorf("meta version = %v, want 1.0", got.Nodes[0].Meta["version"])
	}
	if got.Nodes[1].Fixed[1] != 0 || len(got.Nodes[1].Fixed) != 2 {
		t.Errorf("fixed = %v, want [0 0]", got.Nodes[1].Fixed)
	}
	if e := got.Edges[0]; e.Length == nil || *e.Length != 40 {
		t.Errorf("edge length = %v, want 40", e.Length)
	}
	if e := got.Edges[0]; e.Strength == nil || *e.Strength != 0 {
		t.Errorf("edge strength = %v, want an explicit 0", e.Strength)
	}
	if got.Edges[1].Length != nil || got.Edges[1].Strength != nil {
		t.Errorf("edge 1 = %+v, want no overrides", got.Edges[1])
	}
}

func TestMarshalOmitsDefaults(t *testing.T) {
	data, err := MarshalGraph(Graph{Nodes: []Node{{ID: "solo"}}})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"mass", "radius", "fixed", "label", "meta"} {
		if bytes.Contains(data, []byte(`"`+field+`"`)) {
			t.Errorf("output contains %q: %s", field, data)
		}
	}
}

func TestUnmarshalGraphInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Empty", ""},
		{"Garbage", "not json"},
		{"WrongType", `{"nodes": "a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalGraph([]byte(tt.data)); err == nil {
				t.Error("expected error")
			} else if !strings.Contains(err.Error(), "decode") {
				t.Errorf("error = %v, want decode prefix", err)
			}
		})
	}
}

func TestGraphFileIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(sample(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.Nodes[2].DisplayLabel() != "Charlie" {
		t.Errorf("label = %q, want Charlie", g.Nodes[2].DisplayLabel())
	}

	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestNodeDefaults(t *testing.T) {
	n := Node{ID: "x"}
	if n.EffectiveMass() != DefaultMass {
		t.Errorf("EffectiveMass() = %v, want %v", n.EffectiveMass(), DefaultMass)
	}
	if n.EffectiveRadius() != DefaultRadius {
		t.Errorf("EffectiveRadius() = %v, want %v", n.EffectiveRadius(), DefaultRadius)
	}
	if n.DisplayLabel() != "x" {
		t.Errorf("DisplayLabel() = %q, want x", n.DisplayLabel())
	}
	n = Node{ID: "x", Mass: 3, Radius: 2}
	if n.EffectiveMass() != 3 || n.EffectiveRadius() != 2 {
		t.Errorf("effective = (%v, %v), want (3, 2)", n.EffectiveMass(), n.EffectiveRadius())
	}
}

func TestIndex(t *testing.T) {
	g := sample()
	x, err := g.Index(2)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if x.Len() != 3 {
		t.Errorf("Len() = %d, want 3", x.Len())
	}
	for i, n := range g.Nodes {
		got, ok := x.Of(n.ID)
		if !ok || got != i {
			t.Errorf("Of(%q) = %d, %v, want %d, true", n.ID, got, ok, i)
		}
		if x.ID(i) != n.ID {
			t.Errorf("ID(%d) = %q, want %q", i, x.ID(i), n.ID)
		}
	}
	if _, ok := x.Of("zzz"); ok {
		t.Error("Of(zzz) found, want missing")
	}
	edges := x.Edges(g)
	if edges[0].Source != 0 || edges[0].Target != 1 || edges[1].Source != 1 || edges[1].Target != 2 {
		t.Errorf("Edges() = %v, want [{0 1} {1 2}]", edges)
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		g    Graph
		dims int
		code errors.Code
	}{
		{"EmptyID", Graph{Nodes: []Node{{ID: ""}}}, 2, errors.ErrCodeInvalidGraph},
		{"Duplicate", Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}, 2, errors.ErrCodeInvalidGraph},
		{"NegativeMass", Graph{Nodes: []Node{{ID: "a", Mass: -1}}}, 2, errors.ErrCodeInvalidGraph},
		{"FixedArity", Graph{Nodes: []Node{{ID: "a", Fixed: []float64{1, 2, 3}}}}, 2, errors.ErrCodeInvalidGraph},
		{"UnknownSource", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "x", To: "a"}}}, 2, errors.ErrCodeInvalidEdge},
		{"UnknownTarget", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "x"}}}, 2, errors.ErrCodeInvalidEdge},
		{"NegativeLength", Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}}, Edges: []Edge{{From: "a", To: "b", Length: ptr(-1)}}}, 2, errors.ErrCodeInvalidEdge},
		{"NaNStrength", Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}}, Edges: []Edge{{From: "a", To: "b", Strength: ptr(math.NaN())}}}, 2, errors.ErrCodeInvalidEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.g.Index(tt.dims)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestIndexSkipsArityWithoutDims(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Fixed: []float64{1, 2, 3}}}}
	if _, err := g.Index(0); err != nil {
		t.Errorf("Index(0) = %v, want nil", err)
	}
}

func TestLayoutBounds(t *testing.T) {
	tests := []struct {
		name                   string
		nodes                  []Placement
		minX, minY, maxX, maxY float64
	}{
		{"Empty", nil, 0, 0, 0, 0},
		{"Single", []Placement{{ID: "a", X: 1, Y: 2}}, 1, 2, 1, 2},
		{"WithRadius", []Placement{{ID: "a", X: 0, Y: 0, Radius: 5}, {ID: "b", X: 10, Y: -4, Radius: 1}}, -5, -5, 11, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout{Dimensions: 2, Nodes: tt.nodes}
			minX, minY, maxX, maxY := l.Bounds()
			if minX != tt.minX || minY != tt.minY || maxX != tt.maxX || maxY != tt.maxY {
				t.Errorf("Bounds() = (%v, %v, %v, %v), want (%v, %v, %v, %v)",
					minX, minY, maxX, maxY, tt.minX, tt.minY, tt.maxX, tt.maxY)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{
		Dimensions: 3,
		Ticks:      300,
		Alpha:      0.00099,
		Seed:       7,
		Nodes: []Placement{
			{ID: "a", X: 1, Y: 2, Z: 3, Radius: 5},
			{ID: "b", X: -1, Y: -2, Z: -3, Fixed: true},
		},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.Dimensions != 3 || got.Ticks != 300 || got.Seed != 7 {
		t.Errorf("header = %+v, want dims 3, ticks 300, seed 7", got)
	}
	if got.Nodes[0].Z != 3 || !got.Nodes[1].Fixed {
		t.Errorf("nodes = %+v", got.Nodes)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Garbage", "{"},
		{"BadDimensions", `{"dimensions": 4, "nodes": []}`},
		{"DuplicateNode", `{"dimensions": 2, "nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"DanglingEdge", `{"dimensions": 2, "nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
