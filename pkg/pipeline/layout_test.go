package pipeline

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// ringEquilibrium is the settled edge length of a 5-ring under DefaultForces.
const ringEquilibrium = 36.5

func ringGraph(n int) graph.Graph {
	var g graph.Graph
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i)})
		g.Edges = append(g.Edges, graph.Edge{From: fmt.Sprintf("n%d", i), To: fmt.Sprintf("n%d", (i+1)%n)})
	}
	return g
}

func distance(a, b graph.Placement) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}

func TestGenerateLayoutRing(t *testing.T) {
	for _, dims := range []int{2, 3} {
		t.Run(fmt.Sprintf("%dD", dims), func(t *testing.T) {
			l, stats, err := GenerateLayout(context.Background(), ringGraph(5), Options{Dimensions: dims, Seed: 3})
			if err != nil {
				t.Fatalf("GenerateLayout: %v", err)
			}
			if l.Dimensions != dims || len(l.Nodes) != 5 || len(l.Edges) != 5 {
				t.Fatalf("layout = %d dims, %d nodes, %d edges", l.Dimensions, len(l.Nodes), len(l.Edges))
			}
			if stats.Ticks == 0 || stats.Ticks != l.Ticks {
				t.Errorf("ticks = %d (layout %d)", stats.Ticks, l.Ticks)
			}
			if l.Alpha >= 0.001 {
				t.Errorf("alpha = %v, want settled below 0.001", l.Alpha)
			}
			// A twisted start can leave single edges up to ~17% off, but
			// the mean edge length settles at the ring equilibrium.
			var total float64
			for i := range l.Nodes {
				d := distance(l.Nodes[i], l.Nodes[(i+1)%5])
				total += d
				if math.Abs(d-ringEquilibrium) > 0.2*ringEquilibrium {
					t.Errorf("edge %d length = %.2f, want within 20%% of %v", i, d, ringEquilibrium)
				}
			}
			if mean := total / 5; math.Abs(mean-ringEquilibrium) > 0.03*ringEquilibrium {
				t.Errorf("mean edge length = %.2f, want within 3%% of %v", mean, ringEquilibrium)
			}
			if dims == 2 {
				for _, n := range l.Nodes {
					if n.Z != 0 {
						t.Errorf("2D node %s has z = %v", n.ID, n.Z)
					}
				}
			}
		})
	}
}

func TestGenerateLayoutDeterministic(t *testing.T) {
	run := func(seed uint64) graph.Layout {
		l, _, err := GenerateLayout(context.Background(), ringGraph(8), Options{Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		return l
	}
	a, b := run(11), run(11)
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			t.Fatalf("node %d differs between identical runs: %+v vs %+v", i, a.Nodes[i], b.Nodes[i])
		}
	}
	c := run(0)
	same := true
	for i := range a.Nodes {
		if a.Nodes[i].X != c.Nodes[i].X {
			same = false
		}
	}
	if same {
		t.Error("seeded and spiral starts should give different layouts")
	}
}

func TestGenerateLayoutFixedNodes(t *testing.T) {
	g := ringGraph(4)
	g.Nodes[0].Fixed = []float64{100, -50}
	l, _, err := GenerateLayout(context.Background(), g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := l.Nodes[0]; n.X != 100 || n.Y != -50 || !n.Fixed {
		t.Errorf("pinned node = %+v, want (100, -50) fixed", n)
	}
	if l.Nodes[1].Fixed {
		t.Error("unpinned node marked fixed")
	}
}

func TestGenerateLayoutEdgeLength(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}},
		Edges: []graph.Edge{{From: "a", To: "b", Length: Float(50)}},
	}
	l, _, err := GenerateLayout(context.Background(), g, Options{Forces: []ForceSpec{{Kind: KindLink}}})
	if err != nil {
		t.Fatal(err)
	}
	if d := distance(l.Nodes[0], l.Nodes[1]); math.Abs(d-50) > 0.5 {
		t.Errorf("distance = %.3f, want 50", d)
	}
}

func TestGenerateLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		g    graph.Graph
		opts Options
		code errors.Code
	}{
		{"DuplicateNode", graph.Graph{Nodes: []graph.Node{{ID: "a"}, {ID: "a"}}}, Options{}, errors.ErrCodeInvalidGraph},
		{"DanglingEdge", graph.Graph{Nodes: []graph.Node{{ID: "a"}}, Edges: []graph.Edge{{From: "a", To: "b"}}}, Options{}, errors.ErrCodeInvalidEdge},
		{"FixedArity", graph.Graph{Nodes: []graph.Node{{ID: "a", Fixed: []float64{1}}}}, Options{}, errors.ErrCodeInvalidGraph},
		{"BadSchedule", ringGraph(3), Options{Schedule: kineticsWithDecay(2)}, errors.ErrCodeInvalidInput},
		{"BadForce", ringGraph(3), Options{Forces: []ForceSpec{{Kind: "?"}}}, errors.ErrCodeInvalidForce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateLayout(context.Background(), tt.g, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("GenerateLayout() = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestGenerateLayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, stats, err := GenerateLayout(ctx, ringGraph(5), Options{})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if stats.Ticks != 0 {
		t.Errorf("ticks = %d, want 0", stats.Ticks)
	}
}

func TestGenerateLayoutEmpty(t *testing.T) {
	l, _, err := GenerateLayout(context.Background(), graph.Graph{}, Options{})
	if err != nil {
		t.Fatalf("GenerateLayout(empty) = %v", err)
	}
	if len(l.Nodes) != 0 {
		t.Errorf("nodes = %d, want 0", len(l.Nodes))
	}
}

func TestBuildDimensionMismatch(t *testing.T) {
	opts := Options{Dimensions: 3}
	if _, _, err := Build[vector.Vec2](ringGraph(3), &opts); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Build = %v, want INTERNAL_ERROR", err)
	}
}

func TestBuildIndex(t *testing.T) {
	opts := Options{}
	sim, idx, err := Build[vector.Vec2](ringGraph(6), &opts)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Len() != 6 || idx.Len() != 6 {
		t.Errorf("Len = %d / %d, want 6", sim.Len(), idx.Len())
	}
	if i, ok := idx.Of("n4"); !ok || i != 4 {
		t.Errorf("Of(n4) = %d, %v", i, ok)
	}
}

func TestScatter(t *testing.T) {
	a, b := scatter[vector.Vec3](5, 10), scatter[vector.Vec3](5, 10)
	for i := 0; i < 20; i++ {
		p, q := a(i), b(i)
		if p != q {
			t.Fatalf("scatter not deterministic at %d: %v vs %v", i, p, q)
		}
		for axis := 0; axis < 3; axis++ {
			if x := p.At(axis); x < -10 || x > 10 {
				t.Errorf("coordinate %v outside [-10, 10]", x)
			}
		}
	}
}

func kineticsWithDecay(decay float64) kinetics.Schedule {
	s := kinetics.DefaultSchedule()
	s.AlphaDecay = decay
	return s
}
