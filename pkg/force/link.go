package force

import (
	"fmt"
	"math"

	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// DefaultLinkLength is the default rest length of a link.
const DefaultLinkLength = 30

// LinkLookup is the adjacency of a set of edges.
type LinkLookup struct {
	// Targets lists, per node, the targets of edges it is the source of.
	Targets [][]int
	// Sources lists, per node, the sources of edges it is the target of.
	Sources [][]int
	// Degree counts the edges incident to each node.
	Degree []int
}

// NewLinkLookup indexes edges over n nodes. It panics on an edge endpoint
// outside [0, n).
func NewLinkLookup(n int, edges []kinetics.Edge) *LinkLookup {
	l := &LinkLookup{
		Targets: make([][]int, n),
		Sources: make([][]int, n),
		Degree:  make([]int, n),
	}
	for i, e := range edges {
		if e.Source < 0 || e.Source >= n || e.Target < 0 || e.Target >= n {
			panic(fmt.Sprintf("force: link %d (%d->%d) out of range for %d nodes", i, e.Source, e.Target, n))
		}
		l.Targets[e.Source] = append(l.Targets[e.Source], e.Target)
		l.Sources[e.Target] = append(l.Sources[e.Target], e.Source)
		l.Degree[e.Source]++
		l.Degree[e.Target]++
	}
	return l
}

// Bias returns the share of an edge's correction absorbed by its target:
// deg(source) / (deg(source) + deg(target)), or 0.5 when both degrees are 0.
func (l *LinkLookup) Bias(e kinetics.Edge) float64 {
	s, t := l.Degree[e.Source], l.Degree[e.Target]
	if s+t == 0 {
		return 0.5
	}
	return float64(s) / float64(s+t)
}

// EdgeValue provides a per-edge scalar such as a stiffness or a rest length.
type EdgeValue func(e kinetics.Edge, l *LinkLookup) float64

// ConstantEdge returns x for every edge.
func ConstantEdge(x float64) EdgeValue {
	return func(kinetics.Edge, *LinkLookup) float64 { return x }
}

// DegreeWeighted returns k / min(deg(source), deg(target)), which weakens
// links attached to hubs.
func DegreeWeighted(k float64) EdgeValue {
	return func(e kinetics.Edge, l *LinkLookup) float64 {
		d := min(l.Degree[e.Source], l.Degree[e.Target])
		if d == 0 {
			return k
		}
		return k / float64(d)
	}
}

// Link pulls the endpoints of every edge towards a rest length.
type Link[V vector.Vector[V]] struct {
	// Edges to enforce; nil uses the edges of the kinetic state.
	Edges []kinetics.Edge
	// Stiffness per edge; nil means DegreeWeighted(1).
	Stiffness EdgeValue
	// Length is the rest length per edge; nil means DefaultLinkLength.
	Length     EdgeValue
	Iterations int
}

// NewLink returns a Link force over the kinetic state's edges.
func NewLink[V vector.Vector[V]]() *Link[V] {
	return &Link[V]{
		Stiffness:  DegreeWeighted(1),
		Length:     ConstantEdge(DefaultLinkLength),
		Iterations: 1,
	}
}

// Bind indexes the edges and precomputes bias, stiffness and rest length
// per edge. Self-loops are dropped.
func (f *Link[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "link")
	src := f.Edges
	if src == nil {
		src = k.Edges
	}
	edges := make([]kinetics.Edge, 0, len(src))
	for _, e := range src {
		if e.Source != e.Target {
			edges = append(edges, e)
		}
	}

	stiffness := f.Stiffness
	if stiffness == nil {
		stiffness = DegreeWeighted(1)
	}
	length := f.Length
	if length == nil {
		length = ConstantEdge(DefaultLinkLength)
	}

	lookup := NewLinkLookup(k.Len(), edges)
	b := &boundLink[V]{
		k:          k,
		edges:      edges,
		iterations: max(f.Iterations, 1),
		bias:       make([]float64, len(edges)),
		stiffness:  make([]float64, len(edges)),
		length:     make([]float64, len(edges)),
	}
	for i, e := range edges {
		b.bias[i] = lookup.Bias(e)
		b.stiffness[i] = stiffness(e, lookup)
		b.length[i] = length(e, lookup)
	}
	return b
}

type boundLink[V vector.Vector[V]] struct {
	k          *kinetics.Kinetics[V]
	edges      []kinetics.Edge
	iterations int
	bias       []float64
	stiffness  []float64
	length     []float64
}

func (b *boundLink[V]) Apply() {
	alpha := b.k.Alpha
	for it := 0; it < b.iterations; it++ {
		for i, e := range b.edges {
			d := b.k.Jiggled(b.k.Predicted(e.Target).Sub(b.k.Predicted(e.Source)))
			l := math.Sqrt(d.Norm2())
			d = d.Scale((l - b.length[i]) / l * alpha * b.stiffness[i])

			bias := b.bias[i]
			b.k.Velocity[e.Target] = b.k.Velocity[e.Target].Sub(d.Scale(bias))
			b.k.Velocity[e.Source] = b.k.Velocity[e.Source].Add(d.Scale(1 - bias))
		}
	}
}
