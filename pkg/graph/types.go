package graph

import (
	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/kinetics"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Default physics attributes for nodes that do not set them.
const (
	DefaultMass   = 1.0
	DefaultRadius = 5.0
)

// =============================================================================
// Graph - Input Serialization
// =============================================================================

// Graph is the canonical serialization format for input graphs.
//
// Node order is significant: the i-th node becomes simulation index i, so the
// same file always produces the same layout.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a vertex with optional physics attributes.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"`
	Group  string         `json:"group,omitempty"`
	Mass   float64        `json:"mass,omitempty"`   // Many-body weight, 0 means DefaultMass
	Radius float64        `json:"radius,omitempty"` // Collision radius, 0 means DefaultRadius
	Fixed  []float64      `json:"fixed,omitempty"`  // Pinned coordinates
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// EffectiveMass returns the mass, or DefaultMass when unset.
func (n *Node) EffectiveMass() float64 {
	if n.Mass == 0 {
		return DefaultMass
	}
	return n.Mass
}

// EffectiveRadius returns the radius, or DefaultRadius when unset.
func (n *Node) EffectiveRadius() float64 {
	if n.Radius == 0 {
		return DefaultRadius
	}
	return n.Radius
}

// Edge is a link between two nodes. Length and Strength override the link
// force's rest length and stiffness for this edge; nil keeps the force's
// value. An explicit 0 is honored: "strength": 0 leaves the edge slack.
type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Length   *float64 `json:"length,omitempty"`
	Strength *float64 `json:"strength,omitempty"`
}

// =============================================================================
// Index - ID ↔ Dense Index Mapping
// =============================================================================

// Index maps node IDs to the dense indices used by the simulation.
type Index struct {
	ids []string
	pos map[string]int
}

// Index validates g and returns its ID mapping. It rejects empty or
// malformed IDs, duplicate IDs, edges to unknown nodes and fixed
// coordinates of the wrong arity. A zero dims skips the arity check.
func (g Graph) Index(dims int) (*Index, error) {
	x := &Index{
		ids: make([]string, len(g.Nodes)),
		pos: make(map[string]int, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %d", i)
		}
		if _, dup := x.pos[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		if n.Mass < 0 || n.Radius < 0 {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %q: mass and radius must be non-negative", n.ID)
		}
		if dims > 0 && n.Fixed != nil && len(n.Fixed) != dims {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %q: fixed has %d coordinates, want %d", n.ID, len(n.Fixed), dims)
		}
		x.ids[i] = n.ID
		x.pos[n.ID] = i
	}
	for i, e := range g.Edges {
		if _, ok := x.pos[e.From]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidEdge, "edge %d: unknown source %q", i, e.From)
		}
		if _, ok := x.pos[e.To]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidEdge, "edge %d: unknown target %q", i, e.To)
		}
		for _, v := range []*float64{e.Length, e.Strength} {
			if v == nil {
				continue
			}
			if err := errors.ValidateFinite("edge attribute", *v); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidEdge, err, "edge %d", i)
			}
			if *v < 0 {
				return nil, errors.New(errors.ErrCodeInvalidEdge, "edge %d: length and strength must be non-negative", i)
			}
		}
	}
	return x, nil
}

// Len returns the number of nodes.
func (x *Index) Len() int { return len(x.ids) }

// Of returns the index of the node with the given ID.
func (x *Index) Of(id string) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// ID returns the ID of node i.
func (x *Index) ID(i int) string { return x.ids[i] }

// Edges converts g's edges to index pairs. g must be the graph x was built from.
func (x *Index) Edges(g Graph) []kinetics.Edge {
	out := make([]kinetics.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = kinetics.Edge{Source: x.pos[e.From], Target: x.pos[e.To]}
	}
	return out
}
