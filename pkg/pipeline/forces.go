package pipeline

import (
	"fmt"
	"math"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/force"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Force kinds accepted in ForceSpec.Kind.
const (
	KindCenter   = "center"
	KindManyBody = "many_body"
	KindLink     = "link"
	KindCollide  = "collide"
	KindX        = "x"
	KindY        = "y"
	KindZ        = "z"
	KindRadial   = "radial"
)

// ForceSpec is a serializable description of one force. Zero fields keep
// the force's own defaults; Strength is a pointer because zero is a
// meaningful strength.
type ForceSpec struct {
	Kind     string   `json:"kind" toml:"kind"`
	Strength *float64 `json:"strength,omitempty" toml:"strength"`

	// many_body
	Theta       float64 `json:"theta,omitempty" toml:"theta"`
	DistanceMin float64 `json:"distance_min,omitempty" toml:"distance_min"`
	DistanceMax float64 `json:"distance_max,omitempty" toml:"distance_max"`

	// link: rest length for edges without their own length
	Distance float64 `json:"distance,omitempty" toml:"distance"`

	// link, collide
	Iterations int `json:"iterations,omitempty" toml:"iterations"`

	// collide: uniform radius overriding node radii; radial: ring radius
	Radius float64 `json:"radius,omitempty" toml:"radius"`

	// x, y, z: target coordinate
	Target float64 `json:"target,omitempty" toml:"target"`

	// center, radial: center point
	X float64 `json:"cx,omitempty" toml:"cx"`
	Y float64 `json:"cy,omitempty" toml:"cy"`
	Z float64 `json:"cz,omitempty" toml:"cz"`
}

// Float returns a pointer to x, for ForceSpec.Strength and graph.Edge literals.
func Float(x float64) *float64 { return &x }

// DefaultForces returns the standard combination: many-body repulsion,
// links at rest length 30 and centering on the origin.
func DefaultForces() []ForceSpec {
	return []ForceSpec{
		{Kind: KindManyBody, Strength: Float(force.DefaultManyBodyStrength)},
		{Kind: KindLink, Distance: force.DefaultLinkLength},
		{Kind: KindCenter, Strength: Float(1)},
	}
}

// Validate checks the spec against the layout dimensionality.
func (s ForceSpec) Validate(dims int) error {
	switch s.Kind {
	case KindCenter, KindManyBody, KindLink, KindCollide, KindX, KindY, KindRadial:
	case KindZ:
		if dims < 3 {
			return errors.New(errors.ErrCodeInvalidForce, "z force requires 3 dimensions")
		}
	case "":
		return errors.New(errors.ErrCodeInvalidForce, "force kind is required")
	default:
		return errors.New(errors.ErrCodeInvalidForce, "unknown force kind %q", s.Kind)
	}

	checks := []struct {
		name string
		x    float64
	}{
		{"theta", s.Theta},
		{"distance_min", s.DistanceMin},
		{"distance", s.Distance},
		{"radius", s.Radius},
		{"target", s.Target},
		{"cx", s.X},
		{"cy", s.Y},
		{"cz", s.Z},
	}
	if s.Strength != nil {
		checks = append(checks, struct {
			name string
			x    float64
		}{"strength", *s.Strength})
	}
	for _, c := range checks {
		if err := errors.ValidateFinite(c.name, c.x); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidForce, err, "%s force", s.Kind)
		}
	}
	if s.Theta < 0 || s.DistanceMin < 0 || s.DistanceMax < 0 || s.Distance < 0 || s.Radius < 0 || s.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidForce, "%s force: parameters must be non-negative", s.Kind)
	}
	if math.IsNaN(s.DistanceMax) {
		return errors.New(errors.ErrCodeInvalidForce, "%s force: distance_max is NaN", s.Kind)
	}
	return nil
}

// String implements fmt.Stringer.
func (s ForceSpec) String() string {
	if s.Strength != nil {
		return fmt.Sprintf("%s(%g)", s.Kind, *s.Strength)
	}
	return s.Kind
}

// buildForce turns one spec into a force over graph g. idx must have been
// built from g.
func buildForce[V vector.Vector[V]](s ForceSpec, g graph.Graph, idx *graph.Index) force.Force[V] {
	center := point[V](s.X, s.Y, s.Z)
	switch s.Kind {
	case KindCenter:
		f := force.NewCenter(center)
		if s.Strength != nil {
			f.Strength = *s.Strength
		}
		return f

	case KindManyBody:
		f := force.NewManyBody[V]()
		f.Mass = force.PerNode(nodeValues(g, (*graph.Node).EffectiveMass))
		if s.Strength != nil {
			f.Strength = *s.Strength
		}
		if s.Theta > 0 {
			f.Theta = s.Theta
		}
		if s.DistanceMin > 0 {
			f.DistanceMin = s.DistanceMin
		}
		if s.DistanceMax > 0 {
			f.DistanceMax = s.DistanceMax
		}
		return f

	case KindLink:
		f := force.NewLink[V]()
		attrs := edgeAttrs(g, idx)
		length := s.Distance
		if length == 0 {
			length = force.DefaultLinkLength
		}
		f.Length = func(e kinetics.Edge, _ *force.LinkLookup) float64 {
			if a := attrs[e]; a.Length != nil {
				return *a.Length
			}
			return length
		}
		fallback := force.DegreeWeighted(1)
		if s.Strength != nil {
			fallback = force.ConstantEdge(*s.Strength)
		}
		f.Stiffness = func(e kinetics.Edge, l *force.LinkLookup) float64 {
			if a := attrs[e]; a.Strength != nil {
				return *a.Strength
			}
			return fallback(e, l)
		}
		if s.Iterations > 0 {
			f.Iterations = s.Iterations
		}
		return f

	case KindCollide:
		radius := force.PerNode(nodeValues(g, (*graph.Node).EffectiveRadius))
		if s.Radius > 0 {
			radius = force.Constant(s.Radius)
		}
		f := force.NewCollide[V](radius)
		if s.Strength != nil {
			f.Strength = *s.Strength
		}
		if s.Iterations > 0 {
			f.Iterations = s.Iterations
		}
		return f

	case KindX, KindY, KindZ:
		axis := map[string]int{KindX: force.AxisX, KindY: force.AxisY, KindZ: force.AxisZ}[s.Kind]
		f := force.NewPosition[V](axis, force.Constant(s.Target))
		if s.Strength != nil {
			f.Strength = force.Constant(*s.Strength)
		}
		return f

	case KindRadial:
		f := force.NewRadial(center, force.Constant(s.Radius))
		if s.Strength != nil {
			f.Strength = force.Constant(*s.Strength)
		}
		return f
	}
	panic(fmt.Sprintf("pipeline: unvalidated force kind %q", s.Kind))
}

// buildForces composes all specs in order.
func buildForces[V vector.Vector[V]](specs []ForceSpec, g graph.Graph, idx *graph.Index) force.Composite[V] {
	forces := make([]force.Force[V], len(specs))
	for i, s := range specs {
		forces[i] = buildForce[V](s, g, idx)
	}
	return force.Compose(forces...)
}

func nodeValues(g graph.Graph, fn func(*graph.Node) float64) []float64 {
	out := make([]float64, len(g.Nodes))
	for i := range g.Nodes {
		out[i] = fn(&g.Nodes[i])
	}
	return out
}

// edgeAttrs maps each index pair to the attributes of its first edge.
func edgeAttrs(g graph.Graph, idx *graph.Index) map[kinetics.Edge]graph.Edge {
	out := make(map[kinetics.Edge]graph.Edge, len(g.Edges))
	for i, e := range idx.Edges(g) {
		if _, ok := out[e]; !ok {
			out[e] = g.Edges[i]
		}
	}
	return out
}

// point builds a V from up to three coordinates, ignoring axes V lacks.
func point[V vector.Vector[V]](coords ...float64) V {
	var p V
	for axis := 0; axis < min(p.Dims(), len(coords)); axis++ {
		p = p.With(axis, coords[axis])
	}
	return p
}
