package force

import (
	"math"

	"github.com/matzehuels/forcetower/pkg/kdtree"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// ManyBody defaults.
const (
	DefaultManyBodyStrength = -30
	DefaultTheta            = 0.9
	DefaultDistanceMin      = 1
)

// ManyBody applies mutual repulsion (negative Strength) or attraction
// (positive Strength) between all nodes. Distant regions are approximated by
// their center of mass when their width divided by their distance is below
// Theta.
type ManyBody[V vector.Vector[V]] struct {
	Strength float64
	// Mass of each node; nil means 1.
	Mass  Value
	Theta float64
	// DistanceMin floors the distance used in the force denominator.
	DistanceMin float64
	// DistanceMax ignores regions further away.
	DistanceMax float64
}

// NewManyBody returns a repulsive ManyBody force with the usual defaults.
func NewManyBody[V vector.Vector[V]]() *ManyBody[V] {
	return &ManyBody[V]{
		Strength:    DefaultManyBodyStrength,
		Theta:       DefaultTheta,
		DistanceMin: DefaultDistanceMin,
		DistanceMax: math.Inf(1),
	}
}

func (m *ManyBody[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "many-body")
	distMax := m.DistanceMax
	if distMax <= 0 {
		distMax = math.Inf(1)
	}
	return &boundManyBody[V]{
		k:        k,
		strength: m.Strength,
		theta2:   m.Theta * m.Theta,
		distMin2: m.DistanceMin * m.DistanceMin,
		distMax2: distMax * distMax,
		masses:   m.Mass.resolve(k.Len(), 1),
	}
}

type boundManyBody[V vector.Vector[V]] struct {
	k        *kinetics.Kinetics[V]
	strength float64
	theta2   float64
	distMin2 float64
	distMax2 float64
	masses   []float64
	tree     *kdtree.Tree[V, MassCentroid[V]]
}

func (b *boundManyBody[V]) Apply() {
	if b.k.Len() == 0 {
		return
	}
	if b.tree == nil {
		b.tree = kdtree.Build(b.k.Position, NewMassCentroid[V](b.masses))
	} else {
		b.tree.Rebuild(b.k.Position)
	}

	scale := b.strength * b.k.Alpha
	for i := range b.k.Position {
		acc := b.field(i)
		b.k.Velocity[i] = b.k.Velocity[i].Add(acc.Scale(scale * b.masses[i]))
	}
}

// field sums mass/distance² along the direction of every other node, as
// seen from node i.
func (b *boundManyBody[V]) field(i int) V {
	var acc V
	at := b.k.Position[i]
	b.tree.Visit(func(n *kdtree.Node[V, MassCentroid[V]]) bool {
		d := n.Delegate
		if n.IsLeaf() {
			for _, j := range b.tree.Indices(n) {
				if j == i {
					d = d.Remove(i, at)
					break
				}
			}
		}
		if d.Count == 0 || d.Mass == 0 {
			return false
		}

		dir := b.k.Jiggled(d.Centroid().Sub(at))
		d2 := dir.Norm2()
		if !n.IsLeaf() {
			w := n.Box.Width()
			if d2*b.theta2 <= w*w {
				return true
			}
		}
		if d2 >= b.distMax2 {
			return false
		}
		if d2 < b.distMin2 {
			d2 = math.Sqrt(b.distMin2 * d2)
		}
		acc = acc.Add(dir.Scale(d.Mass / d2))
		return false
	})
	return acc
}
