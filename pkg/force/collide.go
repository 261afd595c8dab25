package force

import (
	"math"

	"github.com/matzehuels/forcetower/pkg/kdtree"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Collide pushes apart nodes whose disks (spheres in 3D) overlap. Each node
// is treated at its predicted position, position plus velocity.
type Collide[V vector.Vector[V]] struct {
	// Radius of each node.
	Radius Value
	// Strength is the fraction of the overlap resolved per iteration.
	Strength float64
	// Iterations per application; the tree is rebuilt for each.
	Iterations int
}

// NewCollide returns a Collide force with strength 1 and one iteration.
func NewCollide[V vector.Vector[V]](radius Value) *Collide[V] {
	return &Collide[V]{Radius: radius, Strength: 1, Iterations: 1}
}

func (c *Collide[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "collide")
	return &boundCollide[V]{
		k:          k,
		strength:   c.Strength,
		iterations: max(c.Iterations, 1),
		radii:      c.Radius.resolve(k.Len(), 1),
		predicted:  make([]V, k.Len()),
	}
}

type boundCollide[V vector.Vector[V]] struct {
	k          *kinetics.Kinetics[V]
	strength   float64
	iterations int
	radii      []float64
	predicted  []V
	tree       *kdtree.Tree[V, MaxRadius[V]]
}

func (b *boundCollide[V]) Apply() {
	if b.k.Len() == 0 {
		return
	}
	for it := 0; it < b.iterations; it++ {
		for i := range b.predicted {
			b.predicted[i] = b.k.Predicted(i)
		}
		if b.tree == nil {
			b.tree = kdtree.Build(b.predicted, NewMaxRadius[V](b.radii))
		} else {
			b.tree.Rebuild(b.predicted)
		}
		for i := range b.predicted {
			b.resolve(i)
		}
	}
}

// resolve separates node i from every overlapping node with a larger index.
func (b *boundCollide[V]) resolve(i int) {
	ri := b.radii[i]
	ri2 := ri * ri
	at := b.predicted[i]

	b.tree.Visit(func(n *kdtree.Node[V, MaxRadius[V]]) bool {
		if n.Delegate.Count == 0 {
			return false
		}
		if !n.IsLeaf() {
			return reaches(n.Box, at, ri+n.Delegate.Max)
		}
		for _, j := range b.tree.Indices(n) {
			if j <= i {
				continue
			}
			rj := b.radii[j]
			r := ri + rj
			d := at.Sub(b.k.Predicted(j))
			if d.Norm2() >= r*r {
				continue
			}
			d = b.k.Jiggled(d)
			l := math.Sqrt(d.Norm2())
			d = d.Scale((r - l) / l * b.strength)

			rj2 := rj * rj
			w := rj2 / (ri2 + rj2)
			b.k.Velocity[i] = b.k.Velocity[i].Add(d.Scale(w))
			b.k.Velocity[j] = b.k.Velocity[j].Sub(d.Scale(1 - w))
		}
		return false
	})
}

// reaches reports whether a disk of radius r around p can touch box.
func reaches[V vector.Vector[V]](box kdtree.Box[V], p V, r float64) bool {
	for k := 0; k < p.Dims(); k++ {
		x := p.At(k)
		if box.Min.At(k) > x+r || box.Max.At(k) < x-r {
			return false
		}
	}
	return true
}
