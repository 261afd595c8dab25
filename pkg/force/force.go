package force

import (
	"fmt"

	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Bound is a force attached to a kinetic state.
type Bound interface {
	// Apply runs the force once, typically adding to velocities.
	Apply()
}

// Force is a force configuration that can be attached to a kinetic state.
type Force[V vector.Vector[V]] interface {
	Bind(k *kinetics.Kinetics[V]) Bound
}

// Composite is an ordered list of forces applied as one.
type Composite[V vector.Vector[V]] []Force[V]

// Compose returns the forces as a single Force applied in argument order.
func Compose[V vector.Vector[V]](forces ...Force[V]) Composite[V] {
	return Composite[V](forces)
}

// Bind binds every force in order.
func (c Composite[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "composite")
	bs := make(sequence, 0, len(c))
	for i, f := range c {
		if f == nil {
			panic(fmt.Sprintf("force: composite member %d is nil", i))
		}
		bs = append(bs, f.Bind(k))
	}
	return bs
}

type sequence []Bound

func (s sequence) Apply() {
	for _, b := range s {
		b.Apply()
	}
}

// Value provides a per-node scalar such as a mass or a radius. It is
// evaluated once per node at bind time.
type Value func(i int) float64

// Constant returns a Value that is x for every node.
func Constant(x float64) Value {
	return func(int) float64 { return x }
}

// PerNode returns a Value backed by xs, which must cover every node.
func PerNode(xs []float64) Value {
	return func(i int) float64 { return xs[i] }
}

// resolve evaluates v for n nodes, using def when v is nil.
func (v Value) resolve(n int, def float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if v == nil {
			out[i] = def
			continue
		}
		out[i] = v(i)
	}
	return out
}

func mustBind[V vector.Vector[V]](k *kinetics.Kinetics[V], name string) {
	if k == nil {
		panic("force: " + name + " bound to nil kinetics")
	}
}
