package force

import (
	"math"

	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Radial pulls each node towards the circle (sphere in 3D) of its radius
// around Center.
type Radial[V vector.Vector[V]] struct {
	Center V
	Radius Value
	// Strength per node; nil means DefaultPositionStrength.
	Strength Value
}

// NewRadial returns a Radial force around center.
func NewRadial[V vector.Vector[V]](center V, radius Value) *Radial[V] {
	return &Radial[V]{Center: center, Radius: radius, Strength: Constant(DefaultPositionStrength)}
}

func (f *Radial[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "radial")
	return &boundRadial[V]{
		k:         k,
		center:    f.Center,
		radii:     f.Radius.resolve(k.Len(), 0),
		strengths: f.Strength.resolve(k.Len(), DefaultPositionStrength),
	}
}

type boundRadial[V vector.Vector[V]] struct {
	k         *kinetics.Kinetics[V]
	center    V
	radii     []float64
	strengths []float64
}

func (b *boundRadial[V]) Apply() {
	alpha := b.k.Alpha
	for i, p := range b.k.Position {
		d := b.k.Jiggled(p.Sub(b.center))
		r := math.Sqrt(d.Norm2())
		s := (b.radii[i] - r) * b.strengths[i] * alpha / r
		b.k.Velocity[i] = b.k.Velocity[i].Add(d.Scale(s))
	}
}
