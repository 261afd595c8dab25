package force

import (
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Center translates all nodes so that their mean position moves towards
// Target. It changes positions directly and leaves the relative layout
// untouched.
type Center[V vector.Vector[V]] struct {
	Target V
	// Strength is the fraction of the offset removed per tick.
	Strength float64
}

// NewCenter returns a Center force with strength 1.
func NewCenter[V vector.Vector[V]](target V) *Center[V] {
	return &Center[V]{Target: target, Strength: 1}
}

func (c *Center[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "center")
	return &boundCenter[V]{k: k, target: c.Target, strength: c.Strength}
}

type boundCenter[V vector.Vector[V]] struct {
	k        *kinetics.Kinetics[V]
	target   V
	strength float64
}

func (b *boundCenter[V]) Apply() {
	if b.k.Len() == 0 {
		return
	}
	shift := vector.Mean(b.k.Position).Sub(b.target).Scale(b.strength)
	for i, p := range b.k.Position {
		b.k.Position[i] = p.Sub(shift)
	}
}
