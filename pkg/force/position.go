package force

import (
	"fmt"

	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Axes for Position.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// DefaultPositionStrength is the default strength of Position and Radial.
const DefaultPositionStrength = 0.1

// Position pulls each node along one axis towards a target coordinate.
type Position[V vector.Vector[V]] struct {
	Axis   int
	Target Value
	// Strength per node; nil means DefaultPositionStrength.
	Strength Value
}

// NewPosition returns a Position force on axis towards target.
func NewPosition[V vector.Vector[V]](axis int, target Value) *Position[V] {
	return &Position[V]{Axis: axis, Target: target, Strength: Constant(DefaultPositionStrength)}
}

func (f *Position[V]) Bind(k *kinetics.Kinetics[V]) Bound {
	mustBind(k, "position")
	if dims := vector.Dims[V](); f.Axis < 0 || f.Axis >= dims {
		panic(fmt.Sprintf("force: position axis %d out of range for %d dimensions", f.Axis, dims))
	}
	return &boundPosition[V]{
		k:         k,
		axis:      f.Axis,
		targets:   f.Target.resolve(k.Len(), 0),
		strengths: f.Strength.resolve(k.Len(), DefaultPositionStrength),
	}
}

type boundPosition[V vector.Vector[V]] struct {
	k         *kinetics.Kinetics[V]
	axis      int
	targets   []float64
	strengths []float64
}

func (b *boundPosition[V]) Apply() {
	alpha := b.k.Alpha
	for i, p := range b.k.Position {
		v := b.k.Velocity[i]
		dv := (b.targets[i] - p.At(b.axis)) * b.strengths[i] * alpha
		b.k.Velocity[i] = v.With(b.axis, v.At(b.axis)+dv)
	}
}
