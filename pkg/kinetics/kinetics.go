// Package kinetics holds the mutable state of a running layout: positions,
// velocities, pins and the temperature schedule that scales every force.
//
// A Kinetics value is created once per simulation. Forces bind to it and
// accumulate into Velocity; the driver calls DecayAlpha and Integrate around
// each force application.
package kinetics

import (
	"fmt"
	"math"

	"github.com/matzehuels/forcetower/pkg/vector"
)

// Default schedule values.
const (
	DefaultAlpha         = 1.0
	DefaultAlphaMin      = 0.001
	DefaultAlphaTarget   = 0.0
	DefaultVelocityDecay = 0.6
	// DefaultSeed seeds the jiggle generator.
	DefaultSeed = 1
)

// DefaultAlphaDecay cools alpha from 1 to DefaultAlphaMin in 300 ticks.
var DefaultAlphaDecay = 1 - math.Pow(DefaultAlphaMin, 1.0/300)

// Edge connects two node indices.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Schedule is the temperature schedule of a simulation.
type Schedule struct {
	Alpha         float64 `json:"alpha" toml:"alpha"`
	AlphaMin      float64 `json:"alpha_min" toml:"alpha_min"`
	AlphaDecay    float64 `json:"alpha_decay" toml:"alpha_decay"`
	AlphaTarget   float64 `json:"alpha_target" toml:"alpha_target"`
	VelocityDecay float64 `json:"velocity_decay" toml:"velocity_decay"`
}

// DefaultSchedule returns the standard cooling schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		Alpha:         DefaultAlpha,
		AlphaMin:      DefaultAlphaMin,
		AlphaDecay:    DefaultAlphaDecay,
		AlphaTarget:   DefaultAlphaTarget,
		VelocityDecay: DefaultVelocityDecay,
	}
}

// Kinetics is the per-node state of a simulation. Position and Velocity are
// indexed by dense node index and always have length Len().
type Kinetics[V vector.Vector[V]] struct {
	Schedule

	Position []V
	Velocity []V
	Edges    []Edge
	Rand     *vector.LCG

	fixation []V
	fixed    []bool
}

// New returns state for count nodes. init supplies initial positions; nil
// places nodes on the default phyllotaxis spiral. It panics if count is
// negative or an edge references an index outside [0, count).
func New[V vector.Vector[V]](count int, edges []Edge, s Schedule, seed uint32, init func(i int) V) *Kinetics[V] {
	if count < 0 {
		panic(fmt.Sprintf("kinetics: negative node count %d", count))
	}
	for i, e := range edges {
		if e.Source < 0 || e.Source >= count || e.Target < 0 || e.Target >= count {
			panic(fmt.Sprintf("kinetics: edge %d (%d->%d) out of range for %d nodes", i, e.Source, e.Target, count))
		}
	}
	if init == nil {
		init = func(i int) V { return vector.Phyllotaxis[V](i, vector.DefaultSpiralScale) }
	}

	k := &Kinetics[V]{
		Schedule: s,
		Position: make([]V, count),
		Velocity: make([]V, count),
		Edges:    edges,
		Rand:     vector.NewLCG(seed),
		fixation: make([]V, count),
		fixed:    make([]bool, count),
	}
	for i := range k.Position {
		k.Position[i] = init(i)
	}
	return k
}

// Len returns the node count.
func (k *Kinetics[V]) Len() int { return len(k.Position) }

// Fix pins node i at p. Its position is set immediately and after every tick.
func (k *Kinetics[V]) Fix(i int, p V) {
	k.fixation[i] = p
	k.fixed[i] = true
	k.Position[i] = p
}

// Unfix releases the pin on node i.
func (k *Kinetics[V]) Unfix(i int) {
	k.fixed[i] = false
	var zero V
	k.fixation[i] = zero
}

// Fixation returns the pin of node i and whether one is set.
func (k *Kinetics[V]) Fixation(i int) (V, bool) {
	return k.fixation[i], k.fixed[i]
}

// IsFixed reports whether node i is pinned.
func (k *Kinetics[V]) IsFixed(i int) bool { return k.fixed[i] }

// DecayAlpha relaxes alpha towards the target by the decay factor.
func (k *Kinetics[V]) DecayAlpha() {
	k.Alpha += (k.AlphaTarget - k.Alpha) * k.AlphaDecay
}

// ResetAlpha sets the temperature, reheating a cooled layout.
func (k *Kinetics[V]) ResetAlpha(alpha float64) {
	k.Alpha = alpha
}

// Integrate moves every node by its damped velocity. Pinned nodes are put
// back on their fixation and keep their velocity.
func (k *Kinetics[V]) Integrate() {
	for i := range k.Position {
		if k.fixed[i] {
			k.Position[i] = k.fixation[i]
			continue
		}
		k.Velocity[i] = k.Velocity[i].Scale(k.VelocityDecay)
		k.Position[i] = k.Position[i].Add(k.Velocity[i])
	}
}

// Predicted returns where node i would be after adding its current velocity.
func (k *Kinetics[V]) Predicted(i int) V {
	return k.Position[i].Add(k.Velocity[i])
}

// Jiggled returns v with degenerate components replaced from the state's
// generator.
func (k *Kinetics[V]) Jiggled(v V) V {
	return v.Jiggled(k.Rand)
}
