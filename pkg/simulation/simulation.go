// Package simulation drives a force-directed layout.
//
// A Simulation owns the kinetic state of one graph and one composed force.
// Each tick relaxes the temperature, applies the force and integrates
// velocities into positions:
//
//	sim, err := simulation.New[vector.Vec2](n, edges, force.Compose[vector.Vec2](
//	    force.NewManyBody[vector.Vec2](),
//	    force.NewLink[vector.Vec2](),
//	    force.NewCenter(vector.Vec2{}),
//	))
//	if err != nil {
//	    return err
//	}
//	sim.Tick(300)
//	positions := sim.Positions()
//
// Simulations are not safe for concurrent use. Independent simulations share
// no state and may run on separate goroutines.
package simulation

import (
	"context"
	"math"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/force"
	"github.com/matzehuels/forcetower/pkg/kdtree"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// Simulation is a running layout over points of type V.
type Simulation[V vector.Vector[V]] struct {
	k     *kinetics.Kinetics[V]
	force force.Bound
	ticks int

	index *kdtree.Tree[V, kdtree.Count[V]]
}

// New assembles a simulation of nodeCount nodes. The force, which may be nil,
// is bound immediately. Invalid counts, edges and schedules are reported as
// *errors.Error values.
func New[V vector.Vector[V]](nodeCount int, edges []kinetics.Edge, f force.Force[V], opts ...Option) (*Simulation[V], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if nodeCount < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node count must be non-negative, got %d", nodeCount)
	}
	for i, e := range edges {
		if e.Source < 0 || e.Source >= nodeCount || e.Target < 0 || e.Target >= nodeCount {
			return nil, errors.New(errors.ErrCodeInvalidEdge, "edge %d (%d->%d) out of range for %d nodes", i, e.Source, e.Target, nodeCount)
		}
	}
	if err := validateSchedule(cfg.schedule); err != nil {
		return nil, err
	}

	var init func(int) V
	if cfg.init != nil {
		fn, ok := cfg.init.(func(int) V)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "initial position function has type %T", cfg.init)
		}
		init = fn
	}

	k := kinetics.New(nodeCount, edges, cfg.schedule, cfg.seed, init)
	for i, p := range k.Position {
		if !p.IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "initial position of node %d is not finite: %v", i, p)
		}
	}

	s := &Simulation[V]{k: k}
	if f != nil {
		s.force = f.Bind(k)
	}
	return s, nil
}

func validateSchedule(s kinetics.Schedule) error {
	for _, check := range []struct {
		name string
		x    float64
	}{
		{"alpha", s.Alpha},
		{"alpha min", s.AlphaMin},
		{"alpha target", s.AlphaTarget},
	} {
		if err := errors.ValidateFinite(check.name, check.x); err != nil {
			return err
		}
	}
	if err := errors.ValidateUnit("alpha decay", s.AlphaDecay); err != nil {
		return err
	}
	return errors.ValidateUnit("velocity decay", s.VelocityDecay)
}

// Step advances the simulation by one tick.
func (s *Simulation[V]) Step() {
	s.k.DecayAlpha()
	if s.force != nil {
		s.force.Apply()
	}
	s.k.Integrate()
	s.ticks++
}

// Tick advances the simulation by n ticks.
func (s *Simulation[V]) Tick(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// Run ticks until the simulation settles, maxTicks ticks have run, or ctx is
// done. A tick is never interrupted; ctx is checked between ticks. It returns
// the number of ticks run.
func (s *Simulation[V]) Run(ctx context.Context, maxTicks int) (int, error) {
	n := 0
	for n < maxTicks && !s.Settled() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		s.Step()
		n++
	}
	return n, nil
}

// Len returns the node count.
func (s *Simulation[V]) Len() int { return s.k.Len() }

// Positions returns a copy of the current node positions.
func (s *Simulation[V]) Positions() []V {
	out := make([]V, len(s.k.Position))
	copy(out, s.k.Position)
	return out
}

// Position returns the current position of node i.
func (s *Simulation[V]) Position(i int) V { return s.k.Position[i] }

// Velocity returns the current velocity of node i.
func (s *Simulation[V]) Velocity(i int) V { return s.k.Velocity[i] }

// Alpha returns the current temperature.
func (s *Simulation[V]) Alpha() float64 { return s.k.Alpha }

// ResetAlpha reheats the simulation without rebuilding its state.
func (s *Simulation[V]) ResetAlpha(alpha float64) { s.k.ResetAlpha(alpha) }

// Settled reports whether alpha has cooled below alpha min.
func (s *Simulation[V]) Settled() bool { return s.k.Alpha < s.k.AlphaMin }

// Ticks returns the number of ticks run.
func (s *Simulation[V]) Ticks() int { return s.ticks }

// Schedule returns the current temperature schedule.
func (s *Simulation[V]) Schedule() kinetics.Schedule { return s.k.Schedule }

// Fix pins node i at p.
func (s *Simulation[V]) Fix(i int, p V) { s.k.Fix(i, p) }

// Unfix releases the pin on node i.
func (s *Simulation[V]) Unfix(i int) { s.k.Unfix(i) }

// Kinetics exposes the underlying state for forces bound after construction.
func (s *Simulation[V]) Kinetics() *kinetics.Kinetics[V] { return s.k }

// Find returns the node closest to p within radius, or false if there is
// none. A radius <= 0 means unlimited.
func (s *Simulation[V]) Find(p V, radius float64) (int, bool) {
	if s.k.Len() == 0 {
		return 0, false
	}
	if s.index == nil {
		s.index = kdtree.Build(s.k.Position, kdtree.Count[V]{})
	} else {
		s.index.Rebuild(s.k.Position)
	}

	best, bestD2 := -1, math.Inf(1)
	if radius > 0 {
		bestD2 = radius * radius
	}
	s.index.Visit(func(n *kdtree.Node[V, kdtree.Count[V]]) bool {
		if n.Delegate.N == 0 || n.Box.Distance2(p) > bestD2 {
			return false
		}
		for _, i := range s.index.Indices(n) {
			d2 := vector.Distance2(s.k.Position[i], p)
			if d2 < bestD2 || (d2 == bestD2 && (best < 0 || i < best)) {
				best, bestD2 = i, d2
			}
		}
		return true
	})
	return best, best >= 0
}
