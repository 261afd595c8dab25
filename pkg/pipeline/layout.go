package pipeline

import (
	"context"
	"math/rand/v2"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/simulation"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// =============================================================================
// Simulation Assembly
// =============================================================================

// Build validates g and assembles a simulation for it: nodes in file order,
// the configured forces composed in order, and fixed nodes pinned.
// opts is defaulted and validated in place.
func Build[V vector.Vector[V]](g graph.Graph, opts *Options) (*simulation.Simulation[V], *graph.Index, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, nil, err
	}
	if dims := vector.Dims[V](); dims != opts.Dimensions {
		return nil, nil, errors.New(errors.ErrCodeInternal, "building %d-dimensional simulation for %d-dimensional options", dims, opts.Dimensions)
	}
	idx, err := g.Index(opts.Dimensions)
	if err != nil {
		return nil, nil, err
	}

	simOpts := []simulation.Option{simulation.WithSchedule(opts.Schedule)}
	if opts.Seed != 0 {
		simOpts = append(simOpts, simulation.WithInitialPosition(scatter[V](opts.Seed, opts.Spread)))
	}
	sim, err := simulation.New[V](idx.Len(), idx.Edges(g), buildForces[V](opts.Forces, g, idx), simOpts...)
	if err != nil {
		return nil, nil, err
	}
	for i, n := range g.Nodes {
		if n.Fixed != nil {
			sim.Fix(i, point[V](n.Fixed...))
		}
	}
	return sim, idx, nil
}

// scatter returns uniform random positions in [-spread, spread]^D drawn from
// a PCG stream, so the same seed always yields the same start.
func scatter[V vector.Vector[V]](seed uint64, spread float64) func(int) V {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	return func(int) V {
		var p V
		for axis := 0; axis < p.Dims(); axis++ {
			p = p.With(axis, (rng.Float64()*2-1)*spread)
		}
		return p
	}
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs a simulation for g and exports the result.
// Cancelling ctx stops the run between ticks and returns ctx's error.
func GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, Stats, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, Stats{}, err
	}
	if opts.Dimensions == 3 {
		return runLayout[vector.Vec3](ctx, g, opts)
	}
	return runLayout[vector.Vec2](ctx, g, opts)
}

func runLayout[V vector.Vector[V]](ctx context.Context, g graph.Graph, opts Options) (graph.Layout, Stats, error) {
	stats := graphStats(g)
	sim, _, err := Build[V](g, &opts)
	if err != nil {
		return graph.Layout{}, stats, err
	}
	opts.Logger.Debug("simulation ready", "nodes", stats.NodeCount, "edges", stats.EdgeCount, "options", opts.Summary())

	ticks, err := sim.Run(ctx, opts.Ticks)
	stats.Ticks = ticks
	if err != nil {
		return graph.Layout{}, stats, err
	}
	opts.Logger.Debug("simulation finished", "ticks", ticks, "alpha", sim.Alpha(), "settled", sim.Settled())
	return Export(g, sim, opts), stats, nil
}

// Export converts the current simulation state to a Layout. sim must have
// been built from g.
func Export[V vector.Vector[V]](g graph.Graph, sim *simulation.Simulation[V], opts Options) graph.Layout {
	l := graph.Layout{
		Dimensions: vector.Dims[V](),
		Ticks:      sim.Ticks(),
		Alpha:      sim.Alpha(),
		Seed:       opts.Seed,
		Nodes:      make([]graph.Placement, len(g.Nodes)),
		Edges:      g.Edges,
	}
	for i, p := range sim.Positions() {
		n := &g.Nodes[i]
		pl := graph.Placement{
			ID:     n.ID,
			Label:  n.Label,
			Group:  n.Group,
			X:      p.At(0),
			Y:      p.At(1),
			Radius: n.EffectiveRadius(),
			Fixed:  sim.Kinetics().IsFixed(i),
		}
		if l.Dimensions > 2 {
			pl.Z = p.At(2)
		}
		l.Nodes[i] = pl
	}
	return l
}
