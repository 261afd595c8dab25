// Package pkg provides the core libraries for Forcetower force-directed graph layout.
//
// # Overview
//
// Forcetower places the nodes of a graph by simulating a small physical
// system: nodes repel each other, edges act as springs, and optional forces
// pull nodes toward a center, an axis or a ring. The simulation cools over a
// fixed schedule until it settles. The pkg directory is organized into three
// main areas:
//
//  1. Engine - [vector], [kdtree], [kinetics], [force], [simulation]
//  2. Orchestration - [graph], [pipeline], [config]
//  3. Infrastructure - [cache], [metrics], [render], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow through Forcetower:
//
//	graph.json
//	     ↓
//	[graph] package (decode + validate, dense node index)
//	     ↓
//	[pipeline] package (forces from [config], simulation from [simulation])
//	     ↓
//	[simulation] ticks: [force] accumulators over [kinetics] state,
//	                    many-body via the [kdtree] Barnes-Hut tree
//	     ↓
//	layout.json → [render] (SVG, DOT, PNG, PDF)
//
// # Quick Start
//
// Running a layout from Go:
//
//	import (
//	    "github.com/matzehuels/forcetower/pkg/force"
//	    "github.com/matzehuels/forcetower/pkg/kinetics"
//	    "github.com/matzehuels/forcetower/pkg/simulation"
//	    "github.com/matzehuels/forcetower/pkg/vector"
//	)
//
//	edges := []kinetics.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}}
//	link := force.NewLink[vector.Vec2]()
//	link.Edges = edges
//	f := force.Compose[vector.Vec2](force.NewManyBody[vector.Vec2](), link, force.NewCenter(vector.Vec2{}))
//
//	sim, err := simulation.New[vector.Vec2](3, edges, f)
//	if err != nil {
//	    return err
//	}
//	if _, err := sim.Run(ctx, 300); err != nil {
//	    return err
//	}
//	positions := sim.Positions()
//
// Or through the pipeline, which adds graph validation, configuration,
// caching and export:
//
//	layout, stats, err := pipeline.GenerateLayout(ctx, g, pipeline.Options{Seed: 7})
//
// # Dimensions
//
// Every engine package is generic over [vector.Vector]: [vector.Vec2] gives a
// quadtree-backed 2D layout, [vector.Vec3] an octree-backed 3D one, with no
// duplicated code between them.
//
// [vector]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/vector
// [kdtree]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/kdtree
// [kinetics]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/kinetics
// [force]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/force
// [simulation]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/simulation
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/cache
// [metrics]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/metrics
// [render]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/forcetower/pkg/buildinfo
package pkg
