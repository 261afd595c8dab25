// Package graph provides serialization types for input graphs and computed
// layouts.
//
// This package defines the canonical wire format of forcetower, used for
// JSON files, cache entries and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the boundary between files and the simulation core:
//
//   - [Graph]: node-link input with optional per-node physics attributes
//   - [Index]: dense integer indices for node IDs, as the simulation uses
//   - [Layout]: positions after a run, plus the run parameters
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "a", "mass": 2},
//	    {"id": "b", "radius": 8, "fixed": [0, 0]}
//	  ],
//	  "edges": [{"from": "a", "to": "b", "length": 40}]
//	}
//
// Optional node attributes:
//
//	label    Display label (defaults to the ID)
//	group    Free-form group name, used for coloring
//	mass     Many-body weight (default 1)
//	radius   Collision radius (default 5)
//	fixed    Pinned coordinates, 2 or 3 numbers
//	meta     Arbitrary key-value data, carried through unchanged
//
// Optional edge attributes:
//
//	length    Rest length of the link (default 30)
//	strength  Stiffness of the link (default degree-weighted)
//
// An explicit 0 is kept: "strength": 0 leaves the edge slack.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")   // File → Graph
//	idx, err := g.Index()                       // Validate, map IDs
//	graph.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//
// # Layout Serialization
//
//	l, _ := graph.ReadLayoutFile("graph.layout.json")
//	minX, minY, maxX, maxY := l.Bounds()
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
