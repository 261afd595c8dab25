// Package vector provides the fixed-dimension points the layout engine
// operates on, together with the deterministic generator used to jiggle
// degenerate force vectors.
//
// # Points
//
// [Vec2] and [Vec3] are value types built on gonum's spatial r2 and r3
// vectors. Both satisfy [Vector], the constraint the generic tree, kinetic
// state and forces are written against:
//
//	var p vector.Vec2 = vector.Vec2{X: 1, Y: 2}
//	q := p.Add(vector.Vec2{X: 3}).Scale(0.5)
//
// Axis-indexed access ([Vector.At], [Vector.With]) and the orthant bit masks
// ([Vector.Orthant], [Vector.Blend], [Vector.Below]) let dimension-agnostic
// code subdivide boxes without knowing the concrete type: bit k of a mask
// refers to axis k.
//
// # Jiggle
//
// Force formulas divide by distances. When two nodes coincide the distance
// is zero, so every vector used as a denominator is first passed through
// [Vector.Jiggled], which replaces exact zero or NaN components with a tiny
// value drawn from an [LCG]. The generator is owned by a simulation, never
// global, so two simulations with the same seed produce identical
// trajectories.
//
// # Initial placement
//
// [Phyllotaxis] places node i on a sunflower spiral. It is the default
// initial position of a simulation.
package vector
