// Package force defines the force contract of the layout engine and the
// concrete forces built on it.
//
// A [Force] is a plain configuration value. Binding it to a
// [kinetics.Kinetics] resolves per-node parameters once and returns a
// [Bound] whose Apply method runs every tick:
//
//	f := force.Compose[vector.Vec2](
//	    force.NewManyBody[vector.Vec2](),
//	    force.NewLink[vector.Vec2](),
//	    force.NewCenter(vector.Vec2{}),
//	)
//	b := f.Bind(k)
//	b.Apply()
//
// Forces accumulate into velocities. Composition applies forces in order, so
// later forces observe the velocity contributions of earlier ones within the
// same tick.
//
// # Forces
//
//   - [Center] translates the layout so its centroid moves towards a point.
//   - [ManyBody] is n-body repulsion or attraction approximated with a
//     Barnes-Hut tree whose nodes carry a [MassCentroid] delegate.
//   - [Link] is a spring per edge with degree-weighted bias.
//   - [Collide] separates overlapping disks, pruning with a [MaxRadius] tree.
//   - [Position] pulls each node along one axis towards a target coordinate.
//   - [Radial] pulls each node towards a circle or sphere around a center.
//
// Binding panics on programmer errors such as a nil kinetic state, an axis
// outside the vector's dimension or an edge referencing a missing node.
package force
