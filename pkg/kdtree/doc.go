// Package kdtree implements the adaptive spatial partitioning tree used for
// Barnes-Hut style approximation: a quadtree in two dimensions and an octree
// in three, written once against [vector.Vector].
//
// # Storage
//
// Nodes live in a flat arena addressed by index. The root is always slot 0
// and the 2^D children of an internal node occupy a contiguous range. Points
// that fall within [ClusterDistance2] of a leaf's representative position
// share the leaf; their indices are kept in a bucket vector keyed by leaf.
// [Tree.Reset] truncates both the arena and the buckets while keeping their
// capacity, so a tree rebuilt every tick does not allocate in steady state.
//
// # Delegates
//
// Every node carries a [Delegate], a value that accumulates a per-region
// quantity such as total mass or maximum radius. [Tree.Add] notifies each
// node on the path from the root to the resting leaf exactly once. When a
// leaf subdivides, the child receiving the old content gets a fresh
// delegate from [Delegate.Spawn] and is told about each moved index.
// Aggregates are never recomputed from scratch.
//
// # Traversal
//
// [Tree.Visit] walks the tree in pre-order. The callback decides whether to
// descend into an internal node's children, which are visited in slot order
// 0 through 2^D-1.
package kdtree
