package kdtree

import "github.com/matzehuels/forcetower/pkg/vector"

// Delegate accumulates a quantity over the points inserted below a node.
// Implementations are values: each method returns the updated delegate and
// the tree stores it back into the node. D is the implementing type.
type Delegate[V vector.Vector[V], D any] interface {
	// Add folds the point with the given index at position at into the aggregate.
	Add(index int, at V) D
	// Remove reverses Add for the same index and position.
	Remove(index int, at V) D
	// Spawn returns an empty delegate sharing the receiver's providers.
	Spawn() D
}

// Count is a Delegate that only counts points.
type Count[V vector.Vector[V]] struct {
	N int
}

func (c Count[V]) Add(int, V) Count[V]    { return Count[V]{N: c.N + 1} }
func (c Count[V]) Remove(int, V) Count[V] { return Count[V]{N: c.N - 1} }
func (Count[V]) Spawn() Count[V]          { return Count[V]{} }
