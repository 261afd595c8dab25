package kdtree

import (
	"fmt"

	"github.com/matzehuels/forcetower/pkg/vector"
)

// ClusterDistance2 is the squared distance below which two points are
// treated as coincident and share a leaf.
const ClusterDistance2 = 1e-10

const none = -1

// Node is a region of a Tree. A node is either internal with 2^D children,
// or a leaf holding zero or more clustered point indices.
type Node[V vector.Vector[V], D Delegate[V, D]] struct {
	Box      Box[V]
	Delegate D

	first  int // index of the first child, none for leaves
	bucket int // bucket holding the clustered indices, none when empty
	point  V   // representative position of the cluster
}

// IsLeaf reports whether the node has no children.
func (n *Node[V, D]) IsLeaf() bool { return n.first == none }

// IsEmpty reports whether the node is a leaf without points.
func (n *Node[V, D]) IsEmpty() bool { return n.first == none && n.bucket == none }

// Point returns the position shared by the leaf's clustered points.
// The result is meaningless for internal or empty nodes.
func (n *Node[V, D]) Point() V { return n.point }

// Tree is a Barnes-Hut tree over points of type V with per-node delegates
// of type D. The zero value is not usable; call New or Build.
type Tree[V vector.Vector[V], D Delegate[V, D]] struct {
	nodes   []Node[V, D]
	buckets [][]int
	used    int // buckets in use
	proto   D
	fanout  int
	points  int
}

// New returns an empty tree covering box. Empty delegates are spawned from
// proto. It panics if box has zero extent on any axis.
func New[V vector.Vector[V], D Delegate[V, D]](box Box[V], proto D) *Tree[V, D] {
	return NewWithCapacity(box, proto, 0)
}

// NewWithCapacity is New with node storage pre-sized for n points.
func NewWithCapacity[V vector.Vector[V], D Delegate[V, D]](box Box[V], proto D, n int) *Tree[V, D] {
	box.mustHaveVolume()
	fanout := 1 << box.Min.Dims()
	t := &Tree[V, D]{
		nodes:  make([]Node[V, D], 0, n*fanout+1),
		proto:  proto,
		fanout: fanout,
	}
	t.nodes = append(t.nodes, t.leaf(box, proto.Spawn()))
	return t
}

// Build returns a tree over points, inserted in index order, whose initial
// box is the Cube of the points.
func Build[V vector.Vector[V], D Delegate[V, D]](points []V, proto D) *Tree[V, D] {
	t := NewWithCapacity(Cube(points), proto, len(points))
	for i, p := range points {
		t.Add(i, p)
	}
	return t
}

// Rebuild discards the content of t and inserts points in index order, reusing
// the tree's storage.
func (t *Tree[V, D]) Rebuild(points []V) {
	t.Reset(Cube(points))
	for i, p := range points {
		t.Add(i, p)
	}
}

// Reset empties the tree and sets the root box. Storage is retained.
func (t *Tree[V, D]) Reset(box Box[V]) {
	box.mustHaveVolume()
	for i := 0; i < t.used; i++ {
		t.buckets[i] = t.buckets[i][:0]
	}
	t.used = 0
	t.points = 0
	t.nodes = append(t.nodes[:0], t.leaf(box, t.proto.Spawn()))
}

// Root returns the root node.
func (t *Tree[V, D]) Root() *Node[V, D] { return &t.nodes[0] }

// Len returns the number of points added since the last reset.
func (t *Tree[V, D]) Len() int { return t.points }

// Nodes returns the number of nodes in the arena.
func (t *Tree[V, D]) Nodes() int { return len(t.nodes) }

// Indices returns the point indices clustered in leaf n, in insertion order.
// The slice aliases tree storage and is valid until the next Add or Reset.
func (t *Tree[V, D]) Indices(n *Node[V, D]) []int {
	if n.bucket == none {
		return nil
	}
	return t.buckets[n.bucket]
}

// Leaves returns the number of occupied leaves.
func (t *Tree[V, D]) Leaves() int { return t.used }

// Add inserts the point with the given index at position p. The box is
// grown with Cover first if needed. Every node on the path to the resting
// leaf has its delegate notified once. It panics if p is not finite.
func (t *Tree[V, D]) Add(index int, p V) {
	t.Cover(p)
	t.points++

	cur := 0
	for {
		n := &t.nodes[cur]
		n.Delegate = n.Delegate.Add(index, p)

		switch {
		case n.first != none:
			cur = n.first + p.Orthant(n.Box.Center())
		case n.bucket == none:
			n.bucket = t.newBucket()
			n.point = p
			t.buckets[n.bucket] = append(t.buckets[n.bucket], index)
			return
		case vector.Distance2(n.point, p) <= ClusterDistance2:
			t.buckets[n.bucket] = append(t.buckets[n.bucket], index)
			return
		default:
			t.split(cur)
			n = &t.nodes[cur]
			cur = n.first + p.Orthant(n.Box.Center())
		}
	}
}

// Cover doubles the root box towards p until it contains p. When the root
// holds points, it is moved into a child slot of a new root that keeps the
// old root's delegate. It panics if p is not finite.
func (t *Tree[V, D]) Cover(p V) {
	if !p.IsFinite() {
		panic(fmt.Sprintf("kdtree: cannot cover non-finite point %v", p))
	}
	for !t.nodes[0].Box.Contains(p) {
		grown, below := t.nodes[0].Box.grow(p)
		if t.nodes[0].IsEmpty() {
			t.nodes[0].Box = grown
			continue
		}

		old := t.nodes[0]
		first := len(t.nodes)
		for k := 0; k < t.fanout; k++ {
			if k == below {
				t.nodes = append(t.nodes, old)
				continue
			}
			t.nodes = append(t.nodes, t.leaf(grown.Child(k), old.Delegate.Spawn()))
		}
		t.nodes[0] = Node[V, D]{Box: grown, Delegate: old.Delegate, first: first, bucket: none}
	}
}

// Visit walks the tree in pre-order. fn is called on every reached node and
// returns whether to descend into its children.
func (t *Tree[V, D]) Visit(fn func(n *Node[V, D]) bool) {
	t.visit(0, fn)
}

func (t *Tree[V, D]) visit(i int, fn func(n *Node[V, D]) bool) {
	n := &t.nodes[i]
	if !fn(n) || n.first == none {
		return
	}
	for k := 0; k < t.fanout; k++ {
		t.visit(n.first+k, fn)
	}
}

// split turns leaf i into an internal node and moves its cluster into the
// child containing the representative point.
func (t *Tree[V, D]) split(i int) {
	first := len(t.nodes)
	parent := t.nodes[i]
	for k := 0; k < t.fanout; k++ {
		t.nodes = append(t.nodes, t.leaf(parent.Box.Child(k), parent.Delegate.Spawn()))
	}

	child := &t.nodes[first+parent.point.Orthant(parent.Box.Center())]
	child.bucket = parent.bucket
	child.point = parent.point
	for _, idx := range t.buckets[parent.bucket] {
		child.Delegate = child.Delegate.Add(idx, parent.point)
	}

	n := &t.nodes[i]
	n.first = first
	n.bucket = none
}

func (t *Tree[V, D]) leaf(box Box[V], d D) Node[V, D] {
	return Node[V, D]{Box: box, Delegate: d, first: none, bucket: none}
}

func (t *Tree[V, D]) newBucket() int {
	if t.used == len(t.buckets) {
		t.buckets = append(t.buckets, nil)
	}
	t.used++
	return t.used - 1
}
