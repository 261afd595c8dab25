package kdtree

import (
	"fmt"
	"math"

	"github.com/matzehuels/forcetower/pkg/vector"
)

// Box is an axis-aligned box with Min <= Max on every axis.
type Box[V vector.Vector[V]] struct {
	Min, Max V
}

// NewBox returns the box spanned by two opposite corners in any order.
// It panics if the box has zero extent on any axis.
func NewBox[V vector.Vector[V]](a, b V) Box[V] {
	lo, hi, _ := vector.Bounds([]V{a, b})
	box := Box[V]{Min: lo, Max: hi}
	box.mustHaveVolume()
	return box
}

// Cube returns the smallest cube anchored at the minimum corner of points
// that contains all of them. A set of coincident points gets a unit cube.
// It panics on an empty slice or a non-finite point.
func Cube[V vector.Vector[V]](points []V) Box[V] {
	lo, hi, ok := vector.Bounds(points)
	if !ok {
		panic("kdtree: cube of empty point set")
	}
	if !lo.IsFinite() || !hi.IsFinite() {
		panic(fmt.Sprintf("kdtree: non-finite point in range %v..%v", lo, hi))
	}
	side := 0.0
	for k := 0; k < lo.Dims(); k++ {
		side = max(side, hi.At(k)-lo.At(k))
	}
	if side == 0 {
		side = 1
	}
	// lo+side may round below the largest coordinate.
	for {
		top := hi
		for k := 0; k < lo.Dims(); k++ {
			top = top.With(k, lo.At(k)+side)
		}
		if box := (Box[V]{Min: lo, Max: top}); box.Contains(hi) {
			return box
		}
		side = math.Nextafter(side, math.Inf(1))
	}
}

func (b Box[V]) mustHaveVolume() {
	for k := 0; k < b.Min.Dims(); k++ {
		if !(b.Max.At(k) > b.Min.At(k)) {
			panic(fmt.Sprintf("kdtree: degenerate box %v..%v on axis %d", b.Min, b.Max, k))
		}
	}
}

// Center returns the midpoint of the box.
func (b Box[V]) Center() V {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Width returns the extent of the box along the first axis. Tree boxes are
// cubes, so this is the side length.
func (b Box[V]) Width() float64 {
	return b.Max.At(0) - b.Min.At(0)
}

// Contains reports whether p lies inside the box, boundaries included.
func (b Box[V]) Contains(p V) bool {
	for k := 0; k < p.Dims(); k++ {
		x := p.At(k)
		if x < b.Min.At(k) || x > b.Max.At(k) {
			return false
		}
	}
	return true
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box[V]) ContainsBox(o Box[V]) bool {
	return b.Contains(o.Min) && b.Contains(o.Max)
}

// Child returns the sub-box in the given orthant. Bit k of orthant selects
// the upper half along axis k.
func (b Box[V]) Child(orthant int) Box[V] {
	c := b.Center()
	return Box[V]{
		Min: b.Min.Blend(orthant, c),
		Max: c.Blend(orthant, b.Max),
	}
}

// Distance2 returns the squared distance from p to the nearest point of the
// box, zero when p is inside.
func (b Box[V]) Distance2(p V) float64 {
	var d2 float64
	for k := 0; k < p.Dims(); k++ {
		x := p.At(k)
		if lo := b.Min.At(k); x < lo {
			d2 += (lo - x) * (lo - x)
		} else if hi := b.Max.At(k); x > hi {
			d2 += (x - hi) * (x - hi)
		}
	}
	return d2
}

// grow returns the box doubled towards p: on axes where p lies below Min the
// box extends downwards, elsewhere upwards. The old box is the child of the
// result at orthant below.
func (b Box[V]) grow(p V) (grown Box[V], below int) {
	below = p.Below(b.Min)
	w := b.Max.Sub(b.Min)
	grown = Box[V]{
		Min: b.Min.Blend(below, b.Min.Sub(w)),
		Max: b.Max.Add(w).Blend(below, b.Max),
	}
	return grown, below
}
