package vector

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point in the plane.
type Vec2 r2.Vec

var _ Vector[Vec2] = Vec2{}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2(r2.Add(r2.Vec(v), r2.Vec(o))) }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2(r2.Sub(r2.Vec(v), r2.Vec(o))) }
func (v Vec2) Scale(f float64) Vec2  { return Vec2(r2.Scale(f, r2.Vec(v))) }
func (v Vec2) Norm2() float64        { return r2.Norm2(r2.Vec(v)) }
func (Vec2) Dims() int               { return 2 }
func (v Vec2) String() string        { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }
func (v Vec2) IsFinite() bool        { return finite(v.X) && finite(v.Y) }
func (v Vec2) Components() []float64 { return []float64{v.X, v.Y} }

func (v Vec2) At(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic(fmt.Sprintf("vector: axis %d out of range for Vec2", axis))
}

func (v Vec2) With(axis int, x float64) Vec2 {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		panic(fmt.Sprintf("vector: axis %d out of range for Vec2", axis))
	}
	return v
}

func (v Vec2) Orthant(c Vec2) int {
	var o int
	if v.X >= c.X {
		o |= 1
	}
	if v.Y >= c.Y {
		o |= 2
	}
	return o
}

func (v Vec2) Blend(mask int, o Vec2) Vec2 {
	if mask&1 != 0 {
		v.X = o.X
	}
	if mask&2 != 0 {
		v.Y = o.Y
	}
	return v
}

func (v Vec2) Below(o Vec2) int {
	var m int
	if v.X < o.X {
		m |= 1
	}
	if v.Y < o.Y {
		m |= 2
	}
	return m
}

// Jiggled returns v with zero or NaN components replaced by jitter, X first.
func (v Vec2) Jiggled(r *LCG) Vec2 {
	v.X = r.Jiggle(v.X)
	v.Y = r.Jiggle(v.Y)
	return v
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
