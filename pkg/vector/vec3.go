package vector

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point in space.
type Vec3 r3.Vec

var _ Vector[Vec3] = Vec3{}

func (v Vec3) Add(o Vec3) Vec3       { return Vec3(r3.Add(r3.Vec(v), r3.Vec(o))) }
func (v Vec3) Sub(o Vec3) Vec3       { return Vec3(r3.Sub(r3.Vec(v), r3.Vec(o))) }
func (v Vec3) Scale(f float64) Vec3  { return Vec3(r3.Scale(f, r3.Vec(v))) }
func (v Vec3) Norm2() float64        { return r3.Norm2(r3.Vec(v)) }
func (Vec3) Dims() int               { return 3 }
func (v Vec3) String() string        { return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z) }
func (v Vec3) IsFinite() bool        { return finite(v.X) && finite(v.Y) && finite(v.Z) }
func (v Vec3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }

func (v Vec3) At(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("vector: axis %d out of range for Vec3", axis))
}

func (v Vec3) With(axis int, x float64) Vec3 {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	default:
		panic(fmt.Sprintf("vector: axis %d out of range for Vec3", axis))
	}
	return v
}

func (v Vec3) Orthant(c Vec3) int {
	var o int
	if v.X >= c.X {
		o |= 1
	}
	if v.Y >= c.Y {
		o |= 2
	}
	if v.Z >= c.Z {
		o |= 4
	}
	return o
}

func (v Vec3) Blend(mask int, o Vec3) Vec3 {
	if mask&1 != 0 {
		v.X = o.X
	}
	if mask&2 != 0 {
		v.Y = o.Y
	}
	if mask&4 != 0 {
		v.Z = o.Z
	}
	return v
}

func (v Vec3) Below(o Vec3) int {
	var m int
	if v.X < o.X {
		m |= 1
	}
	if v.Y < o.Y {
		m |= 2
	}
	if v.Z < o.Z {
		m |= 4
	}
	return m
}

// Jiggled returns v with zero or NaN components replaced by jitter, X first.
func (v Vec3) Jiggled(r *LCG) Vec3 {
	v.X = r.Jiggle(v.X)
	v.Y = r.Jiggle(v.Y)
	v.Z = r.Jiggle(v.Z)
	return v
}
