package vector

import "math"

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32

	// JiggleScale bounds the magnitude of a jiggled component.
	JiggleScale = 1e-5
)

// LCG is a linear congruential generator with modulus 2^32 and two
// independent states, one per precision. It is not safe for concurrent use;
// each simulation owns one.
type LCG struct {
	s64 uint32
	s32 uint32
}

// NewLCG returns a generator whose streams both start at seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{s64: seed, s32: seed}
}

// Float64 advances the double precision stream and returns a value in [0, 1).
func (r *LCG) Float64() float64 {
	r.s64 = lcgMultiplier*r.s64 + lcgIncrement
	return float64(r.s64) / lcgModulus
}

// Float32 advances the single precision stream and returns a value in [0, 1).
func (r *LCG) Float32() float32 {
	r.s32 = lcgMultiplier*r.s32 + lcgIncrement
	return float32(float64(r.s32) / lcgModulus)
}

// Jiggle returns x unless it is zero or NaN, in which case it returns a
// small value in [-JiggleScale/2, JiggleScale/2).
func (r *LCG) Jiggle(x float64) float64 {
	if x == 0 || math.IsNaN(x) {
		return (r.Float64() - 0.5) * JiggleScale
	}
	return x
}

// Jiggle32 is Jiggle on the single precision stream.
func (r *LCG) Jiggle32(x float32) float32 {
	if x == 0 || math.IsNaN(float64(x)) {
		return (r.Float32() - 0.5) * JiggleScale
	}
	return x
}
