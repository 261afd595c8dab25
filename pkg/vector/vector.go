package vector

// Vector is the set of operations the layout engine needs from a point type.
// V is the implementing type itself, so methods return concrete values
// without boxing.
type Vector[V any] interface {
	Add(V) V
	Sub(V) V
	Scale(f float64) V
	// Norm2 returns the squared Euclidean length.
	Norm2() float64
	// Dims returns the number of axes. It does not depend on the receiver.
	Dims() int
	At(axis int) float64
	With(axis int, x float64) V
	// Orthant returns the child slot of the point relative to center:
	// bit k is set when component k is >= center's.
	Orthant(center V) int
	// Blend takes other's component on every axis whose bit is set in mask
	// and keeps the receiver's elsewhere.
	Blend(mask int, other V) V
	// Below returns the mask of axes on which the receiver is < other.
	Below(other V) int
	Jiggled(r *LCG) V
	IsFinite() bool
}

// Distance2 returns the squared distance between a and b.
func Distance2[V Vector[V]](a, b V) float64 {
	return a.Sub(b).Norm2()
}

// Mean returns the centroid of points, or the zero vector for an empty slice.
func Mean[V Vector[V]](points []V) V {
	var sum V
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Lerp interpolates between a (t = 0) and b (t = 1).
func Lerp[V Vector[V]](a, b V, t float64) V {
	return a.Add(b.Sub(a).Scale(t))
}

// Dims returns the dimension of V.
func Dims[V Vector[V]]() int {
	var zero V
	return zero.Dims()
}

// Bounds returns the componentwise minimum and maximum of points.
// ok is false for an empty slice.
func Bounds[V Vector[V]](points []V) (lo, hi V, ok bool) {
	if len(points) == 0 {
		return lo, hi, false
	}
	lo, hi = points[0], points[0]
	d := lo.Dims()
	for _, p := range points[1:] {
		for k := 0; k < d; k++ {
			x := p.At(k)
			if x < lo.At(k) {
				lo = lo.With(k, x)
			}
			if x > hi.At(k) {
				hi = hi.With(k, x)
			}
		}
	}
	return lo, hi, true
}
