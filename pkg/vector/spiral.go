package vector

import "math"

var (
	goldenAngle = math.Pi * (3 - math.Sqrt(5))
	yawAngle    = math.Pi * 20 / (9 + math.Sqrt(221))
)

// DefaultSpiralScale is the radius unit of the default initial placement.
const DefaultSpiralScale = 10

// Phyllotaxis returns the i-th point of a sunflower spiral with the given
// radius unit. Successive points are spread evenly over a disk in two
// dimensions and over a ball in three.
func Phyllotaxis[V Vector[V]](i int, scale float64) V {
	var p V
	fi := float64(i)
	roll := fi * goldenAngle
	if p.Dims() < 3 {
		r := scale * math.Sqrt(0.5+fi)
		return p.With(0, r*math.Cos(roll)).With(1, r*math.Sin(roll))
	}
	r := scale * math.Cbrt(0.5+fi)
	yaw := fi * yawAngle
	return p.
		With(0, r*math.Cos(roll)).
		With(1, r*math.Sin(roll)*math.Cos(yaw)).
		With(2, r*math.Sin(roll)*math.Sin(yaw))
}
