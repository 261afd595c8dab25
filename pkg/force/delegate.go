package force

import (
	"github.com/matzehuels/forcetower/pkg/kdtree"
	"github.com/matzehuels/forcetower/pkg/vector"
)

// MassCentroid accumulates the point count, total mass and mass-weighted
// position sum of a tree region.
type MassCentroid[V vector.Vector[V]] struct {
	Count    int
	Mass     float64
	Weighted V

	masses []float64
}

var _ kdtree.Delegate[vector.Vec2, MassCentroid[vector.Vec2]] = MassCentroid[vector.Vec2]{}

// NewMassCentroid returns an empty delegate reading node masses from masses.
func NewMassCentroid[V vector.Vector[V]](masses []float64) MassCentroid[V] {
	return MassCentroid[V]{masses: masses}
}

func (m MassCentroid[V]) Add(i int, at V) MassCentroid[V] {
	w := m.masses[i]
	m.Count++
	m.Mass += w
	m.Weighted = m.Weighted.Add(at.Scale(w))
	return m
}

func (m MassCentroid[V]) Remove(i int, at V) MassCentroid[V] {
	w := m.masses[i]
	m.Count--
	m.Mass -= w
	m.Weighted = m.Weighted.Sub(at.Scale(w))
	if m.Count == 0 {
		m.Mass = 0
		var zero V
		m.Weighted = zero
	}
	return m
}

func (m MassCentroid[V]) Spawn() MassCentroid[V] {
	return MassCentroid[V]{masses: m.masses}
}

// Centroid returns the center of mass. It is only meaningful when Mass != 0.
func (m MassCentroid[V]) Centroid() V {
	return m.Weighted.Scale(1 / m.Mass)
}

// MaxRadius tracks the largest node radius in a tree region.
// Removing a point keeps Max as an upper bound until the region is empty.
type MaxRadius[V vector.Vector[V]] struct {
	Count int
	Max   float64

	radii []float64
}

var _ kdtree.Delegate[vector.Vec2, MaxRadius[vector.Vec2]] = MaxRadius[vector.Vec2]{}

// NewMaxRadius returns an empty delegate reading node radii from radii.
func NewMaxRadius[V vector.Vector[V]](radii []float64) MaxRadius[V] {
	return MaxRadius[V]{radii: radii}
}

func (m MaxRadius[V]) Add(i int, _ V) MaxRadius[V] {
	m.Count++
	m.Max = max(m.Max, m.radii[i])
	return m
}

func (m MaxRadius[V]) Remove(int, V) MaxRadius[V] {
	m.Count--
	if m.Count == 0 {
		m.Max = 0
	}
	return m
}

func (m MaxRadius[V]) Spawn() MaxRadius[V] {
	return MaxRadius[V]{radii: m.radii}
}
