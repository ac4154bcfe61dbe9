// Package dataset holds calibration samples keyed by tolerance-equal points.
//
// A Builder accumulates samples; Build freezes them into an immutable Set that
// is handed to the interpolation methods. Two points whose coordinates all
// differ by at most the tolerance are the same key, so adding such a point
// overwrites the stored sample instead of adding a new one. Keys are found by
// hashing coordinates snapped to the tolerance grid (see geom.Key), which
// means two tolerance-equal points straddling a grid boundary are kept as
// separate entries.
package dataset

import (
	"github.com/go-fatigue/fatigue/internal/geom"
)

type Option func(*Builder)

// WithTolerance sets the absolute per-coordinate tolerance. Non-positive
// values fall back to geom.DefaultTolerance.
func WithTolerance(eps float64) Option {
	return func(b *Builder) {
		if eps > 0 {
			b.tolerance = eps
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		tolerance: geom.DefaultTolerance,
		buckets:   map[uint64][]int{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Builder is not safe for concurrent use.
type Builder struct {
	tolerance float64
	// quantized key -> indexes into points/values
	buckets map[uint64][]int
	points  []geom.Point
	values  []float64
}

// Add inserts the sample or overwrites the stored one within tolerance. It
// reports whether an existing entry was replaced.
func (b *Builder) Add(p geom.Point, value float64) bool {
	p = p.Copy()
	key := geom.Key(p.Coordinates, b.tolerance)
	for _, idx := range b.buckets[key] {
		if geom.ApproxEqual(b.points[idx].Coordinates, p.Coordinates, b.tolerance) {
			b.points[idx] = p
			b.values[idx] = value
			return true
		}
	}
	b.buckets[key] = append(b.buckets[key], len(b.points))
	b.points = append(b.points, p)
	b.values = append(b.values, value)
	return false
}

func (b *Builder) Len() int {
	return len(b.points)
}

func (b *Builder) Tolerance() float64 {
	return b.tolerance
}

// Build returns a frozen copy of the samples in insertion order.
func (b *Builder) Build() *Set {
	s := &Set{
		tolerance: b.tolerance,
		points:    make([]geom.Point, len(b.points)),
		values:    make([]float64, len(b.values)),
	}
	for i := range b.points {
		s.points[i] = b.points[i].Copy()
	}
	copy(s.values, b.values)
	return s
}

// Set is an immutable calibration dataset. It is safe for concurrent reads.
type Set struct {
	tolerance float64
	points    []geom.Point
	values    []float64
}

// FromSamples builds a Set in one call.
func FromSamples(points []geom.Point, values []float64, opts ...Option) *Set {
	b := NewBuilder(opts...)
	for i := range points {
		b.Add(points[i], values[i])
	}
	return b.Build()
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

func (s *Set) Tolerance() float64 {
	return s.tolerance
}

// At returns the i-th sample. The returned point must not be modified.
func (s *Set) At(i int) (geom.Point, float64) {
	return s.points[i], s.values[i]
}

// Dimensions returns the dimensionality shared by every point, or ok=false
// when the set is empty or mixes dimensionalities.
func (s *Set) Dimensions() (dim int, ok bool) {
	if s.Len() == 0 {
		return 0, false
	}
	dim = s.points[0].Dimensions()
	for i := 1; i < len(s.points); i++ {
		if s.points[i].Dimensions() != dim {
			return 0, false
		}
	}
	return dim, true
}

// Lookup returns the value stored for a point within tolerance of p.
func (s *Set) Lookup(p geom.Point) (float64, bool) {
	for i := range s.points {
		if geom.ApproxEqual(s.points[i].Coordinates, p.Coordinates, s.tolerance) {
			return s.values[i], true
		}
	}
	return 0, false
}
