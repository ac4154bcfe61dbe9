package geom

import "math"

// Point is a calibration or query coordinate. Source is an opaque tag carried
// along with the coordinates (typically the file the sample was read from) and
// never takes part in any computation.
type Point struct {
	Coordinates []float64 `json:"coordinates" yaml:"coordinates" toml:"coordinates"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
}

func NewPoint(coords ...float64) Point {
	return Point{Coordinates: coords}
}

func (p Point) WithSource(source string) Point {
	p.Source = source
	return p
}

func (p Point) Dimensions() int {
	return len(p.Coordinates)
}

func (p Point) Dim(idx int) float64 {
	return p.Coordinates[idx]
}

func (p Point) Points() []float64 {
	return p.Coordinates
}

func (p Point) Copy() Point {
	var c = make([]float64, len(p.Coordinates))
	copy(c, p.Coordinates)
	return Point{Coordinates: c, Source: p.Source}
}

// Less orders points lexicographically by coordinate, shorter points first
// when one is a prefix of the other.
func (p Point) Less(p1 Point) bool {
	for i := 0; i < len(p.Coordinates) && i < len(p1.Coordinates); i++ {
		if p.Coordinates[i] != p1.Coordinates[i] {
			return p.Coordinates[i] < p1.Coordinates[i]
		}
	}
	return len(p.Coordinates) < len(p1.Coordinates)
}

// Finite reports whether every coordinate is a finite number.
func (p Point) Finite() bool {
	for _, c := range p.Coordinates {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
