package geom

import (
	"errors"
	"math"
)

var ErrDimNotEqual = errors.New("vectors dimension is not equal")

// DistanceFn measures the distance between two coordinate vectors.
type DistanceFn func(vec, vec1 []float64) (float64, error)

// SquaredEuclideanDistance orders points exactly like the Euclidean distance
// without the square root.
func SquaredEuclideanDistance(vec, vec1 []float64) (float64, error) {
	var d float64
	if len(vec) != len(vec1) {
		return 0.0, ErrDimNotEqual
	}
	for i := 0; i < len(vec); i++ {
		diff := vec[i] - vec1[i]
		d += diff * diff
	}
	return d, nil
}

func ChebyshevDistance(vec, vec1 []float64) (float64, error) {
	var distance float64
	if len(vec) != len(vec1) {
		return 0.0, ErrDimNotEqual
	}
	for i := range vec1 {
		distance = math.Max(distance, math.Abs(vec[i]-vec1[i]))
	}
	return distance, nil
}
