package geom

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// DefaultTolerance is the absolute per-coordinate tolerance under which two
// calibration points are considered the same key.
const DefaultTolerance = 1e-5

// ApproxEqual reports whether a and b have the same length and differ by at
// most eps in every coordinate.
func ApproxEqual(a, b []float64, eps float64) bool {
	d, err := ChebyshevDistance(a, b)
	if err != nil {
		return false
	}
	return d <= eps
}

// Key hashes coords after snapping every coordinate to the nearest multiple of
// eps. Points that snap to the same cell get the same key; they are always
// within eps of each other.
//
// The converse does not hold: ApproxEqual is not transitive, and two points
// closer than eps can straddle a cell boundary and get different keys. Callers
// using Key for deduplication accept that such pairs are stored separately.
func Key(coords []float64, eps float64) uint64 {
	var buf [8]byte
	d := xxhash.New()
	binary.LittleEndian.PutUint64(buf[:], uint64(len(coords)))
	_, _ = d.Write(buf[:])
	for _, c := range coords {
		q := c
		if eps > 0 {
			q = math.Round(c / eps)
		}
		if q == 0 {
			q = 0 // collapse -0
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(q))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
