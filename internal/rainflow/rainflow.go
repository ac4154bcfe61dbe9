// Package rainflow reduces a load history to fatigue cycles using the
// ASTM E1049-85 rainflow procedure.
package rainflow

import (
	"errors"
	"fmt"
	"math"
)

const (
	FullCycle = 1.0
	HalfCycle = 0.5
)

var ErrNonFinite = errors.New("rainflow: non-finite sample")

// Cycle is one resolved hysteresis loop. Range is always the full
// peak-to-valley distance, also for half cycles.
type Cycle struct {
	Mean  float64 `json:"mean" yaml:"mean"`
	Range float64 `json:"range" yaml:"range"`
	Count float64 `json:"count" yaml:"count"`
}

func (c Cycle) Half() bool {
	return c.Count == HalfCycle
}

// CheckFinite returns ErrNonFinite for the first NaN or infinite sample.
// Counting assumes finite input.
func CheckFinite(series []float64) error {
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v at index %d", ErrNonFinite, v, i)
		}
	}
	return nil
}

// Count returns the cycles of series in the order they are resolved.
func Count(series []float64) []Cycle {
	var c Counter
	for _, v := range series {
		c.Push(v)
	}
	return c.Finish()
}

// Rainflow returns the cycles of series as parallel mean and range slices.
// Half cycles report half of their range.
func Rainflow(series []float64) (means, ranges []float64) {
	cycles := Count(series)
	means = make([]float64, len(cycles))
	ranges = make([]float64, len(cycles))
	for i, c := range cycles {
		means[i] = c.Mean
		ranges[i] = c.Range * c.Count
	}
	return means, ranges
}

// Reversals returns the turning points of series bounded by its first and
// last samples. Repeated samples and points inside monotonic runs are
// dropped.
func Reversals(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := []float64{series[0]}
	last, dir := series[0], 0
	for _, v := range series[1:] {
		if v == last {
			continue
		}
		d := direction(last, v)
		if dir != 0 && d != dir {
			out = append(out, last)
		}
		last, dir = v, d
	}
	if dir != 0 {
		out = append(out, last)
	}
	return out
}

func direction(from, to float64) int {
	if to > from {
		return 1
	}
	return -1
}
