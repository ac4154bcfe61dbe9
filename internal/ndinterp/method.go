// Package ndinterp maps sparse N-dimensional calibration samples to values at
// arbitrary target coordinates.
//
// The set of methods is closed: a global affine least squares fit (LINEAR),
// which interpolates and extrapolates with the same formula, and nearest
// neighbour lookup (NEAREST). A method is fitted once against a frozen
// dataset.Set and the resulting model is evaluated for every target, in
// parallel, with results index-aligned with the targets.
package ndinterp

import (
	"fmt"
	"strings"

	"github.com/go-fatigue/fatigue/internal/dataset"
	"github.com/go-fatigue/fatigue/internal/geom"
)

type Method string

const (
	MethodLinear  Method = "LINEAR"
	MethodNearest Method = "NEAREST"
)

func (m Method) String() string {
	return string(m)
}

// MethodFor resolves a configured method name.
func MethodFor(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case string(MethodLinear):
		return MethodLinear, nil
	case string(MethodNearest), "NEAREST_NEIGHBOR", "NEAREST-NEIGHBOR", "NEARESTNEIGHBOR":
		return MethodNearest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Interpolate fits m against set and evaluates every target. A failure for
// any target fails the whole batch.
func (m Method) Interpolate(set *dataset.Set, targets []geom.Point) ([]float64, error) {
	mdl, err := fit(m, set, defaultOptions)
	if err != nil {
		return nil, err
	}
	return evaluate(mdl, targets, defaultOptions.workers)
}

// model is a fitted method. Implementations are immutable after fit and safe
// for concurrent use.
type model interface {
	predict(target geom.Point) (float64, error)
}

func fit(m Method, set *dataset.Set, opts Options) (model, error) {
	switch m {
	case MethodLinear:
		return fitLinear(set)
	case MethodNearest:
		return fitNearest(set, opts.indexThreshold)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, string(m))
	}
}
