package ndinterp

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-fatigue/fatigue/internal/dataset"
	"github.com/go-fatigue/fatigue/internal/geom"
	"github.com/go-fatigue/fatigue/pkg/container/kdtree"
)

// indexedPoint lets the kd-tree hand back the dataset position.
type indexedPoint struct {
	geom.Point
	idx int
}

type nearestModel struct {
	set  *dataset.Set
	tree *kdtree.Tree
}

// fitNearest indexes sets of at least indexThreshold points in a kd-tree.
// Both search paths return the same point: the closest one, and among exactly
// equidistant points the lexicographically smallest.
func fitNearest(set *dataset.Set, indexThreshold int) (*nearestModel, error) {
	if set.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	m := &nearestModel{set: set}
	dim, ok := set.Dimensions()
	if ok && dim > 0 && indexThreshold > 0 && set.Len() >= indexThreshold {
		items := make([]kdtree.Point, set.Len())
		for i := range items {
			p, _ := set.At(i)
			items[i] = indexedPoint{Point: p, idx: i}
		}
		m.tree = kdtree.New(geom.SquaredEuclideanDistance, kdtree.WithTieBreak(func(p, p1 kdtree.Point) bool {
			return p.(indexedPoint).Less(p1.(indexedPoint).Point)
		}))
		m.tree.Build(items...)
	}
	return m, nil
}

func (m *nearestModel) predict(target geom.Point) (float64, error) {
	if m.tree != nil {
		return m.indexed(target)
	}
	return m.scan(target)
}

func (m *nearestModel) indexed(target geom.Point) (float64, error) {
	found, _, err := m.tree.Nearest(target)
	if err != nil {
		if errors.Is(err, geom.ErrDimNotEqual) {
			return 0, fmt.Errorf("target %v: %w", target.Coordinates, ErrDimensionMismatch)
		}
		return 0, err
	}
	_, v := m.set.At(found.(indexedPoint).idx)
	return v, nil
}

func (m *nearestModel) scan(target geom.Point) (float64, error) {
	var (
		best     = -1
		bestDist = math.Inf(1)
		bestPt   geom.Point
	)
	for i := 0; i < m.set.Len(); i++ {
		p, _ := m.set.At(i)
		d, err := geom.SquaredEuclideanDistance(target.Coordinates, p.Coordinates)
		if err != nil {
			return 0, fmt.Errorf("target %v: %w", target.Coordinates, ErrDimensionMismatch)
		}
		if best < 0 || d < bestDist || (d == bestDist && p.Less(bestPt)) {
			best, bestDist, bestPt = i, d, p
		}
	}
	_, v := m.set.At(best)
	return v, nil
}
