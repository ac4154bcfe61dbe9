package ndinterp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/go-fatigue/fatigue/internal/dataset"
	"github.com/go-fatigue/fatigue/internal/geom"
)

// singularThreshold discards near-null directions of the design matrix.
const singularThreshold = 1e-12

// linearModel is value = coef[0] + sum(coef[i+1] * x[i]).
type linearModel struct {
	coef []float64
}

func fitLinear(set *dataset.Set) (*linearModel, error) {
	if set.Len() < 2 {
		return nil, fmt.Errorf("linear fit over %d points: %w", set.Len(), ErrInsufficientPoints)
	}
	dim, ok := set.Dimensions()
	if !ok {
		return nil, fmt.Errorf("calibration points: %w", ErrDimensionMismatch)
	}

	rows, cols := set.Len(), dim+1
	x := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		p, v := set.At(i)
		x.Set(i, 0, 1)
		for j, c := range p.Coordinates {
			x.Set(i, j+1, c)
		}
		y.SetVec(i, v)
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("factorize %dx%d design matrix: %w", rows, cols, ErrSingularSystem)
	}
	rank := 0
	for _, s := range svd.Values(nil) {
		if s > singularThreshold {
			rank++
		}
	}
	if rank == 0 {
		return nil, fmt.Errorf("design matrix has no singular value above %g: %w", singularThreshold, ErrSingularSystem)
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, y, rank)
	coef := make([]float64, cols)
	for i := range coef {
		coef[i] = beta.AtVec(i)
		if math.IsNaN(coef[i]) || math.IsInf(coef[i], 0) {
			return nil, fmt.Errorf("coefficient %d is %v: %w", i, coef[i], ErrSingularSystem)
		}
	}
	return &linearModel{coef: coef}, nil
}

func (m *linearModel) predict(target geom.Point) (float64, error) {
	if target.Dimensions() != len(m.coef)-1 {
		return 0, fmt.Errorf(
			"target has %d coordinates, model has %d: %w",
			target.Dimensions(), len(m.coef)-1, ErrDimensionMismatch,
		)
	}
	value := m.coef[0]
	for i, c := range target.Coordinates {
		value += m.coef[i+1] * c
	}
	return value, nil
}
