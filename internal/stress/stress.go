// Package stress reduces symmetric 3x3 stress tensors to the scalar
// equivalent stresses that rainflow counting works on.
package stress

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrVoigtLength      = errors.New("stress tensor needs 6 voigt components")
	ErrUnknownCriterion = errors.New("unknown stress criterion")
	ErrEigen            = errors.New("eigen decomposition failed")
)

// Tensor is a symmetric Cauchy stress tensor. Shear components are the
// engineering ones, so XY is both sigma_xy and sigma_yx.
type Tensor struct {
	XX, YY, ZZ float64
	XY, YZ, ZX float64
}

// FromVoigt reads v as [xx, yy, zz, xy, yz, zx].
func FromVoigt(v []float64) (Tensor, error) {
	if len(v) != 6 {
		return Tensor{}, fmt.Errorf("%w: got %d", ErrVoigtLength, len(v))
	}
	return Tensor{XX: v[0], YY: v[1], ZZ: v[2], XY: v[3], YZ: v[4], ZX: v[5]}, nil
}

func (t Tensor) Voigt() [6]float64 {
	return [6]float64{t.XX, t.YY, t.ZZ, t.XY, t.YZ, t.ZX}
}

func (t Tensor) Matrix() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		t.XX, t.XY, t.ZX,
		t.XY, t.YY, t.YZ,
		t.ZX, t.YZ, t.ZZ,
	})
}

// Principal returns the principal stresses in ascending order.
func (t Tensor) Principal() ([3]float64, error) {
	var (
		eig mat.EigenSym
		out [3]float64
	)
	if ok := eig.Factorize(t.Matrix(), false); !ok {
		return out, fmt.Errorf("%w: %v", ErrEigen, t.Voigt())
	}
	vals := eig.Values(nil)
	sort.Float64s(vals)
	copy(out[:], vals)
	return out, nil
}

func (t Tensor) MaxPrincipal() (float64, error) {
	p, err := t.Principal()
	if err != nil {
		return 0, err
	}
	return p[2], nil
}

// VonMises is computed from the components. It equals the principal form
// sqrt(((s1-s2)^2 + (s2-s3)^2 + (s3-s1)^2) / 2) without a decomposition.
func (t Tensor) VonMises() float64 {
	dxy := t.XX - t.YY
	dyz := t.YY - t.ZZ
	dzx := t.ZZ - t.XX
	shear := t.XY*t.XY + t.YZ*t.YZ + t.ZX*t.ZX
	return math.Sqrt(0.5*(dxy*dxy+dyz*dyz+dzx*dzx) + 3*shear)
}

type Criterion string

const (
	CriterionVonMises     Criterion = "VON_MISES"
	CriterionMaxPrincipal Criterion = "MAX_PRINCIPAL"
)

func (c Criterion) String() string {
	return string(c)
}

// CriterionFor resolves a configured criterion name. An empty name is von
// Mises.
func CriterionFor(name string) (Criterion, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	switch n {
	case "", string(CriterionVonMises), "VONMISES", "MISES":
		return CriterionVonMises, nil
	case string(CriterionMaxPrincipal), "MAXPRINCIPAL", "PRINCIPAL":
		return CriterionMaxPrincipal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCriterion, name)
	}
}

// Apply reduces t to a scalar under c.
func (c Criterion) Apply(t Tensor) (float64, error) {
	switch c {
	case CriterionVonMises:
		return t.VonMises(), nil
	case CriterionMaxPrincipal:
		return t.MaxPrincipal()
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, string(c))
	}
}

// Series turns a history of voigt tensors into an equivalent stress history,
// index-aligned with tensors.
func Series(tensors [][]float64, c Criterion) ([]float64, error) {
	out := make([]float64, len(tensors))
	for i, v := range tensors {
		t, err := FromVoigt(v)
		if err != nil {
			return nil, fmt.Errorf("tensor %d: %w", i, err)
		}
		if out[i], err = c.Apply(t); err != nil {
			return nil, fmt.Errorf("tensor %d: %w", i, err)
		}
	}
	return out, nil
}
