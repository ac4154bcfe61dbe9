package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fatigue/fatigue/internal/geom"
)

func TestBuilder_ToleranceOverwrite(t *testing.T) {
	b := NewBuilder()
	assert.False(t, b.Add(geom.NewPoint(1.0), 1.0))
	assert.True(t, b.Add(geom.NewPoint(1.0+1e-6), 5.0))

	set := b.Build()
	require.Equal(t, 1, set.Len())
	p, v := set.At(0)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, []float64{1.0 + 1e-6}, p.Coordinates)
}

func TestBuilder_DistinctPoints(t *testing.T) {
	b := NewBuilder()
	b.Add(geom.NewPoint(1.0), 1.0)
	b.Add(geom.NewPoint(1.0+1e-4), 2.0)
	b.Add(geom.NewPoint(1.0, 0.0), 3.0)
	assert.Equal(t, 3, b.Len())
}

func TestBuilder_CustomTolerance(t *testing.T) {
	b := NewBuilder(WithTolerance(0.1))
	b.Add(geom.NewPoint(1.0), 1.0)
	b.Add(geom.NewPoint(1.04), 2.0)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 0.1, b.Tolerance())

	b = NewBuilder(WithTolerance(-1))
	assert.Equal(t, geom.DefaultTolerance, b.Tolerance())
}

func TestBuilder_BuildIsFrozen(t *testing.T) {
	b := NewBuilder()
	src := geom.NewPoint(1.0, 2.0).WithSource("lc1.csv")
	b.Add(src, 1.0)
	set := b.Build()

	src.Coordinates[0] = 100
	b.Add(geom.NewPoint(3.0, 4.0), 2.0)

	require.Equal(t, 1, set.Len())
	p, _ := set.At(0)
	assert.Equal(t, []float64{1.0, 2.0}, p.Coordinates)
	assert.Equal(t, "lc1.csv", p.Source)
}

func TestSet_Dimensions(t *testing.T) {
	var empty *Set
	_, ok := empty.Dimensions()
	assert.False(t, ok)

	set := FromSamples([]geom.Point{geom.NewPoint(1, 2), geom.NewPoint(3, 4)}, []float64{1, 2})
	dim, ok := set.Dimensions()
	assert.True(t, ok)
	assert.Equal(t, 2, dim)

	mixed := FromSamples([]geom.Point{geom.NewPoint(1, 2), geom.NewPoint(3)}, []float64{1, 2})
	_, ok = mixed.Dimensions()
	assert.False(t, ok)
}

func TestSet_Lookup(t *testing.T) {
	set := FromSamples([]geom.Point{geom.NewPoint(1), geom.NewPoint(2)}, []float64{10, 20})
	v, ok := set.Lookup(geom.NewPoint(2 + 1e-7))
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)

	_, ok = set.Lookup(geom.NewPoint(3))
	assert.False(t, ok)
}
