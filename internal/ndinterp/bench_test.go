package ndinterp

import (
	"testing"

	"github.com/valyala/fastrand"

	"github.com/go-fatigue/fatigue/internal/geom"
)

func BenchmarkLinearLargeDataset(b *testing.B) {
	ip := New(MethodLinear)
	for x := 1; x <= 100000; x++ {
		ip.AddPoint(geom.NewPoint(float64(x)), 2*float64(x))
	}
	targets := []geom.Point{geom.NewPoint(500)}
	if _, err := ip.Interpolate(targets); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ip.Interpolate(targets); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNearestIndexed(b *testing.B) {
	ip := New(MethodNearest)
	for i := 0; i < 20000; i++ {
		ip.AddPoint(geom.NewPoint(float64(fastrand.Uint32n(100000)), float64(fastrand.Uint32n(100000))), float64(i))
	}
	targets := make([]geom.Point, 1000)
	for i := range targets {
		targets[i] = geom.NewPoint(float64(fastrand.Uint32n(100000)), float64(fastrand.Uint32n(100000)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ip.Interpolate(targets); err != nil {
			b.Fatal(err)
		}
	}
}
