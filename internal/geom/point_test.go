package geom

import (
	"math"
	"testing"
)

func TestPoint_Dimensions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Point
		expected int
	}{
		{name: "positive", p: NewPoint(1, 2, 3, 4, 5), expected: 5},
		{name: "empty", p: Point{}, expected: 0},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.p.Dimensions(); got != test.expected {
				t.Errorf("the comparison is incorrect got: %v, expected: %v", got, test.expected)
			}
		})
	}
}

func TestPoint_Copy(t *testing.T) {
	t.Parallel()
	p := NewPoint(1, 2).WithSource("lc1.csv")
	c := p.Copy()
	c.Coordinates[0] = 10
	if p.Coordinates[0] != 1 {
		t.Errorf("copy shares coordinates with the original")
	}
	if c.Source != "lc1.csv" {
		t.Errorf("copy lost the source tag, got: %q", c.Source)
	}
}

func TestPoint_Less(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected bool
	}{
		{name: "first coordinate", p: NewPoint(0, 5), p1: NewPoint(1, 0), expected: true},
		{name: "second coordinate", p: NewPoint(1, 0), p1: NewPoint(1, 1), expected: true},
		{name: "greater", p: NewPoint(1, 2), p1: NewPoint(1, 1), expected: false},
		{name: "equal", p: NewPoint(1, 1), p1: NewPoint(1, 1), expected: false},
		{name: "prefix", p: NewPoint(1), p1: NewPoint(1, 0), expected: true},
	}
	for _, test := range tests {
		if got := test.p.Less(test.p1); got != test.expected {
			t.Errorf("%s: got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestPoint_Finite(t *testing.T) {
	t.Parallel()
	if !NewPoint(1, 2).Finite() {
		t.Errorf("finite point reported as non finite")
	}
	if NewPoint(1, math.NaN()).Finite() {
		t.Errorf("NaN coordinate reported as finite")
	}
	if NewPoint(math.Inf(-1)).Finite() {
		t.Errorf("infinite coordinate reported as finite")
	}
}
