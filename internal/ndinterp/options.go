package ndinterp

import (
	"runtime"

	"github.com/go-fatigue/fatigue/internal/geom"
)

// DefaultIndexThreshold is the dataset size from which nearest lookups go
// through a kd-tree instead of a linear scan.
const DefaultIndexThreshold = 64

type Options struct {
	tolerance      float64
	workers        int
	indexThreshold int
}

var defaultOptions = Options{
	tolerance:      geom.DefaultTolerance,
	workers:        runtime.NumCPU(),
	indexThreshold: DefaultIndexThreshold,
}

type Option func(*Interpolator)

func WithTolerance(eps float64) Option {
	return func(ip *Interpolator) {
		if eps > 0 {
			ip.opts.tolerance = eps
		}
	}
}

// WithWorkers bounds the goroutines evaluating one batch. Values below one
// mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(ip *Interpolator) {
		if n > 0 {
			ip.opts.workers = n
		}
	}
}

// WithIndexThreshold sets the kd-tree cut-over; zero disables the index.
func WithIndexThreshold(n int) Option {
	return func(ip *Interpolator) {
		if n >= 0 {
			ip.opts.indexThreshold = n
		}
	}
}
