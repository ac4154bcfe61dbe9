package ndinterp

import (
	"sync"

	"github.com/go-fatigue/fatigue/internal/dataset"
	"github.com/go-fatigue/fatigue/internal/geom"
)

// New returns an empty Interpolator using method m.
func New(m Method, opts ...Option) *Interpolator {
	ip := &Interpolator{
		method: m,
		opts:   defaultOptions,
	}
	for _, f := range opts {
		f(ip)
	}
	ip.builder = dataset.NewBuilder(dataset.WithTolerance(ip.opts.tolerance))
	return ip
}

// Interpolator owns a calibration dataset and evaluates one method over it.
// AddPoint and Interpolate may be called concurrently: a batch works on the
// snapshot taken when it started.
type Interpolator struct {
	mtx     sync.RWMutex
	method  Method
	opts    Options
	builder *dataset.Builder

	// frozen and fitted are rebuilt lazily after the dataset changes
	frozen *dataset.Set
	fitted model
}

func (ip *Interpolator) Method() Method {
	return ip.method
}

func (ip *Interpolator) Len() int {
	ip.mtx.RLock()
	defer ip.mtx.RUnlock()
	return ip.builder.Len()
}

// AddPoint inserts a calibration sample, overwriting any stored sample whose
// coordinates are all within tolerance of p.
func (ip *Interpolator) AddPoint(p geom.Point, value float64) {
	ip.mtx.Lock()
	defer ip.mtx.Unlock()
	ip.builder.Add(p, value)
	ip.frozen = nil
	ip.fitted = nil
}

// Snapshot returns the current dataset frozen.
func (ip *Interpolator) Snapshot() *dataset.Set {
	ip.mtx.Lock()
	defer ip.mtx.Unlock()
	return ip.snapshot()
}

func (ip *Interpolator) snapshot() *dataset.Set {
	if ip.frozen == nil {
		ip.frozen = ip.builder.Build()
	}
	return ip.frozen
}

// Interpolate evaluates the method at every target. The result is
// index-aligned with targets; any failure fails the whole batch.
func (ip *Interpolator) Interpolate(targets []geom.Point) ([]float64, error) {
	mdl, err := ip.model()
	if err != nil {
		return nil, err
	}
	return evaluate(mdl, targets, ip.opts.workers)
}

func (ip *Interpolator) model() (model, error) {
	ip.mtx.RLock()
	mdl := ip.fitted
	ip.mtx.RUnlock()
	if mdl != nil {
		return mdl, nil
	}

	ip.mtx.Lock()
	defer ip.mtx.Unlock()
	if ip.fitted != nil {
		return ip.fitted, nil
	}
	mdl, err := fit(ip.method, ip.snapshot(), ip.opts)
	if err != nil {
		return nil, err
	}
	ip.fitted = mdl
	return mdl, nil
}
