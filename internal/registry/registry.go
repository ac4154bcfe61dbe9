// Package registry keeps calibrated interpolators in memory between
// requests. Datasets expire after a period without use.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/go-fatigue/fatigue/internal/geom"
	"github.com/go-fatigue/fatigue/internal/ndinterp"
)

var (
	ErrNotFound       = errors.New("dataset not found")
	ErrMethodConflict = errors.New("dataset uses a different interpolation method")
	ErrCapacity       = errors.New("too many datasets")
)

const (
	defaultTTL             = time.Hour
	defaultCleanupInterval = 10 * time.Minute
	defaultMaxDatasets     = 1024
)

type Option func(*Registry)

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithCleanupInterval(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.cleanupInterval = d
		}
	}
}

// WithMaxDatasets caps the live datasets; zero or less means no cap.
func WithMaxDatasets(n int) Option {
	return func(r *Registry) {
		r.maxDatasets = n
	}
}

// WithInterpolatorOptions are applied to every dataset created.
func WithInterpolatorOptions(opts ...ndinterp.Option) Option {
	return func(r *Registry) {
		r.ipOpts = append(r.ipOpts, opts...)
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		ttl:             defaultTTL,
		cleanupInterval: defaultCleanupInterval,
		maxDatasets:     defaultMaxDatasets,
	}
	for _, f := range opts {
		f(r)
	}
	r.items = cache.New(r.ttl, r.cleanupInterval)
	return r
}

type Registry struct {
	// serializes dataset creation
	mtx             sync.Mutex
	items           *cache.Cache
	ttl             time.Duration
	cleanupInterval time.Duration
	maxDatasets     int
	ipOpts          []ndinterp.Option
}

type Sample struct {
	Point geom.Point
	Value float64
}

// Calibrate adds samples to dataset id. An empty id, or an id that is not
// known, creates a new dataset; the tolerance only applies on creation. It
// returns the dataset id and its size.
func (r *Registry) Calibrate(id string, method ndinterp.Method, tolerance float64, samples []Sample) (string, int, error) {
	ip, id, err := r.getOrCreate(id, method, tolerance)
	if err != nil {
		return "", 0, err
	}
	for _, s := range samples {
		ip.AddPoint(s.Point, s.Value)
	}
	return id, ip.Len(), nil
}

// Get returns the interpolator of dataset id and extends its lifetime.
func (r *Registry) Get(id string) (*ndinterp.Interpolator, error) {
	v, ok := r.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	ip := v.(*ndinterp.Interpolator)
	r.items.Set(id, ip, cache.DefaultExpiration)
	return ip, nil
}

// Delete releases dataset id before it expires.
func (r *Registry) Delete(id string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.items.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.items.Delete(id)
	return nil
}

func (r *Registry) Len() int {
	return r.items.ItemCount()
}

func (r *Registry) getOrCreate(id string, method ndinterp.Method, tolerance float64) (*ndinterp.Interpolator, string, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if id != "" {
		if v, ok := r.items.Get(id); ok {
			ip := v.(*ndinterp.Interpolator)
			if ip.Method() != method {
				return nil, "", fmt.Errorf("%w: %s is %s, requested %s", ErrMethodConflict, id, ip.Method(), method)
			}
			r.items.Set(id, ip, cache.DefaultExpiration)
			return ip, id, nil
		}
	}
	if r.maxDatasets > 0 && r.items.ItemCount() >= r.maxDatasets {
		return nil, "", fmt.Errorf("%w: limit is %d", ErrCapacity, r.maxDatasets)
	}
	if id == "" {
		id = uuid.New().String()
	}
	opts := append([]ndinterp.Option{ndinterp.WithTolerance(tolerance)}, r.ipOpts...)
	ip := ndinterp.New(method, opts...)
	r.items.Set(id, ip, cache.DefaultExpiration)
	return ip, id, nil
}

// Flush drops every dataset.
func (r *Registry) Flush() {
	r.items.Flush()
}
