package job

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/go-fatigue/fatigue/internal/geom"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/ndinterp"
	"github.com/go-fatigue/fatigue/internal/rainflow"
)

type Result struct {
	Name           string                `json:"name"`
	Interpolations []InterpolationResult `json:"interpolations"`
	Rainflow       []RainflowResult      `json:"rainflow"`
}

type InterpolationResult struct {
	Name   string    `json:"name"`
	Method string    `json:"method"`
	Values []float64 `json:"values"`
}

type RainflowResult struct {
	Name   string           `json:"name"`
	Means  []float64        `json:"means"`
	Ranges []float64        `json:"ranges"`
	Cycles []rainflow.Cycle `json:"cycles"`
}

// NewRainflowResult packs cycles into the parallel means/ranges form.
func NewRainflowResult(name string, cycles []rainflow.Cycle) RainflowResult {
	res := RainflowResult{
		Name:   name,
		Means:  make([]float64, len(cycles)),
		Ranges: make([]float64, len(cycles)),
		Cycles: cycles,
	}
	if res.Cycles == nil {
		res.Cycles = []rainflow.Cycle{}
	}
	for i, c := range cycles {
		res.Means[i] = c.Mean
		res.Ranges[i] = c.Range * c.Count
	}
	return res
}

type Option func(*runner)

// WithWorkers bounds the goroutines of each interpolation batch.
func WithWorkers(n int) Option {
	return func(r *runner) {
		r.workers = n
	}
}

// WithParallelism bounds the tasks running at once.
func WithParallelism(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

type runner struct {
	workers     int
	parallelism int
}

// Run executes every task of j in process. Results are index-aligned with
// the job; the first failing task fails the run.
func Run(ctx context.Context, j *Job, opts ...Option) (*Result, error) {
	r := runner{parallelism: 4}
	for _, f := range opts {
		f(&r)
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	res := &Result{
		Name:           j.Name,
		Interpolations: make([]InterpolationResult, len(j.Interpolations)),
		Rainflow:       make([]RainflowResult, len(j.Rainflow)),
	}
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(r.parallelism)
	for i := range j.Interpolations {
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.interpolate(j.Interpolations[i])
			if err != nil {
				return fmt.Errorf("interpolation %q: %w", j.Interpolations[i].Name, err)
			}
			res.Interpolations[i] = out
			logger.Debugf("interpolation %q evaluated %d targets", out.Name, len(out.Values))
			return nil
		})
	}
	for i := range j.Rainflow {
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := j.Rainflow[i]
			values, err := s.Values()
			if err != nil {
				return fmt.Errorf("rainflow %q: %w", s.Name, err)
			}
			if err := rainflow.CheckFinite(values); err != nil {
				return fmt.Errorf("rainflow %q: %w", s.Name, err)
			}
			res.Rainflow[i] = NewRainflowResult(s.Name, rainflow.Count(values))
			logger.Debugf("rainflow %q counted %d cycles", s.Name, len(res.Rainflow[i].Cycles))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r runner) interpolate(task Interpolation) (InterpolationResult, error) {
	method, err := ndinterp.MethodFor(task.Method)
	if err != nil {
		return InterpolationResult{}, err
	}
	ip := ndinterp.New(method, ndinterp.WithTolerance(task.Tolerance), ndinterp.WithWorkers(r.workers))
	for _, s := range task.Points {
		ip.AddPoint(s.Point(), s.Value)
	}
	targets := make([]geom.Point, len(task.Targets))
	for i, t := range task.Targets {
		targets[i] = geom.NewPoint(t...)
	}
	values, err := ip.Interpolate(targets)
	if err != nil {
		return InterpolationResult{}, err
	}
	return InterpolationResult{Name: task.Name, Method: method.String(), Values: values}, nil
}
