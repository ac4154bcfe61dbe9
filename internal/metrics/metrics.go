// Package metrics defines the opencensus measures recorded by the service
// and exposes them in Prometheus format.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/go-fatigue/fatigue/internal/logging"
)

var (
	CalibrationPoints   = stats.Int64("fatigue/calibration_points", "Calibration samples received", stats.UnitDimensionless)
	InterpolatedTargets = stats.Int64("fatigue/interpolated_targets", "Targets evaluated", stats.UnitDimensionless)
	CountedCycles       = stats.Int64("fatigue/counted_cycles", "Rainflow cycles resolved", stats.UnitDimensionless)
	RequestLatency      = stats.Float64("fatigue/request_latency", "Handler latency", stats.UnitMilliseconds)

	KeyRoute  = tag.MustNewKey("route")
	KeyMethod = tag.MustNewKey("method")
)

var Views = []*view.View{
	{
		Name:        "calibration_points",
		Measure:     CalibrationPoints,
		Description: "Total calibration samples received",
		TagKeys:     []tag.Key{KeyMethod},
		Aggregation: view.Sum(),
	},
	{
		Name:        "interpolated_targets",
		Measure:     InterpolatedTargets,
		Description: "Total targets evaluated",
		TagKeys:     []tag.Key{KeyMethod},
		Aggregation: view.Sum(),
	},
	{
		Name:        "counted_cycles",
		Measure:     CountedCycles,
		Description: "Total rainflow cycles resolved",
		Aggregation: view.Sum(),
	},
	{
		Name:        "request_latency",
		Measure:     RequestLatency,
		Description: "Handler latency distribution",
		TagKeys:     []tag.Key{KeyRoute},
		Aggregation: view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000),
	},
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registers Views once per process.
func Register() error {
	registerOnce.Do(func() {
		registerErr = view.Register(Views...)
	})
	return registerErr
}

// NewExporter registers Views and returns the Prometheus scrape handler.
func NewExporter(cfg *Config) (http.Handler, error) {
	if err := Register(); err != nil {
		return nil, fmt.Errorf("register views: %w", err)
	}
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: cfg.Namespace,
		OnError: func(err error) {
			logging.DefaultLogger().Errorf("prometheus exporter: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return pe, nil
}

// Record adds n to measure m tagged with method.
func Record(ctx context.Context, m *stats.Int64Measure, method string, n int) {
	var mutators []tag.Mutator
	if method != "" {
		mutators = append(mutators, tag.Upsert(KeyMethod, method))
	}
	if err := stats.RecordWithTags(ctx, mutators, m.M(int64(n))); err != nil {
		logging.FromContext(ctx).Debugf("record %s: %v", m.Name(), err)
	}
}

// Since records the latency of route measured from start.
func Since(ctx context.Context, route string, start time.Time) {
	ms := float64(time.Since(start)) / float64(time.Millisecond)
	if err := stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyRoute, route)}, RequestLatency.M(ms)); err != nil {
		logging.FromContext(ctx).Debugf("record latency: %v", err)
	}
}
