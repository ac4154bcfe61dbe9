package calibrate

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-fatigue/fatigue/internal/geom"
	"github.com/go-fatigue/fatigue/internal/httputil"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/metrics"
	"github.com/go-fatigue/fatigue/internal/ndinterp"
	"github.com/go-fatigue/fatigue/internal/registry"
)

const (
	maxBodyBytes = 64 * 1024 * 1024
	route        = "/calibrate"
)

type Request struct {
	Dataset   string  `json:"dataset,omitempty"`
	Method    string  `json:"method"`
	Tolerance float64 `json:"tolerance,omitempty"`
	Points    []struct {
		Coordinates []float64 `json:"coordinates"`
		Value       float64   `json:"value"`
		Source      string    `json:"source,omitempty"`
	} `json:"points"`
}

type Response struct {
	Dataset string `json:"dataset"`
	Len     int    `json:"len"`
}

type Calibrator interface {
	Calibrate(id string, method ndinterp.Method, tolerance float64, samples []registry.Sample) (string, int, error)
}

func NewHandler(cfg *Config, calibrator Calibrator) (http.Handler, error) {
	return &handler{
		cfg:        cfg,
		calibrator: calibrator,
	}, nil
}

type handler struct {
	calibrator Calibrator
	cfg        *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	defer metrics.Since(ctx, route, time.Now())
	logger := logging.FromContext(ctx)

	if !httputil.DecodeJSON(ctx, w, r, maxBodyBytes, &req) {
		return
	}
	if len(req.Points) > h.cfg.MaxPoints {
		httputil.RespBadRequest(ctx, w, "too many points, max allowed len is %d", h.cfg.MaxPoints)
		return
	}
	method, err := ndinterp.MethodFor(req.Method)
	if err != nil {
		httputil.RespBadRequest(ctx, w, "%v", err)
		return
	}
	if req.Tolerance < 0 {
		httputil.RespBadRequest(ctx, w, "tolerance must not be negative")
		return
	}

	samples := make([]registry.Sample, len(req.Points))
	for i, p := range req.Points {
		samples[i] = registry.Sample{
			Point: geom.NewPoint(p.Coordinates...).WithSource(p.Source),
			Value: p.Value,
		}
	}
	id, n, err := h.calibrator.Calibrate(req.Dataset, method, req.Tolerance, samples)
	switch {
	case errors.Is(err, registry.ErrMethodConflict):
		httputil.RespError(ctx, w, http.StatusConflict, "%v", err)
		return
	case errors.Is(err, registry.ErrCapacity):
		httputil.RespError(ctx, w, http.StatusServiceUnavailable, "%v", err)
		return
	case err != nil:
		httputil.RespInternalError(ctx, w, "calibrate %v", err)
		return
	}

	metrics.Record(ctx, metrics.CalibrationPoints, method.String(), len(samples))
	logger.Infof("Calibrated dataset %s with %d points, size %d", id, len(samples), n)
	httputil.RespJSON(ctx, w, Response{Dataset: id, Len: n})
}
