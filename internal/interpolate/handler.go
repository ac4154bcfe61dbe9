package interpolate

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
	route        = "/interpolate"
)

type Request struct {
	Dataset string      `json:"dataset"`
	Targets [][]float64 `json:"targets"`
}

type Response struct {
	Dataset string    `json:"dataset"`
	Method  string    `json:"method"`
	Values  []float64 `json:"values"`
}

type Datasets interface {
	Get(id string) (*ndinterp.Interpolator, error)
}

func NewHandler(cfg *Config, datasets Datasets) (http.Handler, error) {
	return &handler{
		cfg:      cfg,
		datasets: datasets,
	}, nil
}

type handler struct {
	datasets Datasets
	cfg      *Config
}

type result struct {
	values []float64
	err    error
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
	if len(req.Targets) > h.cfg.MaxTargets {
		httputil.RespBadRequest(ctx, w, "too many targets, max allowed len is %d", h.cfg.MaxTargets)
		return
	}
	ip, err := h.datasets.Get(req.Dataset)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			httputil.RespError(ctx, w, http.StatusNotFound, "%v", err)
			return
		}
		httputil.RespInternalError(ctx, w, "lookup dataset %v", err)
		return
	}

	targets := make([]geom.Point, len(req.Targets))
	for i, t := range req.Targets {
		targets[i] = geom.NewPoint(t...)
	}
	resCh := make(chan result, 1)
	go func() {
		values, err := ip.Interpolate(targets)
		resCh <- result{values: values, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		httputil.RespError(ctx, w, http.StatusServiceUnavailable, "interpolation timed out after %v", h.cfg.RequestTimeout)
		return
	case res = <-resCh:
	}
	if res.err != nil {
		if isDataError(res.err) {
			httputil.RespError(ctx, w, http.StatusUnprocessableEntity, "%v", res.err)
			return
		}
		httputil.RespInternalError(ctx, w, "interpolate %v", res.err)
		return
	}

	metrics.Record(ctx, metrics.InterpolatedTargets, ip.Method().String(), len(targets))
	logger.Debugf("Interpolated %d targets on dataset %s", len(targets), req.Dataset)
	httputil.RespJSON(ctx, w, Response{Dataset: req.Dataset, Method: ip.Method().String(), Values: res.values})
}

func isDataError(err error) bool {
	return errors.Is(err, ndinterp.ErrInsufficientPoints) ||
		errors.Is(err, ndinterp.ErrEmptyDataset) ||
		errors.Is(err, ndinterp.ErrSingularSystem) ||
		errors.Is(err, ndinterp.ErrDimensionMismatch)
}
