// Package count serves rainflow counting over HTTP.
package count

import (
	"context"
	"net/http"
	"time"

	"github.com/go-fatigue/fatigue/internal/httputil"
	"github.com/go-fatigue/fatigue/internal/job"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/metrics"
	"github.com/go-fatigue/fatigue/internal/rainflow"
)

const (
	maxBodyBytes = 128 * 1024 * 1024
	route        = "/rainflow"
)

func NewHandler(cfg *Config) (http.Handler, error) {
	return &handler{cfg: cfg}, nil
}

type handler struct {
	cfg *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req job.Series
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	defer metrics.Since(ctx, route, time.Now())
	logger := logging.FromContext(ctx)

	if !httputil.DecodeJSON(ctx, w, r, maxBodyBytes, &req) {
		return
	}
	if req.Len() > h.cfg.MaxSeriesLen {
		httputil.RespBadRequest(ctx, w, "series is too long, max allowed len is %d", h.cfg.MaxSeriesLen)
		return
	}
	values, err := req.Values()
	if err != nil {
		httputil.RespBadRequest(ctx, w, "%v", err)
		return
	}

	cycles := rainflow.Count(values)
	metrics.Record(ctx, metrics.CountedCycles, "", len(cycles))
	logger.Debugf("Counted %d cycles over %d samples", len(cycles), len(values))
	httputil.RespJSON(ctx, w, job.NewRainflowResult(req.Name, cycles))
}
