package calibrate

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-fatigue/fatigue/internal/httputil"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/metrics"
	"github.com/go-fatigue/fatigue/internal/registry"
)

const releaseRoute = "/datasets"

type Releaser interface {
	Delete(id string) error
}

// NewReleaseHandler serves DELETE /datasets?id=, dropping a calibrated
// dataset before its TTL runs out.
func NewReleaseHandler(cfg *Config, releaser Releaser) (http.Handler, error) {
	return &releaseHandler{
		cfg:      cfg,
		releaser: releaser,
	}, nil
}

type releaseHandler struct {
	releaser Releaser
	cfg      *Config
}

func (h *releaseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	defer metrics.Since(ctx, releaseRoute, time.Now())

	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		httputil.RespError(ctx, w, http.StatusMethodNotAllowed, "method %v is not allowed", r.Method)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.RespBadRequest(ctx, w, "dataset id is required")
		return
	}

	err := h.releaser.Delete(id)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		httputil.RespError(ctx, w, http.StatusNotFound, "%v", err)
		return
	case err != nil:
		httputil.RespInternalError(ctx, w, "release %v", err)
		return
	}

	logging.FromContext(ctx).Infof("Released dataset %s", id)
	w.WriteHeader(http.StatusNoContent)
}
