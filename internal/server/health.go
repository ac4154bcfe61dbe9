package server

import (
	"context"
	"net/http"

	"github.com/go-fatigue/fatigue/internal/buildinfo"
)

// HandleHealth answers 200 with the build tag until ctx is done.
func HandleHealth(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ctx.Err() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status": "shutting down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "version": "` + buildinfo.Info.Tag() + `"}`))
	})
}
