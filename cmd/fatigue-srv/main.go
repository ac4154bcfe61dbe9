package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/go-fatigue/fatigue/internal/buildinfo"
	"github.com/go-fatigue/fatigue/internal/calibrate"
	fatigue "github.com/go-fatigue/fatigue/internal/config"
	"github.com/go-fatigue/fatigue/internal/count"
	"github.com/go-fatigue/fatigue/internal/httputil"
	"github.com/go-fatigue/fatigue/internal/interpolate"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/server"
	"github.com/go-fatigue/fatigue/internal/setup"
	"github.com/go-fatigue/fatigue/internal/shutdown"
)

func main() {
	buildinfo.Info.Fprint(os.Stdout)

	ctx, done := shutdown.New()
	defer done()
	logger := logging.NewLoggerFromEnv()
	ctx = logging.WithLogger(ctx, logger)
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, cancel func()) error {
	logger := logging.FromContext(ctx)
	config := fatigue.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			logger.Errorf("env.Close: %v", err)
		}
	}()

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	calibrateHandler, err := calibrate.NewHandler(&config.Calibrate, env.Registry())
	if err != nil {
		return fmt.Errorf("calibrate.NewHandler: %w", err)
	}
	releaseHandler, err := calibrate.NewReleaseHandler(&config.Calibrate, env.Registry())
	if err != nil {
		return fmt.Errorf("calibrate.NewReleaseHandler: %w", err)
	}
	interpolateHandler, err := interpolate.NewHandler(&config.Interpolate, env.Registry())
	if err != nil {
		return fmt.Errorf("interpolate.NewHandler: %w", err)
	}
	countHandler, err := count.NewHandler(&config.Count)
	if err != nil {
		return fmt.Errorf("count.NewHandler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/calibrate", httputil.RequireBearer(config.AuthToken, calibrateHandler))
	mux.Handle("/datasets", httputil.RequireBearer(config.AuthToken, releaseHandler))
	mux.Handle("/interpolate", httputil.RequireBearer(config.AuthToken, interpolateHandler))
	mux.Handle("/rainflow", httputil.RequireBearer(config.AuthToken, countHandler))
	mux.Handle("/health", server.HandleHealth(ctx))
	if exporter := env.MetricsExporter(); exporter != nil {
		mux.Handle("/metrics", exporter)
	}

	if config.DebugAddr != "" {
		go serveDebug(ctx, config.DebugAddr, cancel)
	}

	logger.Infof("Listening on %s", srv.Addr())
	return srv.ServeHTTPHandler(ctx, mux)
}

func serveDebug(ctx context.Context, addr string, cancel func()) {
	logger := logging.FromContext(ctx)
	debugSrv, err := server.New(addr)
	if err != nil {
		logger.Errorf("debug server: %v", err)
		cancel()
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	if err := debugSrv.ServeHTTPHandler(ctx, mux); err != nil {
		logger.Errorf("debug server: %v", err)
		cancel()
	}
}
