package srvenv

import (
	"context"
	"net/http"

	"github.com/go-fatigue/fatigue/internal/integration"
	"github.com/go-fatigue/fatigue/internal/registry"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

// SrvEnv holds the components built from configuration. Any of them may be
// nil when the configuration did not ask for it.
type SrvEnv struct {
	registry *registry.Registry
	exporter http.Handler
	remote   *integration.Client
}

func (s *SrvEnv) Registry() *registry.Registry {
	return s.registry
}

func (s *SrvEnv) MetricsExporter() http.Handler {
	return s.exporter
}

func (s *SrvEnv) Remote() *integration.Client {
	return s.remote
}

func WithRegistry(r *registry.Registry) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.registry = r
		return s
	}
}

func WithMetricsExporter(h http.Handler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.exporter = h
		return s
	}
}

func WithRemote(c *integration.Client) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.remote = c
		return s
	}
}

// Close drops every dataset held in memory.
func (s *SrvEnv) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	if s.registry != nil {
		s.registry.Flush()
	}
	return nil
}
