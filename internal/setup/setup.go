// Package setup turns an environment-tagged configuration struct into the
// components a command needs.
package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-fatigue/fatigue/internal/integration"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/metrics"
	"github.com/go-fatigue/fatigue/internal/ndinterp"
	"github.com/go-fatigue/fatigue/internal/registry"
	"github.com/go-fatigue/fatigue/internal/srvenv"
)

type RegistryConfigProvider interface {
	RegistryConfig() *registry.Config
}

type MetricsConfigProvider interface {
	MetricsConfig() *metrics.Config
}

type IntegrationConfigProvider interface {
	IntegrationConfig() *integration.Config
}

// Setup processes config from the environment and builds a component for
// every provider interface config implements.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if provider, ok := config.(RegistryConfigProvider); ok {
		logger.Info("Configuring dataset registry")
		reg, err := ProvideRegistryFor(provider)
		if err != nil {
			return nil, fmt.Errorf("unable create registry: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithRegistry(reg))
	}

	if provider, ok := config.(MetricsConfigProvider); ok && provider.MetricsConfig().Enabled {
		logger.Info("Configuring metrics exporter")
		exporter, err := metrics.NewExporter(provider.MetricsConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create metrics exporter: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithMetricsExporter(exporter))
	}

	if provider, ok := config.(IntegrationConfigProvider); ok {
		logger.Info("Configuring remote client")
		client, err := integration.NewClient(provider.IntegrationConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create remote client: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithRemote(client))
	}
	return srvenv.New(serverEnvOpts...), nil
}

func ProvideRegistryFor(provider RegistryConfigProvider) (*registry.Registry, error) {
	cfg := provider.RegistryConfig()
	if cfg.IndexThreshold < 0 {
		return nil, fmt.Errorf("negative nearest index threshold %d", cfg.IndexThreshold)
	}
	return registry.New(
		registry.WithTTL(cfg.DatasetTTL),
		registry.WithCleanupInterval(cfg.CleanupInterval),
		registry.WithMaxDatasets(cfg.MaxDatasets),
		registry.WithInterpolatorOptions(
			ndinterp.WithWorkers(cfg.Workers),
			ndinterp.WithIndexThreshold(cfg.IndexThreshold),
		),
	), nil
}
