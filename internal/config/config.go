package fatigue

import (
	"github.com/go-fatigue/fatigue/internal/calibrate"
	"github.com/go-fatigue/fatigue/internal/count"
	"github.com/go-fatigue/fatigue/internal/integration"
	"github.com/go-fatigue/fatigue/internal/interpolate"
	"github.com/go-fatigue/fatigue/internal/metrics"
	"github.com/go-fatigue/fatigue/internal/registry"
	"github.com/go-fatigue/fatigue/internal/setup"
)

var (
	_ setup.RegistryConfigProvider    = (*Config)(nil)
	_ setup.MetricsConfigProvider     = (*Config)(nil)
	_ setup.IntegrationConfigProvider = (*CLIConfig)(nil)
)

const (
	ModeLocal = "local"
	ModeCloud = "cloud"
)

// Config configures fatigue-srv.
type Config struct {
	SrvAddr     string `envconfig:"FATIGUE_ADDR" default:":8787"`
	DebugAddr   string `envconfig:"FATIGUE_DEBUG_ADDR" default:""`
	AuthToken   string `envconfig:"FATIGUE_AUTH_TOKEN" default:""`
	Registry    registry.Config
	Metrics     metrics.Config
	Calibrate   calibrate.Config
	Interpolate interpolate.Config
	Count       count.Config
}

func (c *Config) RegistryConfig() *registry.Config {
	return &c.Registry
}

func (c *Config) MetricsConfig() *metrics.Config {
	return &c.Metrics
}

// CLIConfig configures the fatigue command. Flags override Mode.
type CLIConfig struct {
	Mode        string `envconfig:"FATIGUE_MODE" default:"local"`
	Workers     int    `envconfig:"FATIGUE_INTERPOLATION_WORKERS" default:"0"`
	Parallelism int    `envconfig:"FATIGUE_JOB_PARALLELISM" default:"4"`
	Remote      integration.Config
}

func (c *CLIConfig) IntegrationConfig() *integration.Config {
	return &c.Remote
}
