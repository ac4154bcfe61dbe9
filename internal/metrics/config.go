package metrics

type Config struct {
	Namespace string `envconfig:"FATIGUE_METRICS_NAMESPACE" default:"fatigue"`
	Enabled   bool   `envconfig:"FATIGUE_METRICS_ENABLED" default:"true"`
}
