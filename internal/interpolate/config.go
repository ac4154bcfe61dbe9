package interpolate

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"FATIGUE_INTERPOLATE_REQUEST_TIMEOUT" default:"30s"`
	MaxTargets     int           `envconfig:"FATIGUE_INTERPOLATE_MAX_TARGETS" default:"100000"`
}
