package calibrate

import (
	"time"
)

type Config struct {
	RequestTimeout time.Duration `envconfig:"FATIGUE_CALIBRATE_REQUEST_TIMEOUT" default:"60s"`
	MaxPoints      int           `envconfig:"FATIGUE_CALIBRATE_MAX_POINTS" default:"100000"`
}
