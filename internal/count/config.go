package count

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"FATIGUE_RAINFLOW_REQUEST_TIMEOUT" default:"30s"`
	MaxSeriesLen   int           `envconfig:"FATIGUE_RAINFLOW_MAX_SERIES_LEN" default:"1000000"`
}
