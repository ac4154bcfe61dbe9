package registry

import "time"

type Config struct {
	DatasetTTL      time.Duration `envconfig:"FATIGUE_DATASET_TTL" default:"1h"`
	CleanupInterval time.Duration `envconfig:"FATIGUE_DATASET_CLEANUP_INTERVAL" default:"10m"`
	MaxDatasets     int           `envconfig:"FATIGUE_MAX_DATASETS" default:"1024"`
	Workers         int           `envconfig:"FATIGUE_INTERPOLATION_WORKERS" default:"0"`
	IndexThreshold  int           `envconfig:"FATIGUE_NEAREST_INDEX_THRESHOLD" default:"64"`
}
