package integration

import "time"

type Config struct {
	Addr    string        `envconfig:"FATIGUE_REMOTE_ADDR" default:"localhost:8787"`
	Token   string        `envconfig:"FATIGUE_REMOTE_TOKEN" default:""`
	Timeout time.Duration `envconfig:"FATIGUE_REMOTE_TIMEOUT" default:"5m"`
}

type Point struct {
	Coordinates []float64 `json:"coordinates"`
	Value       float64   `json:"value"`
	Source      string    `json:"source,omitempty"`
}

type CalibrateRequest struct {
	Dataset   string  `json:"dataset,omitempty"`
	Method    string  `json:"method"`
	Tolerance float64 `json:"tolerance,omitempty"`
	Points    []Point `json:"points"`
}

type CalibrateResponse struct {
	Dataset string `json:"dataset"`
	Len     int    `json:"len"`
}

type InterpolateRequest struct {
	Dataset string      `json:"dataset"`
	Targets [][]float64 `json:"targets"`
}

type InterpolateResponse struct {
	Dataset string    `json:"dataset"`
	Method  string    `json:"method"`
	Values  []float64 `json:"values"`
}
