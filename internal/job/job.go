// Package job describes a batch of interpolation and rainflow tasks read
// from a YAML or TOML file.
package job

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-fatigue/fatigue/internal/geom"
	"github.com/go-fatigue/fatigue/internal/ndinterp"
	"github.com/go-fatigue/fatigue/internal/stress"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported job file format")
	ErrInvalidJob        = errors.New("invalid job")
)

type Job struct {
	Name           string          `json:"name" yaml:"name" toml:"name"`
	Interpolations []Interpolation `json:"interpolations,omitempty" yaml:"interpolations" toml:"interpolations"`
	Rainflow       []Series        `json:"rainflow,omitempty" yaml:"rainflow" toml:"rainflow"`
}

// Interpolation is a calibration dataset and the targets to evaluate on it.
type Interpolation struct {
	Name      string      `json:"name" yaml:"name" toml:"name"`
	Method    string      `json:"method" yaml:"method" toml:"method"`
	Tolerance float64     `json:"tolerance,omitempty" yaml:"tolerance" toml:"tolerance"`
	Points    []Sample    `json:"points" yaml:"points" toml:"points"`
	Targets   [][]float64 `json:"targets" yaml:"targets" toml:"targets"`
}

type Sample struct {
	Coordinates []float64 `json:"coordinates" yaml:"coordinates" toml:"coordinates"`
	Value       float64   `json:"value" yaml:"value" toml:"value"`
	Source      string    `json:"source,omitempty" yaml:"source" toml:"source"`
}

func (s Sample) Point() geom.Point {
	return geom.NewPoint(s.Coordinates...).WithSource(s.Source)
}

// Series is a load history to count. It is either a scalar history or a
// history of voigt stress tensors reduced by Criterion.
type Series struct {
	Name      string      `json:"name" yaml:"name" toml:"name"`
	Series    []float64   `json:"series" yaml:"series" toml:"series"`
	Tensors   [][]float64 `json:"tensors,omitempty" yaml:"tensors" toml:"tensors"`
	Criterion string      `json:"criterion,omitempty" yaml:"criterion" toml:"criterion"`
}

func (s Series) Len() int {
	if len(s.Tensors) > 0 {
		return len(s.Tensors)
	}
	return len(s.Series)
}

func (s Series) validate() error {
	if len(s.Tensors) == 0 {
		if s.Criterion != "" {
			return fmt.Errorf("criterion %q without tensors: %w", s.Criterion, ErrInvalidJob)
		}
		return nil
	}
	if len(s.Series) > 0 {
		return fmt.Errorf("both series and tensors are set: %w", ErrInvalidJob)
	}
	if _, err := stress.CriterionFor(s.Criterion); err != nil {
		return err
	}
	for i, v := range s.Tensors {
		if len(v) != 6 {
			return fmt.Errorf("tensor %d: %w", i, stress.ErrVoigtLength)
		}
	}
	return nil
}

// Values returns the history to count, reducing tensors to their
// equivalent stress.
func (s Series) Values() ([]float64, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(s.Tensors) == 0 {
		return s.Series, nil
	}
	c, err := stress.CriterionFor(s.Criterion)
	if err != nil {
		return nil, err
	}
	return stress.Series(s.Tensors, c)
}

// Load reads a job file, picking the decoder by extension.
func Load(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open job file: %w", err)
	}
	defer f.Close()

	var j Job
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&j); err != nil {
			return nil, fmt.Errorf("decode yaml job %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.NewDecoder(f).Decode(&j)
		if err != nil {
			return nil, fmt.Errorf("decode toml job %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml job %s: unknown keys %v: %w", path, undecoded, ErrInvalidJob)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

// Validate checks the parts of a job that can fail before anything runs.
func (j *Job) Validate() error {
	for i, ip := range j.Interpolations {
		if _, err := ndinterp.MethodFor(ip.Method); err != nil {
			return fmt.Errorf("interpolation %d (%s): %w", i, ip.Name, err)
		}
		if ip.Tolerance < 0 {
			return fmt.Errorf("interpolation %d (%s): negative tolerance: %w", i, ip.Name, ErrInvalidJob)
		}
		for k, p := range ip.Points {
			if !p.Point().Finite() || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
				return fmt.Errorf("interpolation %d (%s): point %d is not finite: %w", i, ip.Name, k, ErrInvalidJob)
			}
		}
		for k, t := range ip.Targets {
			if !geom.NewPoint(t...).Finite() {
				return fmt.Errorf("interpolation %d (%s): target %d is not finite: %w", i, ip.Name, k, ErrInvalidJob)
			}
		}
	}
	for i, s := range j.Rainflow {
		if err := s.validate(); err != nil {
			return fmt.Errorf("rainflow %d (%s): %w", i, s.Name, err)
		}
	}
	return nil
}
