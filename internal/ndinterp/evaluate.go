package ndinterp

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/go-fatigue/fatigue/internal/geom"
)

// minChunk keeps tiny batches on a single goroutine.
const minChunk = 256

// evaluate runs mdl over targets in contiguous chunks, at most workers at a
// time. Each chunk writes only its own slots of the result.
func evaluate(mdl model, targets []geom.Point, workers int) ([]float64, error) {
	out := make([]float64, len(targets))
	if len(targets) == 0 {
		return out, nil
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (len(targets) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	var grp errgroup.Group
	grp.SetLimit(workers)
	for start := 0; start < len(targets); start += chunk {
		start, end := start, start+chunk
		if end > len(targets) {
			end = len(targets)
		}
		grp.Go(func() error {
			for i := start; i < end; i++ {
				v, err := mdl.predict(targets[i])
				if err != nil {
					return fmt.Errorf("target %d: %w", i, err)
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
