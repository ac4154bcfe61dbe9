package rainflow

import "math"

// Counter resolves cycles while samples stream in. The zero value is ready
// to use. A Counter is not safe for concurrent use.
type Counter struct {
	started bool
	last    float64
	dir     int
	// turns counts interior reversals
	turns int

	// unresolved reversals, oldest first; stack[0] is the starting point
	stack  []float64
	cycles []Cycle
}

// Push feeds the next sample of the history.
func (c *Counter) Push(v float64) {
	if !c.started {
		c.started = true
		c.last = v
		c.stack = append(c.stack, v)
		return
	}
	if v == c.last {
		return
	}
	d := direction(c.last, v)
	if c.dir != 0 && d != c.dir {
		c.turns++
		c.reversal(c.last)
	}
	c.last, c.dir = v, d
}

// Finish closes the history, counts the residue as half cycles and returns
// every cycle. A history without an interior reversal has no cycles. The
// Counter is reset afterwards.
func (c *Counter) Finish() []Cycle {
	defer c.reset()
	if c.turns == 0 {
		return nil
	}
	c.reversal(c.last)
	for i := 0; i+1 < len(c.stack); i++ {
		c.emit(c.stack[i], c.stack[i+1], HalfCycle)
	}
	return c.cycles
}

// Cycles returns the cycles resolved so far, before the residue is drained.
func (c *Counter) Cycles() []Cycle {
	out := make([]Cycle, len(c.cycles))
	copy(out, c.cycles)
	return out
}

func (c *Counter) reversal(v float64) {
	c.stack = append(c.stack, v)
	for len(c.stack) >= 3 {
		n := len(c.stack)
		x := math.Abs(c.stack[n-1] - c.stack[n-2])
		y := math.Abs(c.stack[n-2] - c.stack[n-3])
		if x < y {
			return
		}
		if n == 3 {
			// Y holds the starting point
			c.emit(c.stack[0], c.stack[1], HalfCycle)
			c.stack = append(c.stack[:0], c.stack[1:]...)
			continue
		}
		c.emit(c.stack[n-3], c.stack[n-2], FullCycle)
		c.stack = append(c.stack[:n-3], c.stack[n-1])
	}
}

func (c *Counter) emit(a, b float64, count float64) {
	c.cycles = append(c.cycles, Cycle{
		Mean:  (a + b) / 2,
		Range: math.Abs(a - b),
		Count: count,
	})
}

func (c *Counter) reset() {
	*c = Counter{}
}
