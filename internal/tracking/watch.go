// Package tracking follows the cursor while other code moves it.
package tracking

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Positioner reads the current cursor location.
type Positioner interface {
	Position() (x, y float64, err error)
}

// Sample is one observed cursor location.
type Sample struct {
	X, Y    float64
	Elapsed time.Duration // since Watch started
}

// Watch polls p rate times per second and calls fn whenever the position
// differs from the previous sample. The first sample is always delivered.
// It returns nil when ctx is done, or the first error from p.
func Watch(ctx context.Context, p Positioner, rate float64, fn func(Sample)) error {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return fmt.Errorf("watch rate must be positive and finite, got %v", rate)
	}
	interval := time.Duration(float64(time.Second) / rate)
	if interval <= 0 {
		interval = 1
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	started := time.Now()
	var last Sample
	first := true
	for {
		x, y, err := p.Position()
		if err != nil {
			return fmt.Errorf("watch cursor: %w", err)
		}
		if first || x != last.X || y != last.Y {
			last = Sample{X: x, Y: y, Elapsed: time.Since(started)}
			first = false
			fn(last)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
