// Package headless drives a flock without a window, as fast as it can.
package headless

import (
	"context"
	"errors"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/simulation"
)

// ErrInvalidRun is returned when the frame count or time step cannot drive a run.
var ErrInvalidRun = errors.New("invalid headless run")

// Run steps flock frames times with a fixed dt, asking source for the target
// before every frame. It stops early when ctx is done and returns the number
// of frames actually stepped alongside ctx.Err().
func Run(ctx context.Context, flock *simulation.Flock, source simulation.TargetSource, frames int, dt float64) (int, error) {
	if frames < 0 || !(dt > 0) {
		return 0, ErrInvalidRun
	}
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}
		flock.Step(source.Target(dt), dt)
	}
	return frames, nil
}
