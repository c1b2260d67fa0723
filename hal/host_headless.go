//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStop may be returned by a step function to end a run cleanly.
var ErrStop = errors.New("hal: stop")

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz int
	// Ticks stops the run after N steps; 0 runs until ctx is done.
	Ticks uint64
	// Realtime paces steps with a ticker. Otherwise steps run back to back.
	Realtime bool
}

// RunHeadless drives the app without opening a window. The clock advances by
// exactly one tick period per step whether or not the run is paced.
func RunHeadless(ctx context.Context, cfg Config, hc HeadlessConfig, newApp func(HAL) (func() error, error)) error {
	if hc.Hz <= 0 {
		hc.Hz = 60
	}
	d := time.Second / time.Duration(hc.Hz)
	if d <= 0 {
		return fmt.Errorf("hal: invalid headless hz: %d", hc.Hz)
	}

	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	var tickC <-chan time.Time
	if hc.Realtime {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		h.t.stepFixed(d)
		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
		tick++
		if hc.Ticks > 0 && tick >= hc.Ticks {
			return nil
		}
	}
}
