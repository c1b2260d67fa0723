//go:build !tinygo

package hal

import (
	"sync/atomic"
	"time"
)

type hostTime struct {
	ms atomic.Uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{}
}

func (t *hostTime) Millis() uint64 { return t.ms.Load() }

// stepWall advances the clock by the wall time elapsed since the last call.
func (t *hostTime) stepWall() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now

	ms := t.acc / time.Millisecond
	if ms == 0 {
		return
	}
	t.acc -= ms * time.Millisecond
	t.ms.Add(uint64(ms))
}

// stepFixed advances the clock by exactly d, rounded down to milliseconds.
func (t *hostTime) stepFixed(d time.Duration) {
	t.ms.Add(uint64(d / time.Millisecond))
}
