// Package watcher reloads configuration when its source files change.
//
// File events are debounced through a reusable Countdown so a burst of
// writes (editors typically truncate, write, and rename) produces a single
// reload.
package watcher

import (
	"sync"
	"time"
)

// Countdown is a reusable one-shot timer. Arm starts (or restarts) the
// countdown; when it elapses the callback fires once. Cancel stops a
// pending countdown without firing. The zero value is not usable; create
// one with NewCountdown.
type Countdown struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
	gen   uint64
}

// NewCountdown creates a countdown firing fn after d.
func NewCountdown(d time.Duration, fn func()) *Countdown {
	return &Countdown{d: d, fn: fn}
}

// Arm starts the countdown, resetting it if already running. Repeated
// triggers within the window therefore coalesce into one firing.
func (c *Countdown) Arm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.d, func() {
		c.mu.Lock()
		stale := gen != c.gen
		c.mu.Unlock()
		// A stale generation means Arm or Cancel raced the firing.
		if !stale {
			c.fn()
		}
	})
}

// Cancel stops a pending countdown. Cancelling an idle countdown is a
// no-op.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
