package service

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of change signals into a single trailing-edge
// fire: each signal restarts its window and the callback runs once after
// the window elapses with no further signals.
//
// Two independent windows exist because authentication-class cookie
// changes debounce on their own timer, separate from general churn. The
// callback is invoked on a timer goroutine; a slow callback delays nothing
// here, only its own execution (the timers keep accepting signals).
type Debouncer struct {
	window     time.Duration
	authWindow time.Duration
	fire       func()

	mu        sync.Mutex
	timer     *time.Timer
	authTimer *time.Timer
	stopped   bool
}

// NewDebouncer builds a debouncer with the two window durations and the
// callback to fire after quiescence. Non-positive windows fall back to
// the defaults (2s general, 5s auth).
func NewDebouncer(window, authWindow time.Duration, fire func()) *Debouncer {
	if window <= 0 {
		window = 2 * time.Second
	}
	if authWindow <= 0 {
		authWindow = 5 * time.Second
	}
	return &Debouncer{window: window, authWindow: authWindow, fire: fire}
}

// Signal notes one change event. authClass routes it to the independent
// auth window.
func (d *Debouncer) Signal(authClass bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if authClass {
		if d.authTimer != nil {
			d.authTimer.Stop()
		}
		d.authTimer = time.AfterFunc(d.authWindow, d.fire)
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Stop cancels any pending fire. A stopped debouncer ignores further
// signals.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.authTimer != nil {
		d.authTimer.Stop()
		d.authTimer = nil
	}
}
