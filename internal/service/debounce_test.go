package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurstIntoOneFire(t *testing.T) {
	var fires atomic.Int64
	d := NewDebouncer(30*time.Millisecond, time.Second, func() { fires.Add(1) })
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Signal(false)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), fires.Load(), "a burst fires exactly once, after the last signal")
}

func TestDebouncer_WindowRestartsOnEachSignal(t *testing.T) {
	var fires atomic.Int64
	d := NewDebouncer(50*time.Millisecond, time.Second, func() { fires.Add(1) })
	defer d.Stop()

	d.Signal(false)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(0), fires.Load(), "window has not elapsed yet")

	d.Signal(false)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(0), fires.Load(), "second signal restarted the window")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int64(1), fires.Load())
}

func TestDebouncer_AuthWindowIsIndependent(t *testing.T) {
	var fires atomic.Int64
	d := NewDebouncer(20*time.Millisecond, 80*time.Millisecond, func() { fires.Add(1) })
	defer d.Stop()

	d.Signal(true)
	d.Signal(false)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), fires.Load(), "general window fired, auth window still pending")

	time.Sleep(70 * time.Millisecond)
	assert.Equal(t, int64(2), fires.Load(), "auth window fires on its own schedule")
}

func TestDebouncer_StopCancelsPendingFire(t *testing.T) {
	var fires atomic.Int64
	d := NewDebouncer(30*time.Millisecond, 30*time.Millisecond, func() { fires.Add(1) })

	d.Signal(false)
	d.Signal(true)
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int64(0), fires.Load())

	d.Signal(false)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int64(0), fires.Load(), "signals after Stop are ignored")
}

func TestDebouncer_DefaultWindows(t *testing.T) {
	d := NewDebouncer(0, -time.Second, func() {})
	defer d.Stop()

	assert.Equal(t, 2*time.Second, d.window)
	assert.Equal(t, 5*time.Second, d.authWindow)
}
