package game

import (
	"sync"
	"time"
)

// Timer tracks elapsed play time with pause/resume support. It is fed to
// the leaderboard at win time and carried through save/restore; the
// engine itself owns no clocks.
type Timer struct {
	mu          sync.Mutex
	startedAt   time.Time
	accumulated time.Duration
	running     bool
	paused      bool
}

// Start begins accumulating time. No-op if already running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.startedAt = time.Now()
	t.running = true
	t.paused = false
}

// Pause stops accumulation. No-op if not running.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.accumulated += time.Since(t.startedAt)
	t.running = false
	t.paused = true
}

// Resume continues accumulation after a pause. No-op if not paused.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.paused {
		return
	}
	t.startedAt = time.Now()
	t.running = true
	t.paused = false
}

// Reset zeroes the timer and stops it.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedAt = time.Time{}
	t.accumulated = 0
	t.running = false
	t.paused = false
}

// Running reports whether the timer is accumulating.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Elapsed returns the total accumulated play time.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.accumulated + time.Since(t.startedAt)
	}
	return t.accumulated
}

// SetElapsed overwrites the accumulated time, used when resuming a saved
// game. Negative values are treated as zero.
func (t *Timer) SetElapsed(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d < 0 {
		d = 0
	}
	t.accumulated = d
	if t.running {
		t.startedAt = time.Now()
	}
}
