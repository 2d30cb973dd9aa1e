package ratelimit

import (
	"sync"
	"time"
)

// Pacer defines the interface for inter-request pacing
type Pacer interface {
	// Pause blocks for the politeness delay
	Pause()
}

// FixedDelay pauses for a constant duration on every call. This is the
// politeness mechanism toward the upstream API: the downloader pauses
// after each photo download and after each album.
type FixedDelay struct {
	delay time.Duration

	sleepFn   func(time.Duration)
	lastMu    sync.Mutex
	lastPause time.Time
}

// NewFixedDelay creates a pacer that pauses for the given duration
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{
		delay:   delay,
		sleepFn: time.Sleep,
	}
}

// Pause blocks for the configured delay
func (f *FixedDelay) Pause() {
	if f.delay <= 0 {
		return
	}
	f.sleepFn(f.delay)

	f.lastMu.Lock()
	f.lastPause = time.Now()
	f.lastMu.Unlock()
}

// LastPause returns when the pacer last completed a pause
func (f *FixedDelay) LastPause() time.Time {
	f.lastMu.Lock()
	defer f.lastMu.Unlock()
	return f.lastPause
}
