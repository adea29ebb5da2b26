// Package media defines the playback primitive a sequencer drives and an
// in-memory implementation of it.
package media

import (
	"context"
	"time"
)

// TimeUpdateHandler receives the playback position on every time-advance
// notification.
type TimeUpdateHandler func(currentTime float64)

// Element is a seekable media timeline. Play, Pause and Seek are requests;
// callers do not wait for them to take effect.
type Element interface {
	Play()
	Pause()
	Seek(t float64)
	CurrentTime() float64
	Duration() float64
	Paused() bool
	// OnTimeUpdate subscribes handler to time-advance notifications and
	// returns a function that removes it.
	OnTimeUpdate(handler TimeUpdateHandler) (cancel func())
}

// Driver is an Element whose notifications are pumped by the caller. Step
// reads or advances the position and notifies every handler serially, on the
// caller's goroutine.
type Driver interface {
	Element
	Step(elapsed time.Duration)
}

// Run pumps d every granularity until ctx is done.
func Run(ctx context.Context, d Driver, granularity time.Duration) error {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	ticker := time.NewTicker(granularity)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			d.Step(now.Sub(last))
			last = now
		}
	}
}

// DefaultGranularity matches the cadence browsers use for timeupdate.
const DefaultGranularity = 50 * time.Millisecond
