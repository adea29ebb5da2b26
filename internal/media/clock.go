package media

import (
	"math"
	"sync"
	"time"
)

// Clock is an Element without audio: the position moves with the elapsed time
// passed to Step while playing, and stops at the duration. It counts the
// requests it receives so tests can assert on them.
type Clock struct {
	mu       sync.Mutex
	duration float64
	position float64
	playing  bool
	rate     float64
	handlers Handlers

	plays  int
	pauses int
	seeks  []float64
}

var _ Driver = (*Clock)(nil)

// NewClock returns a paused clock at position 0.
func NewClock(duration float64) *Clock {
	return &Clock{duration: duration, rate: 1}
}

// SetRate changes the playback speed multiplier.
func (c *Clock) SetRate(rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rate > 0 {
		c.rate = rate
	}
}

func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plays++
	c.playing = true
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauses++
	c.playing = false
}

func (c *Clock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeks = append(c.seeks, t)
	c.position = math.Max(0, math.Min(t, c.duration))
}

func (c *Clock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *Clock) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.playing
}

func (c *Clock) OnTimeUpdate(handler TimeUpdateHandler) func() {
	return c.handlers.Add(handler)
}

// Step advances a playing clock by elapsed and notifies handlers. A paused
// clock does not notify, like a paused media element.
func (c *Clock) Step(elapsed time.Duration) {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	c.position += elapsed.Seconds() * c.rate
	if c.position >= c.duration {
		c.position = c.duration
		c.playing = false
	}
	now := c.position
	c.mu.Unlock()
	c.handlers.Notify(now)
}

// Advance is Step expressed in seconds.
func (c *Clock) Advance(seconds float64) {
	c.Step(time.Duration(seconds * float64(time.Second)))
}

// Emit notifies handlers with an explicit position regardless of play state,
// the way a media element reports a position it jumped to.
func (c *Clock) Emit(t float64) {
	c.mu.Lock()
	c.position = t
	c.mu.Unlock()
	c.handlers.Notify(t)
}

// Plays counts Play requests.
func (c *Clock) Plays() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plays
}

// Pauses counts Pause requests.
func (c *Clock) Pauses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pauses
}

// Seeks returns the positions requested through Seek, in order.
func (c *Clock) Seeks() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, len(c.seeks))
	copy(out, c.seeks)
	return out
}

// Subscribers reports how many time-update handlers are registered.
func (c *Clock) Subscribers() int {
	return c.handlers.Len()
}
