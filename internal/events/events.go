package events

import (
	"fmt"
	"strings"

	"github.com/kingrea/mediaseq/internal/interval"
)

// Kind names a notification emitted by a sequencer.
type Kind string

const (
	// KindStarted fires when a playback session begins.
	KindStarted Kind = "started"
	// KindSegmentFinished fires when a one-shot session reaches its end time.
	// Listeners may call PreventDefault to keep playback running.
	KindSegmentFinished Kind = "segment-finished"
	// KindAllFinished fires once when play-all runs out of intervals.
	KindAllFinished Kind = "all-finished"
	// KindPostponed fires when play-all extends into an overlapping interval.
	KindPostponed Kind = "postponed"
	// KindAdvancing fires when play-all seeks across a gap to the next interval.
	KindAdvancing Kind = "advancing"
)

// Event is the payload delivered to handlers.
type Event struct {
	Kind Kind
	// Time is the end time for segment-finished and the playback time otherwise.
	Time float64
	// Interval is the interval the event refers to, when HasInterval is set.
	Interval    interval.Interval
	HasInterval bool

	cancel func()
}

// WithCancel attaches the handle invoked by PreventDefault.
func (e Event) WithCancel(cancel func()) Event {
	e.cancel = cancel
	return e
}

// PreventDefault invokes the event's cancellation handle. It is a no-op for
// events that carry none.
func (e Event) PreventDefault() {
	if e.cancel != nil {
		e.cancel()
	}
}

// Cancelable reports whether PreventDefault has any effect.
func (e Event) Cancelable() bool {
	return e.cancel != nil
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %g", e.Kind, e.Time)
	if e.HasInterval {
		fmt.Fprintf(&b, " %s", e.Interval)
	}
	return b.String()
}

// Handler consumes events synchronously.
type Handler func(Event)

// Logger records hub diagnostics. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}
