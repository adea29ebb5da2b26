package sequencer

import (
	"fmt"
	"math"

	"github.com/kingrea/mediaseq/internal/events"
	"github.com/kingrea/mediaseq/internal/interval"
	"github.com/kingrea/mediaseq/internal/media"
	"github.com/kingrea/mediaseq/internal/scheduler"
	"github.com/kingrea/mediaseq/internal/seqerr"
)

// ToEnd as an end time plays through to the end of the media.
const ToEnd = 0

// Mode identifies the kind of playback session.
type Mode string

const (
	ModeSegment Mode = "segment"
	ModeAll     Mode = "all"
)

// Session is a snapshot of the live playback session.
type Session struct {
	Mode     Mode
	State    scheduler.State
	Target   float64
	Deadline float64
	Interval interval.Interval
	Bound    bool
}

type session struct {
	mode        Mode
	sched       *scheduler.Scheduler
	unsubscribe func()
	retired     bool
}

// Sequencer plays intervals of a media element.
type Sequencer struct {
	el       media.Element
	set      *interval.Set
	hub      *events.Hub
	logger   Logger
	tieBreak interval.TieBreak
	seed     []interval.Interval

	current *session
}

// New builds a sequencer around el.
func New(el media.Element, opts ...Option) (*Sequencer, error) {
	if el == nil {
		return nil, fmt.Errorf("sequencer: media element is required")
	}
	s := &Sequencer{
		el:       el,
		logger:   nopLogger{},
		tieBreak: interval.LongestFirst,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.hub = events.NewHub(events.HubWithLogger(s.logger))
	set, err := interval.NewSet(s.tieBreak)
	if err != nil {
		return nil, err
	}
	s.set = set
	if err := s.Add(s.seed...); err != nil {
		return nil, err
	}
	s.seed = nil
	return s, nil
}

// Add validates intervals and merges them into the set. When the media
// duration is known, intervals must end within it.
func (s *Sequencer) Add(intervals ...interval.Interval) error {
	if duration := s.el.Duration(); knownDuration(duration) {
		for i, iv := range intervals {
			if iv.End > duration {
				return fmt.Errorf("sequencer: intervals[%d]: %w", i,
					seqerr.OutOfRange("interval %s ends after media duration %g", iv, duration))
			}
		}
	}
	if _, err := s.set.Add(intervals...); err != nil {
		return fmt.Errorf("sequencer: %w", err)
	}
	return nil
}

// Next returns the interval following ref; see interval.Set.Next.
func (s *Sequencer) Next(ref float64, overlap bool) (interval.Interval, bool) {
	return s.set.Next(ref, overlap)
}

// Previous returns the last interval starting before ref.
func (s *Sequencer) Previous(ref float64) (interval.Interval, bool) {
	return s.set.Previous(ref)
}

// Sequences returns the intervals in playback order.
func (s *Sequencer) Sequences() []interval.Interval {
	return s.set.All()
}

// TieBreak reports the ordering policy for intervals sharing a start.
func (s *Sequencer) TieBreak() interval.TieBreak {
	return s.set.TieBreak()
}

// Subscribe registers handler for events of the given kind.
func (s *Sequencer) Subscribe(kind events.Kind, handler events.Handler) events.Subscription {
	return s.hub.Subscribe(kind, handler)
}

// SubscribeAll registers handler for every event.
func (s *Sequencer) SubscribeAll(handler events.Handler) events.Subscription {
	return s.hub.SubscribeAll(handler)
}

// PlayFrom plays [start, end). An end of ToEnd plays to the media's
// duration; an end beyond the duration is clamped to it. Reaching end pauses
// playback and emits segment-finished unless a listener prevents it.
func (s *Sequencer) PlayFrom(start, end float64) error {
	if !seqerr.ValidTime(start) {
		return fmt.Errorf("sequencer: %w", seqerr.Invalid("start time %v is not a valid media time", start))
	}
	duration := s.el.Duration()
	if knownDuration(duration) && start >= duration {
		return fmt.Errorf("sequencer: %w", seqerr.OutOfRange("start time %g must be lower than duration %g", start, duration))
	}
	if math.IsNaN(end) {
		return fmt.Errorf("sequencer: %w", seqerr.Invalid("end time is not a valid media time"))
	}
	switch {
	case end == ToEnd && !knownDuration(duration):
		end = math.Inf(1)
	case end == ToEnd, knownDuration(duration) && end > duration:
		end = duration
	}
	if end <= start {
		return fmt.Errorf("sequencer: %w", seqerr.OutOfRange("end time %g must be after start time %g", end, start))
	}

	sess := &session{mode: ModeSegment}
	sess.sched = scheduler.New(end, func(_ *scheduler.Scheduler, now float64) bool {
		s.finishSegment(sess, end, now)
		return true
	})
	s.begin(sess, start)
	s.logger.Printf("sequencer: playing %g -> %g", start, end)
	s.hub.Emit(events.Event{
		Kind:        events.KindStarted,
		Time:        start,
		Interval:    interval.Interval{Start: start, End: end},
		HasInterval: true,
	})
	if s.current == sess {
		s.el.Play()
	}
	return nil
}

// PlayNext plays the interval after the current playback position. It
// reports false, without side effects, when no interval follows.
func (s *Sequencer) PlayNext() (bool, error) {
	return s.PlayNextAfter(s.el.CurrentTime())
}

// PlayNextAfter plays the interval following ref.
func (s *Sequencer) PlayNextAfter(ref float64) (bool, error) {
	next, ok := s.set.Next(ref, false)
	if !ok {
		return false, nil
	}
	return true, s.PlayFrom(next.Start, next.End)
}

// PlayPrevious plays the last interval starting before the current position.
// Inside an interval this restarts it.
func (s *Sequencer) PlayPrevious() (bool, error) {
	prev, ok := s.set.Previous(s.el.CurrentTime())
	if !ok {
		return false, nil
	}
	return true, s.PlayFrom(prev.Start, prev.End)
}

// PlayAll plays every interval in order. Overlapping or abutting intervals
// extend the current target without seeking; gaps are skipped by seeking to
// the next interval's start.
func (s *Sequencer) PlayAll() error {
	first, ok := s.set.First()
	if !ok {
		return fmt.Errorf("sequencer: %w", seqerr.OutOfRange("no sequence to play"))
	}
	sess := &session{mode: ModeAll}
	sess.sched = scheduler.NewForInterval(first, func(sched *scheduler.Scheduler, now float64) bool {
		return s.advance(sess, sched, now)
	})
	s.begin(sess, first.Start)
	s.logger.Printf("sequencer: playing all %d sequences from %s", s.set.Len(), first)
	s.hub.Emit(events.Event{
		Kind:        events.KindStarted,
		Time:        first.Start,
		Interval:    first,
		HasInterval: true,
	})
	if s.current == sess {
		s.el.Play()
	}
	return nil
}

// Stop ends the live session, if any, and pauses playback. No events fire.
func (s *Sequencer) Stop() {
	if s.current == nil {
		return
	}
	s.retire(s.current)
	s.el.Pause()
}

// Active describes the live session.
func (s *Sequencer) Active() (Session, bool) {
	if s.current == nil {
		return Session{}, false
	}
	sched := s.current.sched
	iv, bound := sched.Active()
	return Session{
		Mode:     s.current.mode,
		State:    sched.State(),
		Target:   sched.Target(),
		Deadline: sched.Deadline(),
		Interval: iv,
		Bound:    bound,
	}, true
}

func (s *Sequencer) Play()                { s.el.Play() }
func (s *Sequencer) Pause()               { s.el.Pause() }
func (s *Sequencer) Paused() bool         { return s.el.Paused() }
func (s *Sequencer) Seek(t float64)       { s.el.Seek(t) }
func (s *Sequencer) CurrentTime() float64 { return s.el.CurrentTime() }
func (s *Sequencer) Duration() float64    { return s.el.Duration() }

// begin retires the previous session, seeks, and subscribes sess to
// time-advance notifications.
func (s *Sequencer) begin(sess *session, start float64) {
	if s.current != nil {
		s.retire(s.current)
	}
	s.current = sess
	s.el.Seek(start)
	sess.unsubscribe = s.el.OnTimeUpdate(func(now float64) {
		if sess.retired {
			return
		}
		if sess.sched.Tick(now) {
			s.retire(sess)
		}
	})
}

func (s *Sequencer) retire(sess *session) {
	if sess.retired {
		return
	}
	sess.retired = true
	if sess.unsubscribe != nil {
		sess.unsubscribe()
	}
	if s.current == sess {
		s.current = nil
	}
}

func (s *Sequencer) finishSegment(sess *session, end, now float64) {
	prevented := false
	evt := events.Event{Kind: events.KindSegmentFinished, Time: end}.WithCancel(func() {
		prevented = true
	})
	s.logger.Printf("sequencer: segment finished at %g (position %g)", end, now)
	s.hub.Emit(evt)
	// A listener that stopped or replaced the session owns the element now.
	if prevented || sess.retired {
		return
	}
	s.el.Pause()
}

func (s *Sequencer) advance(sess *session, sched *scheduler.Scheduler, now float64) bool {
	active, _ := sched.Active()
	next, ok := s.set.Next(now, true)
	if !ok {
		s.el.Pause()
		s.logger.Printf("sequencer: all sequences finished at %g", now)
		s.hub.Emit(events.Event{Kind: events.KindAllFinished, Time: now})
		return true
	}
	evt := events.Event{Time: now, Interval: next, HasInterval: true}
	if next.Start <= active.End {
		evt.Kind = events.KindPostponed
		s.hub.Emit(evt)
		if sess.retired {
			return true
		}
		sched.PostponeToIntervalEnd(next)
		s.logger.Printf("sequencer: postponed to %s", next)
		return false
	}
	evt.Kind = events.KindAdvancing
	s.hub.Emit(evt)
	if sess.retired {
		return true
	}
	sched.PostponeToIntervalStart(next)
	s.el.Seek(next.Start)
	s.logger.Printf("sequencer: advancing to %s", next)
	return false
}

func knownDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}
