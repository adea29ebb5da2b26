package scheduler

import (
	"fmt"

	"github.com/kingrea/mediaseq/internal/interval"
)

// State enumerates the scheduler lifecycle.
type State string

const (
	StateArmed     State = "armed"
	StateFiring    State = "firing"
	StateCompleted State = "completed"
)

// CompleteFunc runs when playback reaches the scheduler's deadline. Returning
// true ends the session; returning false keeps it alive, in which case the
// callback is expected to have postponed the scheduler.
type CompleteFunc func(s *Scheduler, now float64) bool

// Scheduler tracks the end target of one playback session. When bound to an
// interval (play-all sessions) the deadline is the interval's end; otherwise
// it is the target end time.
type Scheduler struct {
	target     float64
	active     interval.Interval
	bound      bool
	state      State
	onComplete CompleteFunc
	fired      int
}

// New arms a scheduler that completes once playback reaches endTime.
func New(endTime float64, onComplete CompleteFunc) *Scheduler {
	return &Scheduler{
		target:     endTime,
		state:      StateArmed,
		onComplete: onComplete,
	}
}

// NewForInterval arms a scheduler bound to iv; it completes at iv.End.
func NewForInterval(iv interval.Interval, onComplete CompleteFunc) *Scheduler {
	return &Scheduler{
		target:     iv.End,
		active:     iv,
		bound:      true,
		state:      StateArmed,
		onComplete: onComplete,
	}
}

// Tick compares now against the deadline and runs the completion callback
// when it has been reached. It returns true once the session is over, after
// which further ticks are no-ops.
func (s *Scheduler) Tick(now float64) bool {
	if s.state == StateCompleted {
		return true
	}
	if now < s.Deadline() {
		return false
	}
	s.state = StateFiring
	s.fired++
	done := true
	if s.onComplete != nil {
		done = s.onComplete(s, now)
	}
	if done {
		s.state = StateCompleted
		return true
	}
	s.state = StateArmed
	return false
}

// PostponeTo moves the target end time.
func (s *Scheduler) PostponeTo(endTime float64) {
	s.target = endTime
	s.rearm()
}

// PostponeToIntervalStart binds iv and records its start as the target, the
// point playback resumes from. The deadline becomes iv.End.
func (s *Scheduler) PostponeToIntervalStart(iv interval.Interval) {
	s.active = iv
	s.bound = true
	s.target = iv.Start
	s.rearm()
}

// PostponeToIntervalEnd binds iv and targets its end.
func (s *Scheduler) PostponeToIntervalEnd(iv interval.Interval) {
	s.active = iv
	s.bound = true
	s.target = iv.End
	s.rearm()
}

// Deadline is the playback time at which the scheduler fires.
func (s *Scheduler) Deadline() float64 {
	if s.bound {
		return s.active.End
	}
	return s.target
}

// Target returns the most recent target time.
func (s *Scheduler) Target() float64 {
	return s.target
}

// Active returns the bound interval, if any.
func (s *Scheduler) Active() (interval.Interval, bool) {
	return s.active, s.bound
}

// State reports the lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Fired counts how many times the completion callback has run.
func (s *Scheduler) Fired() int {
	return s.fired
}

func (s *Scheduler) String() string {
	if s.bound {
		return fmt.Sprintf("scheduler(%s, active %s, target %g)", s.state, s.active, s.target)
	}
	return fmt.Sprintf("scheduler(%s, target %g)", s.state, s.target)
}

func (s *Scheduler) rearm() {
	if s.state != StateCompleted {
		s.state = StateArmed
	}
}
