package scheduler

import (
	"testing"

	"github.com/kingrea/mediaseq/internal/interval"
)

func TestTickWaitsForTarget(t *testing.T) {
	var calls []float64
	s := New(12, func(_ *Scheduler, now float64) bool {
		calls = append(calls, now)
		return true
	})
	for _, now := range []float64{10, 11.2, 11.99} {
		if s.Tick(now) {
			t.Fatalf("Tick(%v) completed before target", now)
		}
		if s.State() != StateArmed {
			t.Fatalf("expected armed, got %s", s.State())
		}
	}
	if !s.Tick(12.03) {
		t.Fatalf("Tick at target should complete")
	}
	if len(calls) != 1 || calls[0] != 12.03 {
		t.Fatalf("callback calls = %v", calls)
	}
	if !s.Tick(13) || len(calls) != 1 {
		t.Fatalf("completed scheduler must not fire again")
	}
	if s.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", s.State())
	}
}

func TestOnlyTrueEndsSession(t *testing.T) {
	fired := 0
	s := New(5, func(_ *Scheduler, _ float64) bool {
		fired++
		return false
	})
	s.Tick(5)
	s.Tick(6)
	if fired != 2 {
		t.Fatalf("a callback returning false stays subscribed; fired %d times", fired)
	}
	if s.State() != StateArmed {
		t.Fatalf("expected armed, got %s", s.State())
	}
}

func TestPostponeToRearmsInPlace(t *testing.T) {
	s := New(5, func(s *Scheduler, now float64) bool {
		if s.Fired() == 1 {
			s.PostponeTo(8)
			return false
		}
		return true
	})
	if s.Tick(5) {
		t.Fatalf("postponed scheduler should stay alive")
	}
	if s.Target() != 8 || s.Deadline() != 8 {
		t.Fatalf("target = %v deadline = %v, want 8", s.Target(), s.Deadline())
	}
	if s.Tick(7) {
		t.Fatalf("should wait for new target")
	}
	if !s.Tick(8) {
		t.Fatalf("should complete at new target")
	}
}

func TestIntervalBoundDeadline(t *testing.T) {
	first := interval.Interval{Start: 10, End: 15}
	overlapping := interval.Interval{Start: 12, End: 18}
	gap := interval.Interval{Start: 20, End: 25}
	s := NewForInterval(first, nil)
	if s.Deadline() != 15 {
		t.Fatalf("deadline = %v, want 15", s.Deadline())
	}
	s.PostponeToIntervalEnd(overlapping)
	if active, ok := s.Active(); !ok || active != overlapping {
		t.Fatalf("active = %v,%v", active, ok)
	}
	if s.Target() != 18 || s.Deadline() != 18 {
		t.Fatalf("target %v deadline %v, want 18", s.Target(), s.Deadline())
	}
	s.PostponeToIntervalStart(gap)
	if s.Target() != 20 {
		t.Fatalf("target = %v, want interval start 20", s.Target())
	}
	if s.Deadline() != 25 {
		t.Fatalf("deadline = %v, want interval end 25", s.Deadline())
	}
	if s.Tick(20.05) {
		t.Fatalf("bound scheduler must not fire at the interval start")
	}
	if !s.Tick(25) {
		t.Fatalf("nil callback completes the session")
	}
}

func TestPostponeAfterCompletionStaysCompleted(t *testing.T) {
	s := New(1, nil)
	s.Tick(1)
	s.PostponeTo(4)
	if s.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", s.State())
	}
}
