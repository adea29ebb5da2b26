package interval

import (
	"fmt"
	"sort"
	"sync"
)

// Set owns a sorted collection of intervals. It only grows: Add merges new
// intervals in and re-sorts. A Set is safe for concurrent use; readers always
// observe the most recent sorted state.
type Set struct {
	mu        sync.RWMutex
	tieBreak  TieBreak
	intervals []Interval
}

// NewSet creates a set ordered by the given policy, optionally seeded.
func NewSet(tieBreak TieBreak, seed ...Interval) (*Set, error) {
	s := &Set{tieBreak: tieBreak}
	if _, err := s.Add(seed...); err != nil {
		return nil, err
	}
	return s, nil
}

// TieBreak returns the ordering policy for equal starts.
func (s *Set) TieBreak() TieBreak {
	return s.tieBreak
}

// Add validates every interval, then merges them into the set. Nothing is
// added when any interval is malformed. Intervals with equal start and end
// keep their insertion order.
func (s *Set) Add(intervals ...Interval) (*Set, error) {
	for i, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return s, fmt.Errorf("intervals[%d]: %w", i, err)
		}
	}
	if len(intervals) == 0 {
		return s, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make([]Interval, 0, len(s.intervals)+len(intervals))
	merged = append(merged, s.intervals...)
	merged = append(merged, intervals...)
	sort.SliceStable(merged, func(i, j int) bool {
		return s.tieBreak.less(merged[i], merged[j])
	})
	s.intervals = merged
	return s, nil
}

// Next returns the first interval, in sorted order, with Start > ref. When
// overlap is true an interval whose End > ref also qualifies, so an interval
// already in progress at ref (including one starting exactly at ref) counts.
func (s *Set) Next(ref float64, overlap bool) (Interval, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, iv := range s.intervals {
		if iv.Start > ref || (overlap && iv.End > ref) {
			return iv, true
		}
	}
	return Interval{}, false
}

// Previous returns the last interval, in sorted order, with Start < ref.
func (s *Set) Previous(ref float64) (Interval, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.intervals) - 1; i >= 0; i-- {
		if s.intervals[i].Start < ref {
			return s.intervals[i], true
		}
	}
	return Interval{}, false
}

// First returns the earliest interval.
func (s *Set) First() (Interval, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.intervals) == 0 {
		return Interval{}, false
	}
	return s.intervals[0], true
}

// All returns a copy of the sorted intervals.
func (s *Set) All() []Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Len reports how many intervals the set holds.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.intervals)
}
