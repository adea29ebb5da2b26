package interval

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/kingrea/mediaseq/internal/seqerr"
)

func fixture() []Interval {
	return []Interval{
		{Start: 20, End: 25},
		{Start: 12, End: 14},
		{Start: 12, End: 18},
		{Start: 10, End: 15},
	}
}

func newFixtureSet(t *testing.T, tb TieBreak) *Set {
	t.Helper()
	set, err := NewSet(tb, fixture()...)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func TestAddSortsByStartThenPolicy(t *testing.T) {
	cases := []struct {
		name string
		tb   TieBreak
		want []Interval
	}{
		{"longest first", LongestFirst, []Interval{{10, 15}, {12, 18}, {12, 14}, {20, 25}}},
		{"shortest first", ShortestFirst, []Interval{{10, 15}, {12, 14}, {12, 18}, {20, 25}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := newFixtureSet(t, tc.tb)
			if got := set.All(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("sorted order = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAddRejectsMalformedIntervalsWithoutChanges(t *testing.T) {
	set := newFixtureSet(t, LongestFirst)
	before := set.All()
	bad := [][]Interval{
		{{Start: 5, End: 5}},
		{{Start: 8, End: 3}},
		{{Start: -1, End: 3}},
		{{Start: math.NaN(), End: 3}},
		{{Start: 1, End: math.Inf(1)}},
		{{Start: 1, End: 2}, {Start: 4, End: 2}},
	}
	for _, intervals := range bad {
		if _, err := set.Add(intervals...); !errors.Is(err, seqerr.ErrInvalidArgument) {
			t.Fatalf("Add(%v) error = %v, want ErrInvalidArgument", intervals, err)
		}
	}
	if got := set.All(); !reflect.DeepEqual(got, before) {
		t.Fatalf("failed Add mutated set: %v", got)
	}
}

func TestAddEmptyKeepsOrder(t *testing.T) {
	set := newFixtureSet(t, LongestFirst)
	before := set.All()
	if _, err := set.Add(); err != nil {
		t.Fatalf("Add(): %v", err)
	}
	if got := set.All(); !reflect.DeepEqual(got, before) {
		t.Fatalf("Add() changed order: %v", got)
	}
}

func TestAddIsStableForIdenticalIntervals(t *testing.T) {
	set, err := NewSet(LongestFirst, Interval{1, 2}, Interval{1, 2}, Interval{0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := set.Add(Interval{1, 2}); err != nil {
		t.Fatal(err)
	}
	want := []Interval{{0, 4}, {1, 2}, {1, 2}, {1, 2}}
	if got := set.All(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextStrict(t *testing.T) {
	set := newFixtureSet(t, LongestFirst)
	cases := []struct {
		ref  float64
		want Interval
		ok   bool
	}{
		{0, Interval{10, 15}, true},
		{10, Interval{12, 18}, true},
		{11, Interval{12, 18}, true},
		{12, Interval{20, 25}, true},
		{19.5, Interval{20, 25}, true},
		{20, Interval{}, false},
		{30, Interval{}, false},
	}
	for _, tc := range cases {
		got, ok := set.Next(tc.ref, false)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Next(%v) = %v,%v want %v,%v", tc.ref, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNextShortestFirstTieBreak(t *testing.T) {
	set := newFixtureSet(t, ShortestFirst)
	got, ok := set.Next(11, false)
	if !ok || got != (Interval{12, 14}) {
		t.Fatalf("Next(11) = %v,%v want [12, 14)", got, ok)
	}
}

func TestNextOverlap(t *testing.T) {
	set := newFixtureSet(t, LongestFirst)
	cases := []struct {
		ref  float64
		want Interval
		ok   bool
	}{
		{11, Interval{10, 15}, true},
		// an interval starting exactly at ref is in progress
		{12, Interval{10, 15}, true},
		// {10,15} ends at 15 and is excluded
		{15, Interval{12, 18}, true},
		{18, Interval{20, 25}, true},
		{20, Interval{20, 25}, true},
		{25, Interval{}, false},
	}
	for _, tc := range cases {
		got, ok := set.Next(tc.ref, true)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Next(%v, overlap) = %v,%v want %v,%v", tc.ref, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNextTieBreakIsDeterministic(t *testing.T) {
	set := newFixtureSet(t, LongestFirst)
	first, _ := set.Next(11, false)
	for i := 0; i < 50; i++ {
		if got, _ := set.Next(11, false); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestNextSweepIsMonotonic(t *testing.T) {
	for _, overlap := range []bool{false, true} {
		set := newFixtureSet(t, LongestFirst)
		last := math.Inf(-1)
		for ref := 0.0; ref <= 30; ref += 0.25 {
			iv, ok := set.Next(ref, overlap)
			if !ok {
				continue
			}
			if iv.Start < last {
				t.Fatalf("overlap=%v ref=%v: start %v went backwards from %v", overlap, ref, iv.Start, last)
			}
			last = iv.Start
			if iv.Start <= ref && !(overlap && iv.End > ref) {
				t.Fatalf("overlap=%v ref=%v: returned %v which is not after ref", overlap, ref, iv)
			}
		}
	}
}

func TestPreviousAndFirst(t *testing.T) {
	set := newFixtureSet(t, LongestFirst)
	if iv, ok := set.First(); !ok || iv != (Interval{10, 15}) {
		t.Fatalf("First() = %v,%v", iv, ok)
	}
	if iv, ok := set.Previous(22); !ok || iv != (Interval{20, 25}) {
		t.Fatalf("Previous(22) = %v,%v", iv, ok)
	}
	if iv, ok := set.Previous(20); !ok || iv != (Interval{12, 14}) {
		t.Fatalf("Previous(20) = %v,%v", iv, ok)
	}
	if _, ok := set.Previous(10); ok {
		t.Fatalf("Previous(10) should be empty")
	}
	empty, _ := NewSet(LongestFirst)
	if _, ok := empty.First(); ok {
		t.Fatalf("First() on empty set should be empty")
	}
}

func TestParseTieBreak(t *testing.T) {
	cases := map[string]TieBreak{
		"":               LongestFirst,
		"longest-first":  LongestFirst,
		" Shortest ":     ShortestFirst,
		"shortest-first": ShortestFirst,
	}
	for in, want := range cases {
		got, err := ParseTieBreak(in)
		if err != nil || got != want {
			t.Fatalf("ParseTieBreak(%q) = %v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseTieBreak("random"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestIntervalContainsIsHalfOpen(t *testing.T) {
	iv := Interval{Start: 10, End: 15}
	for at, want := range map[float64]bool{9.99: false, 10: true, 14.99: true, 15: false} {
		if got := iv.Contains(at); got != want {
			t.Errorf("Contains(%v) = %v, want %v", at, got, want)
		}
	}
}
