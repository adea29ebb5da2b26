package interval

import (
	"fmt"
	"strings"
)

// TieBreak decides the order of intervals that share the same start.
type TieBreak int

const (
	// LongestFirst places the interval ending farthest first.
	LongestFirst TieBreak = iota
	// ShortestFirst places the interval ending soonest first.
	ShortestFirst
)

func (tb TieBreak) String() string {
	switch tb {
	case LongestFirst:
		return "longest-first"
	case ShortestFirst:
		return "shortest-first"
	default:
		return fmt.Sprintf("tiebreak(%d)", int(tb))
	}
}

// ParseTieBreak maps a config value to a policy. The empty string selects
// LongestFirst.
func ParseTieBreak(value string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "longest-first", "longest":
		return LongestFirst, nil
	case "shortest-first", "shortest":
		return ShortestFirst, nil
	default:
		return LongestFirst, fmt.Errorf("unknown tie-break policy %q", value)
	}
}

// less orders a before b: ascending start, then by policy on end.
func (tb TieBreak) less(a, b Interval) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if tb == ShortestFirst {
		return a.End < b.End
	}
	return a.End > b.End
}
