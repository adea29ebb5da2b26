package interval

import (
	"fmt"

	"github.com/kingrea/mediaseq/internal/seqerr"
)

// Interval is a half-open [Start, End) range of the media timeline, in seconds.
// Intervals are compared by value; they carry no identity of their own.
type Interval struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

// Validate checks that both bounds are valid times and that Start < End.
func (iv Interval) Validate() error {
	if !seqerr.ValidTime(iv.Start) {
		return seqerr.Invalid("interval start %v is not a valid time", iv.Start)
	}
	if !seqerr.ValidTime(iv.End) {
		return seqerr.Invalid("interval end %v is not a valid time", iv.End)
	}
	if iv.End <= iv.Start {
		return seqerr.Invalid("interval end %v must be after start %v", iv.End, iv.Start)
	}
	return nil
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Contains reports whether t falls inside [Start, End).
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Start && t < iv.End
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g)", iv.Start, iv.End)
}
