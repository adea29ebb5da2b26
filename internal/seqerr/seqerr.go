// Package seqerr defines the error kinds returned by sequencing operations.
// Callers match them with errors.Is; every returned error wraps exactly one
// kind together with a message describing the violated precondition.
package seqerr

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument reports a malformed argument such as a non-finite or
	// negative time value or an interval whose start is not before its end.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange reports a well-formed value that falls outside the media
	// timeline or the set of playable intervals.
	ErrOutOfRange = errors.New("out of range")
)

// Invalid wraps ErrInvalidArgument with a formatted message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// OutOfRange wraps ErrOutOfRange with a formatted message.
func OutOfRange(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrOutOfRange)
}

// ValidTime reports whether t is a usable media time: finite and not negative.
func ValidTime(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 0) && t >= 0
}
