package seqerr

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestKindsAreDistinct(t *testing.T) {
	inv := Invalid("start %v", -1)
	oor := OutOfRange("start %v beyond duration %v", 40, 30)
	if !errors.Is(inv, ErrInvalidArgument) || errors.Is(inv, ErrOutOfRange) {
		t.Fatalf("Invalid must wrap only ErrInvalidArgument: %v", inv)
	}
	if !errors.Is(oor, ErrOutOfRange) || errors.Is(oor, ErrInvalidArgument) {
		t.Fatalf("OutOfRange must wrap only ErrOutOfRange: %v", oor)
	}
	if !strings.HasPrefix(oor.Error(), "start 40 beyond duration 30") {
		t.Fatalf("unexpected message %q", oor.Error())
	}
}

func TestValidTime(t *testing.T) {
	cases := []struct {
		in   float64
		want bool
	}{
		{0, true},
		{12.5, true},
		{-0.1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tc := range cases {
		if got := ValidTime(tc.in); got != tc.want {
			t.Fatalf("ValidTime(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
