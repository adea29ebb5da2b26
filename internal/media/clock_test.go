package media

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestClockAdvancesOnlyWhilePlaying(t *testing.T) {
	c := NewClock(30)
	var seen []float64
	cancel := c.OnTimeUpdate(func(now float64) { seen = append(seen, now) })
	defer cancel()
	c.Advance(1)
	if c.CurrentTime() != 0 || len(seen) != 0 {
		t.Fatalf("paused clock moved to %v and notified %v", c.CurrentTime(), seen)
	}
	c.Seek(10)
	c.Play()
	c.Advance(0.5)
	c.Advance(0.5)
	if !reflect.DeepEqual(seen, []float64{10.5, 11}) {
		t.Fatalf("notifications = %v", seen)
	}
	c.Pause()
	c.Advance(1)
	if c.CurrentTime() != 11 {
		t.Fatalf("position after pause = %v", c.CurrentTime())
	}
	if c.Plays() != 1 || c.Pauses() != 1 || !reflect.DeepEqual(c.Seeks(), []float64{10}) {
		t.Fatalf("plays=%d pauses=%d seeks=%v", c.Plays(), c.Pauses(), c.Seeks())
	}
}

func TestClockStopsAtDuration(t *testing.T) {
	c := NewClock(2)
	c.Play()
	c.Advance(5)
	if c.CurrentTime() != 2 || !c.Paused() {
		t.Fatalf("expected ended clock at 2, got %v paused=%v", c.CurrentTime(), c.Paused())
	}
}

func TestClockRate(t *testing.T) {
	c := NewClock(30)
	c.SetRate(2)
	c.Play()
	c.Advance(1)
	if math.Abs(c.CurrentTime()-2) > 1e-9 {
		t.Fatalf("position = %v, want 2", c.CurrentTime())
	}
}

func TestHandlersRemovedMidNotification(t *testing.T) {
	c := NewClock(30)
	var order []string
	var removeSecond func()
	c.OnTimeUpdate(func(float64) {
		order = append(order, "first")
		removeSecond()
	})
	removeSecond = c.OnTimeUpdate(func(float64) { order = append(order, "second") })
	c.Emit(3)
	if !reflect.DeepEqual(order, []string{"first"}) {
		t.Fatalf("order = %v", order)
	}
	if c.Subscribers() != 1 {
		t.Fatalf("subscribers = %d", c.Subscribers())
	}
}

func TestRunPumpsUntilCancelled(t *testing.T) {
	c := NewClock(30)
	c.Play()
	ticks := 0
	ctx, cancel := context.WithCancel(context.Background())
	c.OnTimeUpdate(func(float64) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	err := Run(ctx, c, 5*time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v", err)
	}
	if ticks < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks)
	}
	if c.CurrentTime() <= 0 {
		t.Fatalf("clock did not advance")
	}
}
