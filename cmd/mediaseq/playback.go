package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/kingrea/mediaseq/internal/events"
	"github.com/kingrea/mediaseq/internal/media"
)

// statusLine is read by the progress renderer goroutine.
type statusLine struct {
	mu   sync.Mutex
	text string
}

func (s *statusLine) set(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *statusLine) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// runHeadless starts playback and pumps the media element until an event
// of the terminal kind arrives or the process is interrupted. start reports
// whether anything began playing.
func runHeadless(e *env, terminal events.Kind, start func() (bool, error)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		status statusLine
		feed   []string
		done   bool
	)
	sub := e.seq.SubscribeAll(func(evt events.Event) {
		feed = append(feed, evt.String())
		status.set(string(evt.Kind))
		if evt.Kind == terminal {
			done = true
			cancel()
		}
	})
	defer sub.Close()

	played, err := start()
	if err != nil || !played {
		return err
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithRefreshRate(100*time.Millisecond))
	bar := newTimelineBar(p, e.label, e.driver.Duration(), &status)
	bar.SetCurrent(millis(e.driver.CurrentTime()))
	remove := e.driver.OnTimeUpdate(func(t float64) {
		bar.SetCurrent(millis(t))
	})
	defer remove()

	runErr := media.Run(ctx, e.driver, e.tick)
	if done {
		bar.SetTotal(-1, true)
	} else {
		e.seq.Stop()
		bar.Abort(false)
	}
	p.Wait()

	for _, line := range feed {
		fmt.Println(line)
	}
	if !done {
		fmt.Println("Interrupted")
		e.logger.Printf("playback interrupted at %.2fs", e.driver.CurrentTime())
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func newTimelineBar(p *mpb.Progress, label string, duration float64, status *statusLine) *mpb.Bar {
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")
	return p.New(millis(duration),
		barStyle,
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight}),
			decor.Any(func(s decor.Statistics) string {
				return fmt.Sprintf("%.2fs/%.2fs", float64(s.Current)/1000, float64(s.Total)/1000)
			}, decor.WC{W: 16}),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.Any(func(decor.Statistics) string {
				return " " + status.get()
			}),
		),
	)
}

func millis(seconds float64) int64 {
	return int64(seconds * 1000)
}
