// internal/tui/app.go
//
// This is the interactive player for mediaseq. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: the sequencer, the media driver and what is on screen
// 2. Update: keys start sessions, ticks pump the media element
// 3. View: timeline, sequence list, event feed and journal
//
// Every time-advance notification is delivered from Update, so the
// sequencer only ever runs on the bubbletea goroutine.

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/mediaseq/internal/events"
	"github.com/kingrea/mediaseq/internal/interval"
	"github.com/kingrea/mediaseq/internal/logbook"
	"github.com/kingrea/mediaseq/internal/media"
	"github.com/kingrea/mediaseq/internal/sequencer"
)

const (
	defaultTick = 50 * time.Millisecond
	feedLimit   = 8
)

// Logger records UI diagnostics. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook shows the tail of the playback journal.
func WithLogbook(book *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = book
	}
}

// WithTick sets how often the media element is pumped.
func WithTick(d time.Duration) AppOption {
	return func(a *App) {
		if d > 0 {
			a.tick = d
		}
	}
}

// WithMediaLabel names the media in the header.
func WithMediaLabel(label string) AppOption {
	return func(a *App) {
		a.mediaLabel = label
	}
}

// WithLogger records key actions and errors.
func WithLogger(l Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

type tickMsg time.Time

// sequenceItem adapts an interval to the list component.
type sequenceItem struct {
	index int
	iv    interval.Interval
}

func (i sequenceItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.index+1, i.iv)
}

func (i sequenceItem) Description() string {
	return fmt.Sprintf("%.1fs", i.iv.Duration())
}

func (i sequenceItem) FilterValue() string {
	return i.iv.String()
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	seq        *sequencer.Sequencer
	driver     media.Driver
	logbook    *logbook.Logbook
	logger     Logger
	tick       time.Duration
	lastTick   time.Time
	mediaLabel string

	// UI components
	sequences list.Model
	timeline  progress.Model
	feed      []string
	statusMsg string
	err       error

	// Window size (we get this from bubbletea)
	width  int
	height int

	subscription events.Subscription
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// NewApp wires the player to a sequencer and the driver pumping its element.
func NewApp(seq *sequencer.Sequencer, driver media.Driver, opts ...AppOption) *App {
	a := &App{
		seq:        seq,
		driver:     driver,
		logger:     nopLogger{},
		tick:       defaultTick,
		mediaLabel: "media",
		timeline:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		statusMsg:  "a → play all    enter → play selected    n/b → next/previous",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.sequences = newSequenceList(seq.Sequences())
	a.subscription = seq.SubscribeAll(a.onEvent)
	return a
}

func newSequenceList(intervals []interval.Interval) list.Model {
	items := make([]list.Item, len(intervals))
	for i, iv := range intervals {
		items[i] = sequenceItem{index: i, iv: iv}
	}
	l := list.New(items, list.NewDefaultDelegate(), 40, 14)
	l.Title = "Sequences"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.scheduleTick()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sequences.SetSize(max(20, msg.Width/2-6), max(6, msg.Height-16))
		a.timeline.Width = max(20, msg.Width-8)
		return a, nil

	case tickMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !a.lastTick.IsZero() {
			elapsed = now.Sub(a.lastTick)
		}
		a.lastTick = now
		a.driver.Step(elapsed)
		return a, a.scheduleTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			a.seq.Stop()
			a.subscription.Close()
			return a, tea.Quit
		case "enter":
			item, ok := a.sequences.SelectedItem().(sequenceItem)
			if !ok {
				return a, nil
			}
			a.report(fmt.Sprintf("Playing %s", item.iv), a.seq.PlayFrom(item.iv.Start, item.iv.End))
			return a, nil
		case "n":
			played, err := a.seq.PlayNext()
			a.reportPlayed("next", played, err)
			return a, nil
		case "b":
			played, err := a.seq.PlayPrevious()
			a.reportPlayed("previous", played, err)
			return a, nil
		case "a":
			a.report("Playing all sequences", a.seq.PlayAll())
			return a, nil
		case " ", "space":
			if a.seq.Paused() {
				a.seq.Play()
				a.statusMsg = "Resumed"
			} else {
				a.seq.Pause()
				a.statusMsg = "Paused"
			}
			return a, nil
		case "s":
			a.seq.Stop()
			a.statusMsg = "Stopped"
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.sequences, cmd = a.sequences.Update(msg)
	return a, cmd
}

func (a *App) scheduleTick() tea.Cmd {
	return tea.Tick(a.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) onEvent(evt events.Event) {
	line := fmt.Sprintf("%6.2fs  %s", evt.Time, evt.Kind)
	if evt.HasInterval {
		line += "  " + evt.Interval.String()
	}
	a.feed = append(a.feed, line)
	if len(a.feed) > feedLimit {
		a.feed = a.feed[len(a.feed)-feedLimit:]
	}
	switch evt.Kind {
	case events.KindAllFinished:
		a.statusMsg = "All sequences finished"
	case events.KindSegmentFinished:
		a.statusMsg = fmt.Sprintf("Sequence finished at %.2fs", evt.Time)
	}
}

func (a *App) report(status string, err error) {
	if err != nil {
		a.err = err
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		a.logger.Printf("tui: %v", err)
		return
	}
	a.err = nil
	a.statusMsg = status
}

func (a *App) reportPlayed(direction string, played bool, err error) {
	if err == nil && !played {
		a.err = nil
		a.statusMsg = fmt.Sprintf("No %s sequence", direction)
		return
	}
	a.report(fmt.Sprintf("Playing %s sequence", direction), err)
}
