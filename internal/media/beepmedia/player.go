// Package beepmedia plays audio files as a media.Element using beep.
package beepmedia

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/kingrea/mediaseq/internal/media"
)

// Player exposes a decoded audio stream as a media.Driver. Stream mutations
// happen under the speaker lock because the speaker pulls samples from its
// own goroutine.
type Player struct {
	format beep.Format
	stream beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	lock   sync.Locker
	logger Logger

	handlers media.Handlers
}

// Logger receives decoder errors. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Option customizes a Player.
type Option func(*Player)

// WithLogger reports stream errors that the media.Element methods cannot
// return.
func WithLogger(l Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

var _ media.Driver = (*Player)(nil)

type speakerLocker struct{}

func (speakerLocker) Lock()   { speaker.Lock() }
func (speakerLocker) Unlock() { speaker.Unlock() }

// Open decodes path, initialises the speaker at the file's sample rate and
// queues the stream paused.
func Open(path string, opts ...Option) (*Player, error) {
	stream, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		stream.Close()
		return nil, err
	}
	p := New(stream, format, speakerLocker{}, opts...)
	speaker.Play(p.ctrl)
	return p, nil
}

// New wraps stream without touching the speaker. The caller routes p's
// output and supplies the lock guarding the stream.
func New(stream beep.StreamSeekCloser, format beep.Format, lock sync.Locker, opts ...Option) *Player {
	p := &Player{
		format: format,
		stream: stream,
		ctrl:   &beep.Ctrl{Streamer: stream, Paused: true},
		lock:   lock,
		logger: nopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Streamer is the pausable stream to hand to a speaker or mixer.
func (p *Player) Streamer() beep.Streamer {
	return p.ctrl
}

func (p *Player) Play() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.ctrl.Paused = false
}

func (p *Player) Pause() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.ctrl.Paused = true
}

func (p *Player) Seek(t float64) {
	n := p.format.SampleRate.N(time.Duration(t * float64(time.Second)))
	p.lock.Lock()
	defer p.lock.Unlock()
	if n < 0 {
		n = 0
	}
	if n > p.stream.Len() {
		n = p.stream.Len()
	}
	if err := p.stream.Seek(n); err != nil {
		p.logger.Printf("beepmedia: seek to %.2fs: %v", t, err)
	}
}

func (p *Player) CurrentTime() float64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.format.SampleRate.D(p.stream.Position()).Seconds()
}

func (p *Player) Duration() float64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.format.SampleRate.D(p.stream.Len()).Seconds()
}

// Paused reports true while the control is paused or the stream is drained.
func (p *Player) Paused() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.ctrl.Paused || p.stream.Position() >= p.stream.Len()
}

func (p *Player) OnTimeUpdate(handler media.TimeUpdateHandler) func() {
	return p.handlers.Add(handler)
}

// Step reports the position the speaker has reached. The elapsed time is
// ignored: the stream position is authoritative. A drained stream keeps
// reporting its end until paused, so targets at the very end still fire.
func (p *Player) Step(time.Duration) {
	p.lock.Lock()
	paused := p.ctrl.Paused
	p.lock.Unlock()
	if paused {
		return
	}
	p.handlers.Notify(p.CurrentTime())
}

// Close stops playback and releases the decoder.
func (p *Player) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.ctrl.Paused = true
	return p.stream.Close()
}
