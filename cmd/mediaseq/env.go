package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/kingrea/mediaseq/internal/config"
	"github.com/kingrea/mediaseq/internal/events"
	"github.com/kingrea/mediaseq/internal/logbook"
	"github.com/kingrea/mediaseq/internal/logging"
	"github.com/kingrea/mediaseq/internal/media"
	"github.com/kingrea/mediaseq/internal/media/beepmedia"
	"github.com/kingrea/mediaseq/internal/sequencer"
)

// env bundles everything a playback command needs.
type env struct {
	cfg     *config.Config
	logger  *logging.Logger
	book    *logbook.Logbook
	driver  media.Driver
	seq     *sequencer.Sequencer
	label   string
	tick    time.Duration
	journal events.Subscription
	closers []func() error
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	dir, err := filepath.Abs(c.GlobalString("dir"))
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}
	return config.Load(afero.NewOsFs(), dir)
}

// openEnv loads the project and builds the media element and sequencer.
func openEnv(c *cli.Context) (*env, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, tick: cfg.Tick()}
	if override := c.GlobalDuration("tick"); override > 0 {
		e.tick = override
	}

	e.logger, err = logging.New(cfg.ProjectDir)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, e.logger.Close)

	e.book, err = logbook.New(cfg.JournalPath())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := e.openMedia(); err != nil {
		e.Close()
		return nil, err
	}

	e.seq, err = sequencer.New(e.driver,
		sequencer.WithTieBreak(cfg.TieBreak()),
		sequencer.WithIntervals(cfg.Sequences()...),
		sequencer.WithLogger(e.logger),
	)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.journal = e.seq.RecordTo(e.book)
	e.logger.Printf("opened %s (%s, %.2fs, %d sequences)", e.label, cfg.Project.Media.Source, e.driver.Duration(), len(cfg.Sequences()))
	return e, nil
}

func (e *env) openMedia() error {
	m := e.cfg.Project.Media
	switch m.Source {
	case config.SourceFile:
		player, err := beepmedia.Open(e.cfg.MediaPath(), beepmedia.WithLogger(e.logger))
		if err != nil {
			return fmt.Errorf("open media: %w", err)
		}
		e.driver = player
		e.label = filepath.Base(m.Path)
		e.closers = append(e.closers, player.Close)
	default:
		clock := media.NewClock(m.Duration)
		clock.SetRate(e.cfg.Project.Playback.Rate)
		e.driver = clock
		e.label = fmt.Sprintf("clock %gs", m.Duration)
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() error {
	if e == nil {
		return nil
	}
	e.journal.Close()
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
