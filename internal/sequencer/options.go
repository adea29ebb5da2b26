package sequencer

import "github.com/kingrea/mediaseq/internal/interval"

// Logger records sequencer activity. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Option customizes Sequencer construction.
type Option func(*Sequencer)

// WithTieBreak selects the ordering of intervals sharing a start.
func WithTieBreak(tb interval.TieBreak) Option {
	return func(s *Sequencer) {
		s.tieBreak = tb
	}
}

// WithIntervals seeds the sequencer's interval set.
func WithIntervals(intervals ...interval.Interval) Option {
	return func(s *Sequencer) {
		s.seed = append(s.seed, intervals...)
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.logger = l
		}
	}
}
