package sequencer

import (
	"github.com/kingrea/mediaseq/internal/events"
	"github.com/kingrea/mediaseq/internal/logbook"
)

// RecordTo writes every event the sequencer emits to book. Close the
// returned subscription to stop recording.
func (s *Sequencer) RecordTo(book *logbook.Logbook) events.Subscription {
	return s.hub.SubscribeAll(func(evt events.Event) {
		book.Info("%s", evt)
	})
}
