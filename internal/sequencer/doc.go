// Package sequencer plays a media timeline as a series of intervals. It
// composes an interval.Set, one scheduler.Scheduler per playback session and a
// media.Element, and reports progress through an events.Hub.
//
// A Sequencer is not safe for concurrent use. Call it from the goroutine that
// pumps the element's time-advance notifications; event handlers run on that
// goroutine too and may start new sessions from inside a notification.
package sequencer
