// Package scheduler decides, on every time-advance notification, whether the
// current playback session has reached its target. A Scheduler is created once
// per session and re-armed in place when the target moves, so a session keeps
// exactly one notification subscription no matter how often it is postponed.
package scheduler
