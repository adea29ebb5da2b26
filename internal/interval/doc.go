// Package interval models named ranges of a media timeline ("sequences") and
// keeps them sorted so callers can ask which interval comes after a given
// point in time. Ordering among intervals that share a start is governed by a
// TieBreak policy chosen when the Set is created.
package interval
