// Package events is a small synchronous notification hub. Sequencers hold a
// Hub rather than embedding one, and observers register handlers per event
// kind or for every kind.
package events
