// Package platform holds small cross-cutting utilities.
package platform

import "time"

// Clock abstracts time for services so tests can control timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// ISO formats t as the UTC ISO-8601 string stored on records.
func ISO(t time.Time) string { return t.UTC().Format(time.RFC3339) }
