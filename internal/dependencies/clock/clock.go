// Package clock abstracts the system time behind an interface so point and
// allow-list timestamps can be pinned in tests.
package clock

import "time"

// Clock supplies the current time for record timestamps
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
