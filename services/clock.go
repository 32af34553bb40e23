// services/clock.go
package services

import "time"

// Clock supplies the current instant. Every timezone computation depends on
// "now", so services take a Clock instead of calling time.Now directly and
// tests pin it to a fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the wall-clock implementation used in production.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the given instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
