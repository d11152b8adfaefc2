package timer

import "time"

// Clock abstracts the time source so elapsed time can be simulated in
// tests instead of slept through.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the real wall-clock time source.
func SystemClock() Clock {
	return systemClock{}
}
