package clock

import "time"

// Clock supplies the current time to the pick countdown
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
