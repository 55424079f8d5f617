package mocks

import (
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/clock"
)

// MockClock is a settable Clock for tests
type MockClock struct {
	CurrentTime time.Time
}

var _ clock.Clock = (*MockClock)(nil)

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
