package draft

import (
	"fmt"
	"time"
)

// Countdown is the cosmetic per-pick timer. It never forces a pick.
type Countdown struct {
	StartedAt time.Time     `json:"startedAt"`
	Limit     time.Duration `json:"limit"`
}

// Remaining returns time left on the clock, clamped at zero
func (c Countdown) Remaining(now time.Time) time.Duration {
	left := c.Limit - now.Sub(c.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the clock has run out
func (c Countdown) Expired(now time.Time) bool {
	return c.Remaining(now) == 0
}

// TimerActive reports whether the countdown still runs at this point in the draft
func TimerActive(picksMade, cutoff int) bool {
	return picksMade < cutoff
}

// FormatClock renders a duration as M:SS
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
