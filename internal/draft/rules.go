package draft

import "time"

// Limits caps how many protected players each bucket may hold
type Limits map[Bucket]int

// LimitOrder is the order in which limits and overages are reported
var LimitOrder = []Bucket{BucketQB, BucketRB, BucketWR, BucketTE, BucketIDP, BucketK, BucketFlex, BucketSuperflex}

// Slot is a starting-lineup position on the draft board
type Slot string

const (
	SlotQB        Slot = "QB"
	SlotRB        Slot = "RB"
	SlotWR        Slot = "WR"
	SlotTE        Slot = "TE"
	SlotFlex      Slot = "FLEX"
	SlotSuperflex Slot = "SUPERFLEX"
	SlotK         Slot = "K"
	SlotDL        Slot = "DL"
	SlotLB        Slot = "LB"
	SlotDB        Slot = "DB"
)

// Accepts reports whether a player at position can occupy the slot.
// DL only takes DL; DE players never fill it.
func (s Slot) Accepts(position string) bool {
	switch s {
	case SlotFlex:
		return FlexEligible(position)
	case SlotSuperflex:
		return SuperflexEligible(position)
	default:
		return string(s) == position
	}
}

// Rules holds the tunable parameters of an expansion draft
type Rules struct {
	Limits Limits
	Slots  []Slot
	// MaxPicksPerOriginalOwner caps how many players may be taken from one roster
	MaxPicksPerOriginalOwner int
	PickTimeLimit            time.Duration
	// TimerCutoff disables the countdown once this many picks are made
	TimerCutoff int
}

func DefaultLimits() Limits {
	return Limits{
		BucketQB:        1,
		BucketRB:        2,
		BucketWR:        3,
		BucketTE:        1,
		BucketIDP:       2,
		BucketK:         1,
		BucketFlex:      3,
		BucketSuperflex: 1,
	}
}

func DefaultSlots() []Slot {
	return []Slot{
		SlotQB, SlotRB, SlotRB, SlotWR, SlotWR, SlotTE,
		SlotFlex, SlotFlex, SlotFlex, SlotSuperflex,
		SlotK, SlotDL, SlotLB, SlotDB,
	}
}

// DefaultRules returns the league's standard expansion draft rules
func DefaultRules() Rules {
	return Rules{
		Limits:                   DefaultLimits(),
		Slots:                    DefaultSlots(),
		MaxPicksPerOriginalOwner: 3,
		PickTimeLimit:            600 * time.Second,
		TimerCutoff:              100,
	}
}
