package draft

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyDraftOrder = errors.New("no teams in draft order")
var ErrNotInPool = errors.New("player is not available in the draft pool")
var ErrOwnerCapReached = errors.New("maximum picks from this team reached")
var ErrNoSelection = errors.New("no player selected")
var ErrProtectionLocked = errors.New("protections are locked")
var ErrNotLocked = errors.New("protections are not locked")
var ErrPasswordRequired = errors.New("a password is required to lock protections")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrUnknownOwner = errors.New("unknown owner")
var ErrNotOnRoster = errors.New("player is not on this owner's roster")
var ErrOrderIndex = errors.New("draft order index out of range")
var ErrPositionLimits = errors.New("position limits exceeded")
var ErrUnsupportedCommand = errors.New("unsupported command")

// OverLimitError lists every bucket over its protection limit
type OverLimitError struct {
	Overages []Overage
}

func (e *OverLimitError) Error() string {
	parts := make([]string, len(e.Overages))
	for i, o := range e.Overages {
		parts[i] = o.String()
	}
	return fmt.Sprintf("%s: %s", ErrPositionLimits, strings.Join(parts, ", "))
}

func (e *OverLimitError) Unwrap() error {
	return ErrPositionLimits
}
