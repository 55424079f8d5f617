package draft

import "fmt"

// CurrentDrafter returns the team on the clock when picksMade picks are in
// the ledger, using snake order: even rounds run forward, odd rounds backward.
func CurrentDrafter(order []string, picksMade int) (string, error) {
	teamCount := len(order)
	if teamCount == 0 {
		return "", ErrEmptyDraftOrder
	}

	round := picksMade / teamCount
	pickInRound := picksMade % teamCount

	var teamIndex int
	if round%2 == 0 {
		teamIndex = pickInRound
	} else {
		teamIndex = teamCount - 1 - pickInRound
	}

	return order[teamIndex], nil
}

// PickLabel formats a 1-based pick number as "round.pick", e.g. 2.01
func PickLabel(pickNumber, teamCount int) (string, error) {
	if teamCount <= 0 {
		return "", ErrEmptyDraftOrder
	}
	round := (pickNumber-1)/teamCount + 1
	pickInRound := (pickNumber-1)%teamCount + 1
	return fmt.Sprintf("%d.%02d", round, pickInRound), nil
}
