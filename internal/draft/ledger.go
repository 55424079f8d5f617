package draft

import "github.com/Billy-Davies-2/expansion-draft/internal/models"

// Ledger is the append-only list of draft picks
type Ledger []models.Pick

// Append returns a new ledger with the pick added and numbered len+1.
// No validation happens here.
func (l Ledger) Append(playerID, originalOwnerID, teamID string) Ledger {
	out := make(Ledger, len(l), len(l)+1)
	copy(out, l)
	return append(out, models.Pick{
		PlayerID:        playerID,
		OriginalOwnerID: originalOwnerID,
		TeamID:          teamID,
		PickNumber:      len(l) + 1,
	})
}

// DraftedIDs returns the set of player IDs already taken
func (l Ledger) DraftedIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(l))
	for _, p := range l {
		out[p.PlayerID] = struct{}{}
	}
	return out
}

// CountFromOwner counts picks taken from one original roster
func (l Ledger) CountFromOwner(ownerID string) int {
	n := 0
	for _, p := range l {
		if p.OriginalOwnerID == ownerID {
			n++
		}
	}
	return n
}

// ForTeam returns the picks made by a drafting team
func (l Ledger) ForTeam(teamID string) []models.Pick {
	var out []models.Pick
	for _, p := range l {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the pick that took playerID
func (l Ledger) Find(playerID string) (models.Pick, bool) {
	for _, p := range l {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return models.Pick{}, false
}

// Clone returns a copy
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}
