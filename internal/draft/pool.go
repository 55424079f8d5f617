package draft

import (
	"sort"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// AllPositions disables the pool position filter
const AllPositions = "ALL"

// PoolEntry is an undrafted, unprotected player available to pick
type PoolEntry struct {
	PlayerID        string `json:"playerId"`
	FullName        string `json:"fullName"`
	Position        string `json:"position"`
	Team            string `json:"team"`
	OriginalOwnerID string `json:"originalOwnerId"`
	OwnerName       string `json:"ownerName"`
	OverallRank     int    `json:"overallRank"`
	PositionRank    int    `json:"positionRank"`
	// Draftable is false once the original owner has lost the maximum number of players
	Draftable bool `json:"draftable"`
}

// PoolInput bundles what BuildPool derives the pool from
type PoolInput struct {
	League      *models.League
	Rankings    models.Rankings
	Protections models.Protections
	Dispersed   models.DispersedSet
	Picks       Ledger
	// MaxPerOwner of zero disables the draftable check
	MaxPerOwner int
}

// ActiveProtected returns the protections that actually shield an owner's
// players. Dispersed owners shield nothing regardless of any stored record.
func ActiveProtected(ownerID string, protections models.Protections, dispersed models.DispersedSet) map[string]struct{} {
	out := make(map[string]struct{})
	if dispersed.Has(ownerID) {
		return out
	}
	for _, id := range protections.Get(ownerID).Players {
		out[id] = struct{}{}
	}
	return out
}

// BuildPool lists every rostered player that is neither drafted nor actively
// protected, sorted by overall rank. Ties keep roster order.
func BuildPool(in PoolInput) []PoolEntry {
	if in.League == nil {
		return nil
	}
	drafted := in.Picks.DraftedIDs()

	var pool []PoolEntry
	for _, roster := range in.League.Rosters {
		protected := ActiveProtected(roster.OwnerID, in.Protections, in.Dispersed)
		ownerName := in.League.OwnerName(roster.OwnerID)
		draftable := in.MaxPerOwner <= 0 || in.Picks.CountFromOwner(roster.OwnerID) < in.MaxPerOwner

		for _, id := range roster.PlayerIDs {
			if _, ok := drafted[id]; ok {
				continue
			}
			if _, ok := protected[id]; ok {
				continue
			}
			p := in.League.Player(id)
			rk := in.Rankings.Lookup(id)
			pool = append(pool, PoolEntry{
				PlayerID:        id,
				FullName:        p.FullName,
				Position:        p.Position,
				Team:            p.Team,
				OriginalOwnerID: roster.OwnerID,
				OwnerName:       ownerName,
				OverallRank:     rk.OverallRank,
				PositionRank:    rk.PositionRank,
				Draftable:       draftable,
			})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].OverallRank < pool[j].OverallRank
	})
	return pool
}

// FilterByPosition keeps entries with an exact position match.
// An empty position or AllPositions returns the pool unchanged.
func FilterByPosition(pool []PoolEntry, position string) []PoolEntry {
	if position == "" || position == AllPositions {
		return pool
	}
	var out []PoolEntry
	for _, e := range pool {
		if e.Position == position {
			out = append(out, e)
		}
	}
	return out
}

// FindInPool returns the pool entry for playerID
func FindInPool(pool []PoolEntry, playerID string) (PoolEntry, bool) {
	for _, e := range pool {
		if e.PlayerID == playerID {
			return e, true
		}
	}
	return PoolEntry{}, false
}

// SortByPosition orders player IDs by display position, then overall rank
func SortByPosition(ids []string, players PlayerLookup, rankings models.Rankings) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := PositionRank(players.Player(out[i]).Position), PositionRank(players.Player(out[j]).Position)
		if pi != pj {
			return pi < pj
		}
		return rankings.Lookup(out[i]).OverallRank < rankings.Lookup(out[j]).OverallRank
	})
	return out
}
