package models

const (
	// UnknownPosition is reported for players missing from the league snapshot
	UnknownPosition = "?"
	// FreeAgentTeam is the NFL team reported for unknown players
	FreeAgentTeam = "FA"
	// UnknownOwnerName is shown for owners without a display name
	UnknownOwnerName = "Unknown"

	// UnrankedOverall and UnrankedPosition sort unranked players last
	UnrankedOverall  = 9999
	UnrankedPosition = 999
)

// Player represents an NFL player from the league snapshot
type Player struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

// Ranking is a dynasty value ranking for one player
type Ranking struct {
	OverallRank  int `json:"overallRank"`
	PositionRank int `json:"positionRank"`
}

// Rankings maps player IDs to rankings
type Rankings map[string]Ranking

// Lookup returns the ranking for a player, or the unranked defaults.
// Zero ranks count as unranked.
func (r Rankings) Lookup(playerID string) Ranking {
	rk, ok := r[playerID]
	if !ok {
		return Ranking{OverallRank: UnrankedOverall, PositionRank: UnrankedPosition}
	}
	if rk.OverallRank <= 0 {
		rk.OverallRank = UnrankedOverall
	}
	if rk.PositionRank <= 0 {
		rk.PositionRank = UnrankedPosition
	}
	return rk
}

// Roster is one owner's team in the league snapshot
type Roster struct {
	OwnerID   string   `json:"ownerId"`
	PlayerIDs []string `json:"playerIds"`
}

// League is the read-only league snapshot loaded at start-up
type League struct {
	Rosters    []Roster          `json:"rosters"`
	OwnerNames map[string]string `json:"ownerNames"`
	Players    map[string]Player `json:"players"`
}

// Player looks up a player, degrading to placeholder values for unknown IDs
func (l *League) Player(id string) Player {
	if l != nil {
		if p, ok := l.Players[id]; ok {
			if p.ID == "" {
				p.ID = id
			}
			if p.FullName == "" {
				p.FullName = id
			}
			if p.Position == "" {
				p.Position = UnknownPosition
			}
			if p.Team == "" {
				p.Team = FreeAgentTeam
			}
			return p
		}
	}
	return Player{ID: id, FullName: id, Position: UnknownPosition, Team: FreeAgentTeam}
}

// OwnerName returns the display name of an owner
func (l *League) OwnerName(ownerID string) string {
	if l != nil {
		if name, ok := l.OwnerNames[ownerID]; ok && name != "" {
			return name
		}
	}
	return UnknownOwnerName
}

// Roster returns the roster owned by ownerID
func (l *League) Roster(ownerID string) (Roster, bool) {
	if l == nil {
		return Roster{}, false
	}
	for _, r := range l.Rosters {
		if r.OwnerID == ownerID {
			return r, true
		}
	}
	return Roster{}, false
}

// OwnerOf returns the original owner of a rostered player
func (l *League) OwnerOf(playerID string) (string, bool) {
	if l == nil {
		return "", false
	}
	for _, r := range l.Rosters {
		for _, id := range r.PlayerIDs {
			if id == playerID {
				return r.OwnerID, true
			}
		}
	}
	return "", false
}

// HasOwner reports whether ownerID owns a roster in the league
func (l *League) HasOwner(ownerID string) bool {
	_, ok := l.Roster(ownerID)
	return ok
}

// Pick is one entry of the draft ledger
type Pick struct {
	PlayerID        string `json:"playerId"`
	OriginalOwnerID string `json:"originalOwnerId"`
	TeamID          string `json:"teamId"`
	PickNumber      int    `json:"pickNumber"`
}
