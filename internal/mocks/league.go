package mocks

import (
	"github.com/Billy-Davies-2/expansion-draft/internal/league"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

type devPlayer struct {
	id, name, pos, team string
	overall, positional int
}

var devOwners = []struct {
	id, name string
	players  []devPlayer
}{
	{"dev-owner-1", "Gridiron Gurus", []devPlayer{
		{"4046", "Patrick Mahomes", "QB", "KC", 12, 3},
		{"4984", "Josh Allen", "QB", "BUF", 2, 1},
		{"9509", "Bijan Robinson", "RB", "ATL", 3, 1},
		{"8155", "Breece Hall", "RB", "NYJ", 20, 5},
		{"6794", "Justin Jefferson", "WR", "MIN", 4, 1},
		{"8146", "Garrett Wilson", "WR", "NYJ", 25, 10},
		{"4866", "Saquon Barkley", "RB", "PHI", 30, 8},
		{"9480", "Sam LaPorta", "TE", "DET", 45, 3},
		{"4195", "Harrison Butker", "K", "KC", 210, 1},
		{"5970", "Nick Bosa", "DE", "SF", 230, 2},
	}},
	{"dev-owner-2", "Sunday Funday", []devPlayer{
		{"9221", "C.J. Stroud", "QB", "HOU", 8, 2},
		{"7564", "Ja'Marr Chase", "WR", "CIN", 1, 1},
		{"7547", "Amon-Ra St. Brown", "WR", "DET", 6, 3},
		{"8138", "Jahmyr Gibbs", "RB", "DET", 5, 2},
		{"4881", "Lamar Jackson", "QB", "BAL", 9, 4},
		{"4217", "George Kittle", "TE", "SF", 90, 6},
		{"8112", "Drake London", "WR", "ATL", 15, 6},
		{"4037", "Chris Godwin", "WR", "TB", 120, 40},
		{"6130", "T.J. Watt", "LB", "PIT", 225, 1},
		{"5012", "Derwin James", "DB", "LAC", 240, 1},
	}},
	{"dev-owner-3", "The Replacements", []devPlayer{
		{"6904", "Jalen Hurts", "QB", "PHI", 10, 5},
		{"6786", "CeeDee Lamb", "WR", "DAL", 7, 4},
		{"7553", "Kyle Pitts", "TE", "ATL", 60, 4},
		{"8150", "Kenneth Walker III", "RB", "SEA", 40, 10},
		{"9493", "Puka Nacua", "WR", "LAR", 11, 5},
		{"4034", "Christian McCaffrey", "RB", "SF", 35, 9},
		{"7526", "Jaylen Waddle", "WR", "MIA", 28, 11},
		{"4144", "Justin Tucker", "K", "BAL", 215, 2},
		{"4993", "Fred Warner", "LB", "SF", 235, 3},
		{"6770", "Quinnen Williams", "DL", "NYJ", 245, 1},
		{"OL01", "Practice Squad Tackle", "OL", "", 0, 0},
	}},
	{"dev-owner-4", "", []devPlayer{
		{"8183", "Brock Purdy", "QB", "SF", 14, 6},
		{"8151", "Chris Olave", "WR", "NO", 24, 9},
		{"9226", "De'Von Achane", "RB", "MIA", 13, 3},
		{"7828", "Jonathan Taylor", "RB", "IND", 22, 6},
		{"11632", "Malik Nabers", "WR", "NYG", 17, 2},
		{"6803", "Brandon Aiyuk", "WR", "SF", 50, 18},
		{"5857", "Mark Andrews", "TE", "BAL", 75, 5},
		{"5849", "Kyler Murray", "QB", "ARI", 16, 7},
		{"5848", "Roquan Smith", "LB", "BAL", 250, 4},
		{"7583", "Patrick Surtain II", "DB", "DEN", 260, 2},
	}},
}

// DevLeague returns a fixed four-owner league for local development.
// The fourth owner has no display name.
func DevLeague() *models.League {
	l := &models.League{
		OwnerNames: map[string]string{},
		Players:    map[string]models.Player{},
	}
	for _, o := range devOwners {
		if o.name != "" {
			l.OwnerNames[o.id] = o.name
		}
		ids := make([]string, 0, len(o.players))
		for _, p := range o.players {
			ids = append(ids, p.id)
			l.Players[p.id] = models.Player{ID: p.id, FullName: p.name, Position: p.pos, Team: p.team}
		}
		l.Rosters = append(l.Rosters, models.Roster{OwnerID: o.id, PlayerIDs: ids})
	}
	return l
}

// DevRankings returns rankings for the dev league. Players with zero ranks are left unranked.
func DevRankings() models.Rankings {
	rk := models.Rankings{}
	for _, o := range devOwners {
		for _, p := range o.players {
			if p.overall > 0 {
				rk[p.id] = models.Ranking{OverallRank: p.overall, PositionRank: p.positional}
			}
		}
	}
	return rk
}

// NewMockLeagueSource serves the dev league and rankings
func NewMockLeagueSource() league.Static {
	logger.Info("Using MOCK league snapshot for local development")
	return league.Static{League: DevLeague(), Rankings: DevRankings()}
}
