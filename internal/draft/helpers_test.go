package draft

import (
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/mocks"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

var testEpoch = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func testLeague() *models.League {
	players := map[string]models.Player{}
	add := func(id, name, pos, team string) {
		players[id] = models.Player{ID: id, FullName: name, Position: pos, Team: team}
	}
	add("q1", "Quarter One", "QB", "BUF")
	add("q2", "Quarter Two", "QB", "KC")
	add("r1", "Runner One", "RB", "DET")
	add("w1", "Wide One", "WR", "MIN")
	add("k1", "Kicker One", "K", "BAL")
	add("r2", "Runner Two", "RB", "ATL")
	add("r3", "Runner Three", "RB", "NYJ")
	add("t1", "Tight One", "TE", "SF")
	add("d1", "End One", "DE", "CLE")
	add("l1", "Backer One", "LB", "PIT")
	add("w2", "Wide Two", "WR", "CIN")
	add("w3", "Wide Three", "WR", "LAR")
	add("x1", "Line One", "OL", "DAL")
	add("db1", "Back One", "DB", "SEA")
	add("dl1", "Lineman One", "DL", "PHI")

	return &models.League{
		Rosters: []models.Roster{
			{OwnerID: "o1", PlayerIDs: []string{"q1", "q2", "r1", "w1", "k1"}},
			{OwnerID: "o2", PlayerIDs: []string{"r2", "r3", "t1", "d1", "l1"}},
			{OwnerID: "o3", PlayerIDs: []string{"w2", "w3", "x1", "db1", "dl1"}},
		},
		OwnerNames: map[string]string{"o1": "Alice", "o2": "Bob"},
		Players:    players,
	}
}

func testRankings() models.Rankings {
	return models.Rankings{
		"q1":  {OverallRank: 1, PositionRank: 1},
		"r2":  {OverallRank: 2, PositionRank: 1},
		"w2":  {OverallRank: 3, PositionRank: 1},
		"q2":  {OverallRank: 4, PositionRank: 2},
		"r1":  {OverallRank: 5, PositionRank: 2},
		"w1":  {OverallRank: 6, PositionRank: 2},
		"t1":  {OverallRank: 7, PositionRank: 1},
		"r3":  {OverallRank: 8, PositionRank: 3},
		"w3":  {OverallRank: 9, PositionRank: 3},
		"k1":  {OverallRank: 150, PositionRank: 1},
		"l1":  {OverallRank: 200, PositionRank: 1},
		"dl1": {OverallRank: 210, PositionRank: 1},
	}
}

type fakeHasher struct{}

func (fakeHasher) Seal(players []string, password string) (models.ProtectionRecord, error) {
	return models.LockedProtection(players, "hashed:"+password), nil
}

func (fakeHasher) Verify(rec models.ProtectionRecord, password string) bool {
	return rec.PasswordHash == "hashed:"+password
}

func testEnv() (Env, *mocks.MockClock, *mocks.MockRandom) {
	clk := mocks.NewMockClock(testEpoch)
	rnd := mocks.NewMockRandom()
	return Env{
		League:   testLeague(),
		Rankings: testRankings(),
		Rules:    DefaultRules(),
		Clock:    clk,
		Random:   rnd,
		Hasher:   fakeHasher{},
	}, clk, rnd
}

func ids(entries []PoolEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.PlayerID
	}
	return out
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
