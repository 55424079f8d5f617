package draft

import (
	"reflect"
	"testing"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

func basePoolInput() PoolInput {
	return PoolInput{
		League:      testLeague(),
		Rankings:    testRankings(),
		Protections: models.Protections{},
		Dispersed:   models.DispersedSet{},
		Picks:       Ledger{},
		MaxPerOwner: 3,
	}
}

func TestBuildPoolExcludesProtectedAndDrafted(t *testing.T) {
	in := basePoolInput()
	in.Protections["o1"] = models.LockedProtection([]string{"q1"}, "h")
	in.Picks = in.Picks.Append("r2", "o2", "T1")

	pool := ids(BuildPool(in))
	if contains(pool, "q1") {
		t.Error("protected player should not be in the pool")
	}
	if contains(pool, "r2") {
		t.Error("drafted player should not be in the pool")
	}
	if len(pool) != 13 {
		t.Errorf("expected 13 players, got %d: %v", len(pool), pool)
	}
}

func TestBuildPoolSortsByOverallRankStable(t *testing.T) {
	pool := BuildPool(basePoolInput())
	for i := 1; i < len(pool); i++ {
		if pool[i-1].OverallRank > pool[i].OverallRank {
			t.Fatalf("pool not sorted at %d: %v", i, ids(pool))
		}
	}
	if pool[0].PlayerID != "q1" {
		t.Errorf("expected q1 first, got %s", pool[0].PlayerID)
	}

	// d1, x1, db1 are unranked and keep roster order at the tail
	tail := ids(pool[len(pool)-3:])
	want := []string{"d1", "x1", "db1"}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("unranked tail = %v, want %v", tail, want)
		}
	}
	if pool[len(pool)-1].OverallRank != models.UnrankedOverall {
		t.Error("unranked players should carry the sentinel rank")
	}
}

func TestBuildPoolFillsOwnerAndPlayerDefaults(t *testing.T) {
	in := basePoolInput()
	in.League.Rosters = append(in.League.Rosters, models.Roster{OwnerID: "o4", PlayerIDs: []string{"ghost"}})

	entry, ok := FindInPool(BuildPool(in), "ghost")
	if !ok {
		t.Fatal("ghost should be in the pool")
	}
	if entry.OwnerName != models.UnknownOwnerName || entry.FullName != "ghost" || entry.Team != models.FreeAgentTeam {
		t.Errorf("unexpected defaults: %+v", entry)
	}
}

func TestDispersalClearsEffectiveProtection(t *testing.T) {
	in := basePoolInput()
	in.Protections["o1"] = models.LockedProtection([]string{"q1", "r1"}, "h")

	if contains(ids(BuildPool(in)), "q1") {
		t.Fatal("q1 should be protected before dispersal")
	}

	in.Dispersed = models.NewDispersedSet("o1")
	pool := ids(BuildPool(in))
	if !contains(pool, "q1") || !contains(pool, "r1") {
		t.Error("dispersed owner's stale protections must be ignored")
	}
}

func TestBuildPoolMarksCappedOwnersUndraftable(t *testing.T) {
	in := basePoolInput()
	in.Picks = in.Picks.Append("r2", "o2", "T1").Append("r3", "o2", "T2").Append("t1", "o2", "T2")

	for _, e := range BuildPool(in) {
		if e.OriginalOwnerID == "o2" && e.Draftable {
			t.Errorf("%s should not be draftable once o2 lost 3 players", e.PlayerID)
		}
		if e.OriginalOwnerID != "o2" && !e.Draftable {
			t.Errorf("%s should be draftable", e.PlayerID)
		}
	}
}

func TestFilterByPosition(t *testing.T) {
	pool := BuildPool(basePoolInput())

	if got := FilterByPosition(pool, AllPositions); len(got) != len(pool) {
		t.Error("ALL should not filter")
	}
	if got := FilterByPosition(pool, ""); len(got) != len(pool) {
		t.Error("empty position should not filter")
	}

	rbs := FilterByPosition(pool, "RB")
	if len(rbs) != 3 {
		t.Errorf("expected 3 RBs, got %v", ids(rbs))
	}

	// DE is not DL
	dl := FilterByPosition(pool, "DL")
	if len(dl) != 1 || dl[0].PlayerID != "dl1" {
		t.Errorf("expected only dl1, got %v", ids(dl))
	}
}

func TestSortByPosition(t *testing.T) {
	l := testLeague()
	got := SortByPosition([]string{"x1", "w1", "q2", "q1", "k1"}, l, testRankings())
	want := []string{"q1", "q2", "w1", "k1", "x1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBuildPoolIsDeterministic(t *testing.T) {
	in := basePoolInput()
	in.Protections["o1"] = models.OpenProtection([]string{"q1", "r1"})
	in.Dispersed = models.NewDispersedSet("o3")
	in.Picks = in.Picks.Append("r2", "o2", "T1").Append("w2", "o3", "T2")

	first := BuildPool(in)
	for i := 0; i < 5; i++ {
		if again := BuildPool(in); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n got %v\nwant %v", i, ids(again), ids(first))
		}
	}
	if len(in.Picks) != 2 || len(in.Protections.Get("o1").Players) != 2 {
		t.Error("BuildPool modified its input")
	}
}
