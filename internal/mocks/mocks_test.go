package mocks

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/dal"
	"github.com/Billy-Davies-2/expansion-draft/internal/league"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
	"github.com/Billy-Davies-2/expansion-draft/internal/pubsub"
)

func TestDevLeagueIsConsistent(t *testing.T) {
	l := DevLeague()
	rk := DevRankings()

	if len(l.Rosters) != 4 {
		t.Fatalf("expected 4 rosters, got %d", len(l.Rosters))
	}
	seen := map[string]string{}
	for _, r := range l.Rosters {
		for _, id := range r.PlayerIDs {
			if prev, dup := seen[id]; dup {
				t.Errorf("player %s on both %s and %s", id, prev, r.OwnerID)
			}
			seen[id] = r.OwnerID
			if _, ok := l.Players[id]; !ok {
				t.Errorf("rostered player %s missing from catalogue", id)
			}
		}
	}
	if l.OwnerName("dev-owner-4") != models.UnknownOwnerName {
		t.Error("fourth owner should have no display name")
	}
	if _, ok := rk["OL01"]; ok {
		t.Error("OL01 should be unranked")
	}
	if rk.Lookup("OL01").OverallRank != models.UnrankedOverall {
		t.Error("unranked lookup should use defaults")
	}
}

func TestMockLeagueSourceSatisfiesSources(t *testing.T) {
	var src league.Source = NewMockLeagueSource()
	l, err := src.FetchLeague(context.Background())
	if err != nil || len(l.Rosters) == 0 {
		t.Fatalf("unexpected %v %v", l, err)
	}
	var rs league.RankingSource = NewMockLeagueSource()
	if rk := league.LoadRankings(context.Background(), rs); len(rk) == 0 {
		t.Error("expected dev rankings")
	}
}

func TestMockPostgresDAL(t *testing.T) {
	m, err := NewMockPostgresDAL(filepath.Join(t.TempDir(), "mock.db"))
	if err != nil {
		t.Fatalf("NewMockPostgresDAL: %v", err)
	}
	defer m.Close()

	store := dal.NewStore(m)
	ctx := context.Background()
	if err := store.SaveOrder(ctx, []string{"Expansion A"}); err != nil {
		t.Fatal(err)
	}
	order, err := store.LoadOrder(ctx)
	if err != nil || len(order) != 1 {
		t.Errorf("unexpected order %v %v", order, err)
	}
}

func TestMockNATSPubSub(t *testing.T) {
	m := NewMockNATSPubSub()
	defer m.Close()

	ch := m.Subscribe()
	m.Publish(pubsub.Event{Type: pubsub.EventReset})

	select {
	case e := <-ch:
		if e.Type != pubsub.EventReset {
			t.Errorf("unexpected event %s", e.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
	if !m.Connected() {
		t.Error("mock should report connected")
	}
}
