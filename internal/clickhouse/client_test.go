package clickhouse

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

type fakeRows struct {
	data [][]any
	pos  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*int32) = row[1].(int32)
	*dest[2].(*int32) = row[2].(int32)
	return nil
}

func (r *fakeRows) Err() error { return r.err }

func TestScanRankings(t *testing.T) {
	rows := &fakeRows{data: [][]any{
		{"4046", int32(1), int32(1)},
		{"6794", int32(3), int32(2)},
	}}

	rk, err := scanRankings(rows)
	if err != nil {
		t.Fatalf("scanRankings: %v", err)
	}
	if len(rk) != 2 || rk["6794"].OverallRank != 3 || rk["6794"].PositionRank != 2 {
		t.Errorf("unexpected rankings %v", rk)
	}

	if _, err := scanRankings(&fakeRows{err: errors.New("broken")}); err == nil {
		t.Error("expected rows error to surface")
	}
}

func TestLatestQueryUsesTable(t *testing.T) {
	c := &RankingClient{table: "rankings_v2"}
	q := c.latestQuery()
	if !strings.Contains(q, "FROM rankings_v2") || !strings.Contains(q, "argMax(overall_rank, captured_at)") {
		t.Errorf("unexpected query %s", q)
	}
}

func TestNewRankingClientRejectsBadTable(t *testing.T) {
	_, err := NewRankingClient(context.Background(), Config{Addr: "127.0.0.1:1", Table: "x; DROP TABLE y"})
	if err == nil || !strings.Contains(err.Error(), "invalid ClickHouse table name") {
		t.Errorf("expected table name error, got %v", err)
	}
}

type stubSource struct {
	rankings models.Rankings
	err      error
}

func (s stubSource) FetchRankings(context.Context) (models.Rankings, error) {
	return s.rankings, s.err
}

type stubStore struct {
	stubSource
	recorded []models.Rankings
	at       time.Time
	source   string
}

func (s *stubStore) Record(_ context.Context, source string, rk models.Rankings, at time.Time) error {
	s.recorded = append(s.recorded, rk)
	s.source = source
	s.at = at
	return nil
}

func TestArchivingSourceRecordsLiveSnapshot(t *testing.T) {
	at := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	live := models.Rankings{"4046": {OverallRank: 1, PositionRank: 1}}
	store := &stubStore{}
	a := &ArchivingSource{Live: stubSource{rankings: live}, Store: store, Source: "fantasycalc", Now: func() time.Time { return at }}

	rk, err := a.FetchRankings(context.Background())
	if err != nil || len(rk) != 1 {
		t.Fatalf("unexpected result %v %v", rk, err)
	}
	if len(store.recorded) != 1 || store.source != "fantasycalc" || !store.at.Equal(at) {
		t.Errorf("snapshot not archived: %+v", store)
	}
}

func TestArchivingSourceFallsBackToArchive(t *testing.T) {
	archived := models.Rankings{"6794": {OverallRank: 5, PositionRank: 2}}
	store := &stubStore{stubSource: stubSource{rankings: archived}}
	a := &ArchivingSource{Live: stubSource{err: errors.New("offline")}, Store: store, Source: "fantasycalc"}

	rk, err := a.FetchRankings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rk["6794"].OverallRank != 5 {
		t.Errorf("expected archived rankings, got %v", rk)
	}
	if len(store.recorded) != 0 {
		t.Error("nothing should be archived on failure")
	}
}
