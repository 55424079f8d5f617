package draft

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

func TestBucketFor(t *testing.T) {
	tests := map[string]Bucket{
		"QB": BucketQB, "RB": BucketRB, "WR": BucketWR, "TE": BucketTE, "K": BucketK,
		"DL": BucketIDP, "LB": BucketIDP, "DB": BucketIDP, "DE": BucketIDP,
		"OL": BucketUnclassified, "?": BucketUnclassified, "": BucketUnclassified,
	}
	for pos, want := range tests {
		if got := BucketFor(pos); got != want {
			t.Errorf("BucketFor(%q) = %s, want %s", pos, got, want)
		}
	}
}

func TestFlexAndSuperflexEligibility(t *testing.T) {
	for _, pos := range []string{"RB", "WR", "TE"} {
		if !FlexEligible(pos) || !SuperflexEligible(pos) {
			t.Errorf("%s should be flex and superflex eligible", pos)
		}
	}
	if FlexEligible("QB") {
		t.Error("QB should not be flex eligible")
	}
	if !SuperflexEligible("QB") {
		t.Error("QB should be superflex eligible")
	}
	for _, pos := range []string{"K", "DL", "DE", "LB", "DB", "?"} {
		if FlexEligible(pos) || SuperflexEligible(pos) {
			t.Errorf("%s should not be eligible for flex spots", pos)
		}
	}
}

func TestPositionRankUnknownLast(t *testing.T) {
	if PositionRank("QB") != 0 || PositionRank("DB") != len(PositionOrder)-1 {
		t.Error("unexpected rank for known positions")
	}
	if PositionRank("OL") != len(PositionOrder) {
		t.Error("unknown positions should sort last")
	}
}

func TestAllocateOverflowsToFlexThenSuperflex(t *testing.T) {
	league := testLeague()
	limits := DefaultLimits()

	tests := []struct {
		name       string
		candidates []string
		want       Counts
	}{
		{
			name:       "second QB takes superflex",
			candidates: []string{"q1", "q2"},
			want:       Counts{BucketQB: 1, BucketSuperflex: 1},
		},
		{
			name:       "third RB takes flex",
			candidates: []string{"r1", "r2", "r3"},
			want:       Counts{BucketRB: 2, BucketFlex: 1},
		},
		{
			name:       "IDP has no flex",
			candidates: []string{"d1", "l1", "db1"},
			want:       Counts{BucketIDP: 3},
		},
		{
			name:       "unclassified is counted without a limit",
			candidates: []string{"x1", "unknown-id"},
			want:       Counts{BucketUnclassified: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.candidates, league, limits)
			if got.Total() != len(tt.candidates) {
				t.Errorf("total %d, want %d", got.Total(), len(tt.candidates))
			}
			for b, n := range tt.want {
				if got[b] != n {
					t.Errorf("%s = %d, want %d (counts %v)", b, got[b], n, got)
				}
			}
		})
	}
}

func TestAllocateCapacityNeverExceededForFlexSpots(t *testing.T) {
	league := testLeague()
	limits := DefaultLimits()
	all := []string{"q1", "q2", "r1", "w1", "k1", "r2", "r3", "t1", "d1", "l1", "w2", "w3", "x1", "db1", "dl1"}

	counts := Allocate(all, league, limits)
	if counts.Total() != len(all) {
		t.Fatalf("total %d, want %d", counts.Total(), len(all))
	}
	if counts[BucketFlex] > limits[BucketFlex] || counts[BucketSuperflex] > limits[BucketSuperflex] {
		t.Errorf("flex spots over capacity: %v", counts)
	}
}

func TestAllocateOrderDependence(t *testing.T) {
	league := testLeague()
	limits := Limits{BucketQB: 1, BucketRB: 1, BucketFlex: 0, BucketSuperflex: 1}

	// the second RB claims superflex, leaving the second QB over the limit
	a := Allocate([]string{"q1", "r1", "r2", "q2"}, league, limits)
	if a[BucketQB] != 2 || a[BucketSuperflex] != 1 {
		t.Errorf("unexpected counts %v", a)
	}

	b := Allocate([]string{"q1", "q2", "r1", "r2"}, league, limits)
	if b[BucketQB] != 1 || b[BucketRB] != 2 {
		t.Errorf("unexpected counts %v", b)
	}
}

func TestCheckLimitsItemizesOverages(t *testing.T) {
	league := testLeague()
	limits := Limits{BucketQB: 1, BucketRB: 2, BucketWR: 3, BucketTE: 1, BucketIDP: 2, BucketK: 1, BucketFlex: 3, BucketSuperflex: 0}

	_, err := CheckLimits([]string{"q1", "q2", "d1", "l1", "db1"}, league, limits)
	var over *OverLimitError
	if !errors.As(err, &over) {
		t.Fatalf("expected OverLimitError, got %v", err)
	}
	if !errors.Is(err, ErrPositionLimits) {
		t.Error("OverLimitError should wrap ErrPositionLimits")
	}
	if len(over.Overages) != 2 {
		t.Fatalf("expected 2 overages, got %v", over.Overages)
	}
	if over.Overages[0].String() != "QB: 2/1 (1 over)" {
		t.Errorf("got %q", over.Overages[0].String())
	}
	if over.Overages[1].String() != "IDP: 3/2 (1 over)" {
		t.Errorf("got %q", over.Overages[1].String())
	}

	if _, err := CheckLimits([]string{"q1", "q2"}, league, DefaultLimits()); err != nil {
		t.Errorf("default limits allow two QBs: %v", err)
	}
}

// positions resolves synthetic player IDs to a fixed position
type positions map[string]string

func (p positions) Player(id string) models.Player {
	return models.Player{ID: id, Position: p[id]}
}

var (
	flexPositions      = []string{"RB", "WR", "TE"}
	superflexPositions = []string{"QB", "RB", "WR", "TE"}
	idpPositions       = []string{"DL", "LB", "DB", "DE"}
	anyPositions       = []string{"QB", "RB", "WR", "TE", "K", "DL", "LB", "DB", "DE", "OL", ""}
)

func randomLimits(rng *rand.Rand) Limits {
	limits := Limits{}
	for _, b := range LimitOrder {
		limits[b] = rng.IntN(4)
	}
	return limits
}

// add appends n players at positions drawn from choices
func (p positions) add(rng *rand.Rand, list []string, n int, choices []string) []string {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%d", len(p))
		p[id] = choices[rng.IntN(len(choices))]
		list = append(list, id)
	}
	return list
}

func TestAllocateCountsEveryCandidateOnce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 2000; i++ {
		lookup := positions{}
		limits := randomLimits(rng)
		list := lookup.add(rng, nil, rng.IntN(30), anyPositions)
		// IDs missing from the lookup are unclassified
		if rng.IntN(4) == 0 {
			list = append(list, "unknown")
		}

		counts := Allocate(list, lookup, limits)
		if counts.Total() != len(list) {
			t.Fatalf("case %d: total %d, want %d (limits %v, counts %v)", i, counts.Total(), len(list), limits, counts)
		}
		if counts[BucketFlex] > limits[BucketFlex] || counts[BucketSuperflex] > limits[BucketSuperflex] {
			t.Fatalf("case %d: flex spots over capacity (limits %v, counts %v)", i, limits, counts)
		}
		if again := Allocate(list, lookup, limits); !reflect.DeepEqual(counts, again) {
			t.Fatalf("case %d: repeat call gave %v, first call %v", i, again, counts)
		}
	}
}

func TestAllocateListsWithinCapacityHaveNoOverages(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	exact := []struct {
		bucket    Bucket
		positions []string
	}{
		{BucketQB, []string{"QB"}},
		{BucketRB, []string{"RB"}},
		{BucketWR, []string{"WR"}},
		{BucketTE, []string{"TE"}},
		{BucketIDP, idpPositions},
		{BucketK, []string{"K"}},
	}

	for i := 0; i < 2000; i++ {
		lookup := positions{}
		limits := randomLimits(rng)

		// build a list that has a valid assignment, then shuffle it
		var list []string
		for _, e := range exact {
			list = lookup.add(rng, list, rng.IntN(limits[e.bucket]+1), e.positions)
		}
		list = lookup.add(rng, list, rng.IntN(limits[BucketFlex]+1), flexPositions)
		list = lookup.add(rng, list, rng.IntN(limits[BucketSuperflex]+1), superflexPositions)
		list = lookup.add(rng, list, rng.IntN(3), []string{"OL"})
		rng.Shuffle(len(list), func(a, b int) { list[a], list[b] = list[b], list[a] })

		counts, err := CheckLimits(list, lookup, limits)
		if err != nil {
			t.Fatalf("case %d: %v (limits %v, counts %v)", i, err, limits, counts)
		}
	}
}
