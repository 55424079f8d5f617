package draft

import (
	"fmt"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// PlayerLookup resolves player IDs to players
type PlayerLookup interface {
	Player(id string) models.Player
}

// Counts is the per-bucket tally produced by Allocate
type Counts map[Bucket]int

// Total returns the number of players counted across every bucket
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Overage is a bucket holding more players than its limit
type Overage struct {
	Bucket Bucket `json:"bucket"`
	Count  int    `json:"count"`
	Limit  int    `json:"limit"`
}

// Over returns how many players exceed the limit
func (o Overage) Over() int {
	return o.Count - o.Limit
}

func (o Overage) String() string {
	return fmt.Sprintf("%s: %d/%d (%d over)", o.Bucket, o.Count, o.Limit, o.Over())
}

// Allocate assigns each candidate, in order, to its exact bucket if there is
// room, then FLEX, then SUPERFLEX, otherwise it counts against its exact bucket.
// Unclassified positions are tallied under BucketUnclassified which has no limit.
func Allocate(candidates []string, players PlayerLookup, limits Limits) Counts {
	counts := make(Counts)
	for _, id := range candidates {
		pos := players.Player(id).Position
		bucket := BucketFor(pos)

		if bucket == BucketUnclassified {
			counts[BucketUnclassified]++
			continue
		}

		switch {
		case counts[bucket] < limits[bucket]:
			counts[bucket]++
		case FlexEligible(pos) && counts[BucketFlex] < limits[BucketFlex]:
			counts[BucketFlex]++
		case SuperflexEligible(pos) && counts[BucketSuperflex] < limits[BucketSuperflex]:
			counts[BucketSuperflex]++
		default:
			counts[bucket]++
		}
	}
	return counts
}

// Overages lists buckets whose count exceeds the limit, in LimitOrder
func (c Counts) Overages(limits Limits) []Overage {
	var out []Overage
	for _, b := range LimitOrder {
		limit, ok := limits[b]
		if !ok {
			continue
		}
		if c[b] > limit {
			out = append(out, Overage{Bucket: b, Count: c[b], Limit: limit})
		}
	}
	return out
}

// CheckLimits returns an *OverLimitError when any bucket is over its limit
func CheckLimits(candidates []string, players PlayerLookup, limits Limits) (Counts, error) {
	counts := Allocate(candidates, players, limits)
	if over := counts.Overages(limits); len(over) > 0 {
		return counts, &OverLimitError{Overages: over}
	}
	return counts, nil
}
