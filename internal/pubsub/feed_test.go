package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

func publishPicks(t *testing.T, bus Bus, origin string, n int) {
	t.Helper()
	picks := make([]models.Pick, n)
	for i := range picks {
		picks[i] = models.Pick{PlayerID: "p", OriginalOwnerID: "o1", TeamID: "T", PickNumber: i + 1}
	}
	e, err := NewPicksEvent(origin, picks)
	if err != nil {
		t.Fatal(err)
	}
	bus.Publish(e)
}

func TestLedgerFeedIgnoresOwnOrigin(t *testing.T) {
	bus := New()
	feed := NewLedgerFeed(bus, "self")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	publishPicks(t, bus, "self", 1)
	bus.Publish(Event{Type: EventOrderUpdated, Origin: "peer"})
	publishPicks(t, bus, "peer", 2)

	select {
	case picks := <-feed.C():
		if len(picks) != 2 {
			t.Errorf("expected the peer snapshot, got %d picks", len(picks))
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for snapshot")
	}
}

func TestLedgerFeedKeepsLatest(t *testing.T) {
	bus := New()
	feed := NewLedgerFeed(bus, "self")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	for n := 1; n <= 3; n++ {
		publishPicks(t, bus, "peer", n)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case picks := <-feed.C():
			if len(picks) == 3 {
				return
			}
		case <-deadline:
			t.Fatal("never observed the newest snapshot")
		}
	}
}

func TestLedgerFeedOfferReplacesPending(t *testing.T) {
	feed := &LedgerFeed{out: make(chan []models.Pick, 1)}
	feed.offer([]models.Pick{{PickNumber: 1}})
	feed.offer([]models.Pick{{PickNumber: 1}, {PickNumber: 2}})

	got := <-feed.C()
	if len(got) != 2 {
		t.Errorf("expected newest snapshot, got %v", got)
	}
	select {
	case extra := <-feed.C():
		t.Errorf("unexpected extra snapshot %v", extra)
	default:
	}
}

func TestLedgerFeedStopsOnCancel(t *testing.T) {
	bus := New()
	feed := NewLedgerFeed(bus, "self")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, ok := <-feed.C(); ok {
		t.Error("output channel should be closed")
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("feed should unsubscribe, %d left", bus.SubscriberCount())
	}
}
